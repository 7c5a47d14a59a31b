package eval

import (
	"fmt"
	"sort"

	nlp "spinach/nlp/types"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// TOTAL is the bucket aggregating every role
const TOTAL = "TOTAL"

type Predictor interface {
	Parse(tree *nlp.DependencyTree) *nlp.FrameAnnotation
}

// GoldPredictor labels the arguments of the predicates of a gold frame.
type GoldPredictor interface {
	ParseGold(gold *nlp.FrameAnnotation) *nlp.FrameAnnotation
}

// RoleError is one argument decision that differs from gold. NIL stands for
// a missing or spurious argument.
type RoleError struct {
	Predicate, Argument nlp.Token
	Gold, Predicted     string
}

func (e *RoleError) Class() string {
	return e.Predicted + "->" + e.Gold
}

func (e *RoleError) String() string {
	return fmt.Sprintf("%v of %v: predicted %s, gold %s", e.Argument, e.Predicate, e.Predicted, e.Gold)
}

type SRLResult struct {
	Predicates Total
	Arguments  Total
	roles      map[string]*Result
}

func NewSRLResult() *SRLResult {
	return &SRLResult{roles: make(map[string]*Result)}
}

// Role returns the result of one role, or of all of them for TOTAL.
func (s *SRLResult) Role(role string) *Result {
	if role == TOTAL {
		return &s.Arguments.Result
	}
	if r, exists := s.roles[role]; exists {
		return r
	}
	return &Result{}
}

// Roles lists the roles seen in gold or predictions, sorted.
func (s *SRLResult) Roles() []string {
	roles := lo.Keys(s.roles)
	sort.Strings(roles)
	return roles
}

func (s *SRLResult) role(role string) *Result {
	r, exists := s.roles[role]
	if !exists {
		r = &Result{}
		s.roles[role] = r
	}
	return r
}

// argKey locates one argument by the positions of its predicate and token,
// so frames over differently annotated copies of a sentence still align.
type argKey struct {
	predicate, argument int
}

func predicateSet(frame *nlp.FrameAnnotation) map[int]bool {
	return lo.SliceToMap(frame.Predicates(), func(p nlp.Token) (int, bool) {
		return p.Index, true
	})
}

func roleSet(frame *nlp.FrameAnnotation) map[argKey]string {
	roles := make(map[argKey]string)
	for _, p := range lo.Uniq(frame.Predicates()) {
		for _, arg := range frame.ArgumentsOf(p) {
			roles[argKey{p.Index, arg.Token.Index}] = arg.Role
		}
	}
	return roles
}

// Add scores one predicted frame against its gold frame. Predicates and
// arguments are matched by token position.
func (s *SRLResult) Add(predicted, gold *nlp.FrameAnnotation) {
	predPreds, goldPreds := predicateSet(predicted), predicateSet(gold)
	predResult, argResult := &Result{}, &Result{}
	for p := range predPreds {
		if goldPreds[p] {
			predResult.TP++
		} else {
			predResult.FP++
		}
	}
	for p := range goldPreds {
		if !predPreds[p] {
			predResult.FN++
		}
	}

	predRoles, goldRoles := roleSet(predicted), roleSet(gold)
	for _, p := range lo.Uniq(predicted.Predicates()) {
		for _, arg := range predicted.ArgumentsOf(p) {
			goldRole, exists := goldRoles[argKey{p.Index, arg.Token.Index}]
			if exists && goldRole == arg.Role {
				argResult.TP++
				s.role(arg.Role).TP++
				continue
			}
			argResult.FP++
			s.role(arg.Role).FP++
			if !exists {
				argResult.Errors = append(argResult.Errors, &RoleError{p, arg.Token, nlp.NilRole, arg.Role})
			}
		}
	}
	for _, p := range lo.Uniq(gold.Predicates()) {
		for _, arg := range gold.ArgumentsOf(p) {
			predRole, exists := predRoles[argKey{p.Index, arg.Token.Index}]
			if exists && predRole == arg.Role {
				continue
			}
			argResult.FN++
			s.role(arg.Role).FN++
			if !exists {
				predRole = nlp.NilRole
			}
			argResult.Errors = append(argResult.Errors, &RoleError{p, arg.Token, arg.Role, predRole})
		}
	}
	s.Predicates.Add(predResult)
	s.Arguments.Add(argResult)
}

// Evaluate parses the sentence of every gold frame with predictor and scores
// the result. Gold frames are not modified.
func Evaluate(predictor Predictor, gold []*nlp.FrameAnnotation) *SRLResult {
	result := NewSRLResult()
	for _, g := range gold {
		result.Add(predictor.Parse(g.Tree), g)
	}
	return result
}

// EvaluateGold scores argument labelling alone: predictor is given the gold
// predicates of every frame.
func EvaluateGold(predictor GoldPredictor, gold []*nlp.FrameAnnotation) *SRLResult {
	result := NewSRLResult()
	for _, g := range gold {
		result.Add(predictor.ParseGold(g), g)
	}
	return result
}

// Compare scores two aligned corpora.
func Compare(predicted, gold []*nlp.FrameAnnotation) (*SRLResult, error) {
	if len(predicted) != len(gold) {
		return nil, fmt.Errorf("got %d predicted and %d gold sentences", len(predicted), len(gold))
	}
	result := NewSRLResult()
	for i := range gold {
		if predicted[i].Tree.Len() != gold[i].Tree.Len() {
			return nil, fmt.Errorf("sentence %d has %d predicted and %d gold tokens", i+1, predicted[i].Tree.Len(), gold[i].Tree.Len())
		}
		result.Add(predicted[i], gold[i])
	}
	return result, nil
}

func fields(r *Result) logrus.Fields {
	return logrus.Fields{
		"P":  fmt.Sprintf("%.4f", r.Precision()),
		"R":  fmt.Sprintf("%.4f", r.Recall()),
		"F1": fmt.Sprintf("%.4f", r.F1()),
		"TP": r.TP,
		"FP": r.FP,
		"FN": r.FN,
	}
}

func (s *SRLResult) Log(log logrus.FieldLogger) {
	log.WithFields(fields(&s.Predicates.Result)).
		WithField("exact", fmt.Sprintf("%.4f", s.Predicates.ExactMatch())).
		Info("Predicates")
	for _, role := range s.Roles() {
		log.WithFields(fields(s.Role(role))).Info("Role " + role)
	}
	log.WithFields(fields(s.Role(TOTAL))).
		WithField("exact", fmt.Sprintf("%.4f", s.Arguments.ExactMatch())).
		Info(TOTAL)
	for class, count := range s.Arguments.Errors.ByType() {
		log.WithField("count", count).Debug("Error " + class)
	}
}
