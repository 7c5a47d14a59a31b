package srl

import (
	"spinach/alg/perceptron"
	"spinach/nlp/parser/srl/features"
	nlp "spinach/nlp/types"
)

// ScoreFunc scores every role label for candidate as an argument of
// predicate. A nil result means no label is known.
type ScoreFunc func(frame *nlp.FrameAnnotation, candidate, predicate nlp.Token) []perceptron.LabelScore

type ArgumentClassifier struct {
	Model     *perceptron.AveragedPerceptron
	Generator features.Generator

	// Training scores with the raw weights instead of the averaged ones
	Training bool
}

func NewArgumentClassifier(g features.Generator) *ArgumentClassifier {
	return &ArgumentClassifier{
		Model:     perceptron.NewAveragedPerceptron(),
		Generator: g,
	}
}

// AddRoles indexes roles in order. NIL is skipped; IndexRoles indexes it
// after every other role.
func (a *ArgumentClassifier) AddRoles(roles []string) {
	for _, role := range roles {
		if role != nlp.NilRole {
			a.Model.AddLabel(role)
		}
	}
}

// IndexRoles indexes the roles of gold in order of first appearance, then
// NIL.
func (a *ArgumentClassifier) IndexRoles(gold []*nlp.FrameAnnotation) {
	var roles []string
	for _, frame := range gold {
		for _, p := range frame.Predicates() {
			for _, arg := range frame.ArgumentsOf(p) {
				roles = append(roles, arg.Role)
			}
		}
	}
	a.AddRoles(roles)
	a.Model.AddLabel(nlp.NilRole)
}

func (a *ArgumentClassifier) scoreFunc(training bool) ScoreFunc {
	return func(frame *nlp.FrameAnnotation, candidate, predicate nlp.Token) []perceptron.LabelScore {
		feats := a.Generator.Features(frame, candidate, predicate)
		if training {
			return a.Model.TrainingScoreOf(feats)
		}
		return a.Model.ScoreOf(feats)
	}
}

func (a *ArgumentClassifier) Scores(frame *nlp.FrameAnnotation, candidate, predicate nlp.Token) []perceptron.LabelScore {
	return a.scoreFunc(a.Training)(frame, candidate, predicate)
}

func roleOf(frame *nlp.FrameAnnotation, predicate, candidate nlp.Token) string {
	if role, exists := frame.RoleOf(predicate, candidate); exists {
		return role
	}
	return nlp.NilRole
}

// Examples returns one example per candidate of every gold predicate.
func (a *ArgumentClassifier) Examples(gold *nlp.FrameAnnotation) []perceptron.Example {
	var examples []perceptron.Example
	for _, p := range gold.Predicates() {
		for _, c := range Candidates(gold.Tree, p) {
			examples = append(examples, perceptron.Example{
				Features: a.Generator.Features(gold, c, p),
				Label:    roleOf(gold, p, c),
			})
		}
	}
	return examples
}

// Correct updates the model at every candidate whose predicted role differs
// from gold. Gold predicates missing from predicted are not corrected.
func (a *ArgumentClassifier) Correct(gold, predicted *nlp.FrameAnnotation) error {
	for _, p := range gold.Predicates() {
		if !predicted.IsPredicate(p) {
			continue
		}
		for _, c := range Candidates(gold.Tree, p) {
			goldRole, predRole := roleOf(gold, p, c), roleOf(predicted, p, c)
			if goldRole == predRole {
				continue
			}
			feats := a.Generator.Features(predicted, c, p)
			if err := a.Model.UpdateCombined(feats, perceptron.CombinedLabel(predRole, goldRole)); err != nil {
				return err
			}
		}
	}
	return nil
}
