package perceptron

import (
	"fmt"

	"spinach/alg/featurevector"
	"spinach/util"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// AveragedPerceptron is a multiclass linear classifier over string features.
// Features and labels are indexed on first sight during training. Weights
// are kept per label in a HistoryVector, so that the averaged weights are
// the mean of the raw weights over all generations of training.
type AveragedPerceptron struct {
	Features   *util.EnumSet
	Labels     *util.EnumSet
	Weights    []*featurevector.HistoryVector
	Generation int

	Continue StopCondition
	Log      logrus.FieldLogger
}

func NewAveragedPerceptron() *AveragedPerceptron {
	return &AveragedPerceptron{
		Features: util.NewEnumSet(1024),
		Labels:   util.NewEnumSet(16),
	}
}

// AddLabel indexes label, allocating its weight vector if it is new.
func (m *AveragedPerceptron) AddLabel(label string) int {
	index, isNew := m.Labels.Add(label)
	if isNew {
		m.Weights = append(m.Weights, featurevector.NewHistoryVector(m.Features.Len()))
	}
	return index
}

func (m *AveragedPerceptron) indexFeatures(features []string) []int {
	unique := lo.Uniq(features)
	retval := make([]int, len(unique))
	for i, f := range unique {
		retval[i], _ = m.Features.Add(f)
	}
	return retval
}

// knownFeatures returns indices of the features seen in training; unknown
// features contribute nothing to a score.
func (m *AveragedPerceptron) knownFeatures(features []string) []int {
	retval := make([]int, 0, len(features))
	for _, f := range lo.Uniq(features) {
		if index, exists := m.Features.IndexOf(f); exists {
			retval = append(retval, index)
		}
	}
	return retval
}

func (m *AveragedPerceptron) score(indices []int, averaged bool) []LabelScore {
	if m.Labels.Len() == 0 {
		return nil
	}
	retval := make([]LabelScore, m.Labels.Len())
	for l, weights := range m.Weights {
		var sum float64
		for _, i := range indices {
			if averaged {
				sum += weights.AveragedValue(m.Generation, i)
			} else {
				sum += float64(weights.Value(i))
			}
		}
		retval[l] = LabelScore{Label: m.Labels.ValueOf(l), Index: l, Score: sum}
	}
	return retval
}

// ScoreOf scores every label against the averaged weights, in label index
// order. It returns nil when no label is known yet.
func (m *AveragedPerceptron) ScoreOf(features []string) []LabelScore {
	return m.score(m.knownFeatures(features), true)
}

// TrainingScoreOf scores every label against the raw weights.
func (m *AveragedPerceptron) TrainingScoreOf(features []string) []LabelScore {
	return m.score(m.knownFeatures(features), false)
}

func argmax(scores []LabelScore) (string, bool) {
	if len(scores) == 0 {
		return "", false
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best.Label, true
}

// Predict returns the best label under the averaged weights, or false when
// the classifier is untrained.
func (m *AveragedPerceptron) Predict(features []string) (string, bool) {
	return argmax(m.ScoreOf(features))
}

func (m *AveragedPerceptron) PredictTraining(features []string) (string, bool) {
	return argmax(m.TrainingScoreOf(features))
}

func (m *AveragedPerceptron) update(indices []int, gold, predicted string) {
	if gold == predicted {
		return
	}
	goldIndex := m.AddLabel(gold)
	goldWeights := m.Weights[goldIndex]
	var predWeights *featurevector.HistoryVector
	if predicted != "" {
		predWeights = m.Weights[m.AddLabel(predicted)]
	}
	for _, i := range indices {
		if predWeights != nil {
			predWeights.Add(m.Generation, i, -1)
		}
		goldWeights.Add(m.Generation, i, 1)
	}
}

// Update moves the raw weights of features away from predicted and toward
// gold. An empty predicted label only rewards gold.
func (m *AveragedPerceptron) Update(features []string, gold, predicted string) {
	m.update(m.indexFeatures(features), gold, predicted)
}

// UpdateCombined applies a correction given as a predicted=>gold token.
func (m *AveragedPerceptron) UpdateCombined(features []string, token string) error {
	predicted, gold, err := SplitCombined(token)
	if err != nil {
		return err
	}
	m.Update(features, gold, predicted)
	return nil
}

// Tick completes one training iteration.
func (m *AveragedPerceptron) Tick() {
	m.Generation++
}

// Flush integrates every weight up to the current generation.
func (m *AveragedPerceptron) Flush() {
	for _, w := range m.Weights {
		w.Integrate(m.Generation)
	}
}

func (m *AveragedPerceptron) TrainEpochs(dataset []Example, epochs int, shuffled bool) {
	if m.Continue == nil {
		m.Continue = DefaultStopCondition
	}
	indexed := make([][]int, len(dataset))
	for i, ex := range dataset {
		indexed[i] = m.indexFeatures(ex.Features)
		m.AddLabel(ex.Label)
	}
	for e := 0; m.Continue(e, epochs, m.Generation); e++ {
		order := make([]int, len(dataset))
		if shuffled {
			order = EpochOrder(len(dataset), e)
		} else {
			for i := range order {
				order[i] = i
			}
		}
		var errs int
		for _, i := range order {
			predicted, _ := argmax(m.score(indexed[i], false))
			if predicted != dataset[i].Label {
				errs++
				m.update(indexed[i], dataset[i].Label, predicted)
			}
			m.Tick()
		}
		if m.Log != nil {
			m.Log.WithFields(logrus.Fields{
				"epoch":    e,
				"errors":   errs,
				"examples": len(dataset),
			}).Debug("Perceptron epoch done")
		}
	}
	m.Flush()
}

func (m *AveragedPerceptron) labelFeature(label, feature string) (*featurevector.HistoryVector, int, bool) {
	l, exists := m.Labels.IndexOf(label)
	if !exists {
		return nil, 0, false
	}
	f, exists := m.Features.IndexOf(feature)
	if !exists {
		return nil, 0, false
	}
	return m.Weights[l], f, true
}

// Weight is the raw weight of feature for label.
func (m *AveragedPerceptron) Weight(label, feature string) int64 {
	w, f, ok := m.labelFeature(label, feature)
	if !ok {
		return 0
	}
	return w.Value(f)
}

// Averaged is the averaged weight of feature for label.
func (m *AveragedPerceptron) Averaged(label, feature string) float64 {
	w, f, ok := m.labelFeature(label, feature)
	if !ok {
		return 0
	}
	return w.AveragedValue(m.Generation, f)
}

func (m *AveragedPerceptron) Snapshot() *Snapshot {
	s := &Snapshot{
		Features:   m.Features.Values(),
		Labels:     m.Labels.Values(),
		Values:     make([][]int64, len(m.Weights)),
		Totals:     make([][]int64, len(m.Weights)),
		Stamps:     make([][]int, len(m.Weights)),
		Generation: m.Generation,
	}
	for l, w := range m.Weights {
		c := w.Copy()
		s.Values[l], s.Totals[l], s.Stamps[l] = c.Values, c.Totals, c.Stamps
	}
	return s
}

func FromSnapshot(s *Snapshot) (*AveragedPerceptron, error) {
	if len(s.Values) != len(s.Labels) || len(s.Totals) != len(s.Labels) || len(s.Stamps) != len(s.Labels) {
		return nil, fmt.Errorf("snapshot has %d labels but %d/%d/%d weight vectors", len(s.Labels), len(s.Values), len(s.Totals), len(s.Stamps))
	}
	m := &AveragedPerceptron{
		Features:   util.EnumSetOf(s.Features),
		Labels:     util.EnumSetOf(s.Labels),
		Weights:    make([]*featurevector.HistoryVector, len(s.Labels)),
		Generation: s.Generation,
	}
	for l := range s.Labels {
		if len(s.Values[l]) != len(s.Totals[l]) || len(s.Values[l]) != len(s.Stamps[l]) {
			return nil, fmt.Errorf("snapshot weight vector %d of label %s is inconsistent", l, s.Labels[l])
		}
		m.Weights[l] = &featurevector.HistoryVector{Values: s.Values[l], Totals: s.Totals[l], Stamps: s.Stamps[l]}
	}
	return m, nil
}
