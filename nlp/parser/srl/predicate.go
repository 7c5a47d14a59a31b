package srl

import (
	"spinach/alg/perceptron"
	"spinach/nlp/parser/srl/features"
	nlp "spinach/nlp/types"
)

const (
	PREDICATE     = "predicate"
	NOT_PREDICATE = "not_predicate"
)

// PredicateDetector decides independently for every token whether it
// anchors a frame.
type PredicateDetector struct {
	Model     *perceptron.AveragedPerceptron
	Generator features.Generator

	// Training scores with the raw weights instead of the averaged ones
	Training bool
}

func NewPredicateDetector(g features.Generator) *PredicateDetector {
	d := &PredicateDetector{
		Model:     perceptron.NewAveragedPerceptron(),
		Generator: g,
	}
	d.Model.AddLabel(NOT_PREDICATE)
	d.Model.AddLabel(PREDICATE)
	return d
}

func predicateLabel(isPredicate bool) string {
	if isPredicate {
		return PREDICATE
	}
	return NOT_PREDICATE
}

func (d *PredicateDetector) features(frame *nlp.FrameAnnotation, t nlp.Token) []string {
	return d.Generator.Features(frame, t, t)
}

func (d *PredicateDetector) isPredicate(frame *nlp.FrameAnnotation, t nlp.Token, training bool) bool {
	var (
		label string
		ok    bool
	)
	if training {
		label, ok = d.Model.PredictTraining(d.features(frame, t))
	} else {
		label, ok = d.Model.Predict(d.features(frame, t))
	}
	return ok && label == PREDICATE
}

func (d *PredicateDetector) detect(frame *nlp.FrameAnnotation, training bool) {
	for _, t := range frame.Tree.Tokens() {
		if d.isPredicate(frame, t, training) {
			frame.AddPredicate(t)
		}
	}
}

// Detect appends the detected predicates of frame's sentence, left to right.
func (d *PredicateDetector) Detect(frame *nlp.FrameAnnotation) {
	d.detect(frame, d.Training)
}

// Examples returns one example per token of gold.
func (d *PredicateDetector) Examples(gold *nlp.FrameAnnotation) []perceptron.Example {
	examples := make([]perceptron.Example, gold.Tree.Len())
	for i, t := range gold.Tree.Tokens() {
		examples[i] = perceptron.Example{
			Features: d.features(gold, t),
			Label:    predicateLabel(gold.IsPredicate(t)),
		}
	}
	return examples
}

// Correct updates the model at every token where predicted and gold
// disagree on being a predicate.
func (d *PredicateDetector) Correct(gold, predicted *nlp.FrameAnnotation) error {
	for _, t := range gold.Tree.Tokens() {
		goldLabel, predLabel := predicateLabel(gold.IsPredicate(t)), predicateLabel(predicted.IsPredicate(t))
		if goldLabel == predLabel {
			continue
		}
		if err := d.Model.UpdateCombined(d.features(predicted, t), perceptron.CombinedLabel(predLabel, goldLabel)); err != nil {
			return err
		}
	}
	return nil
}
