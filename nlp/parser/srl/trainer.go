package srl

import (
	"spinach/alg/perceptron"
	nlp "spinach/nlp/types"

	"github.com/sirupsen/logrus"
)

// StructuredTrainer trains a Parser online: every gold frame is parsed with
// the current raw weights, and both classifiers are corrected where the
// trimmed prediction differs from gold.
type StructuredTrainer struct {
	Parser *Parser

	// BurnIn is the number of initial frames whose corrections do not
	// advance the averaging clock
	BurnIn int

	Continue perceptron.StopCondition
	Log      logrus.FieldLogger
}

func (t *StructuredTrainer) tick() {
	t.Parser.Detector.Model.Tick()
	t.Parser.Arguments.Model.Tick()
}

func (t *StructuredTrainer) Train(gold []*nlp.FrameAnnotation, epochs int) error {
	if t.Continue == nil {
		t.Continue = perceptron.DefaultStopCondition
	}
	t.Parser.Arguments.IndexRoles(gold)
	var seen int
	for e := 0; t.Continue(e, epochs, t.Parser.Arguments.Model.Generation); e++ {
		var failed int
		for _, i := range perceptron.EpochOrder(len(gold), e) {
			predicted := t.Parser.TrainingParse(gold[i].Tree)
			predicted.Trim()
			if !predicted.Equal(gold[i]) {
				failed++
			}
			if err := t.Parser.Detector.Correct(gold[i], predicted); err != nil {
				return err
			}
			if err := t.Parser.Arguments.Correct(gold[i], predicted); err != nil {
				return err
			}
			seen++
			if seen > t.BurnIn {
				t.tick()
			}
		}
		if t.Log != nil {
			t.Log.WithFields(logrus.Fields{
				"epoch":      e,
				"failed":     failed,
				"frames":     len(gold),
				"generation": t.Parser.Arguments.Model.Generation,
			}).Info("Structured training epoch done")
		}
	}
	t.Parser.Detector.Model.Flush()
	t.Parser.Arguments.Model.Flush()
	return nil
}

// LocalTrainer trains the detector and the argument classifier separately,
// each on examples taken from the gold frames.
type LocalTrainer struct {
	Parser  *Parser
	Shuffle bool
	Log     logrus.FieldLogger
}

func (t *LocalTrainer) Train(gold []*nlp.FrameAnnotation, epochs int) {
	var predExamples, argExamples []perceptron.Example
	for _, frame := range gold {
		predExamples = append(predExamples, t.Parser.Detector.Examples(frame)...)
		argExamples = append(argExamples, t.Parser.Arguments.Examples(frame)...)
	}
	t.Parser.Arguments.IndexRoles(gold)
	if t.Log != nil {
		t.Log.WithFields(logrus.Fields{
			"predicate examples": len(predExamples),
			"argument examples":  len(argExamples),
		}).Info("Local training")
	}
	t.Parser.Detector.Model.Log = t.Log
	t.Parser.Detector.Model.TrainEpochs(predExamples, epochs, t.Shuffle)
	t.Parser.Arguments.Model.Log = t.Log
	t.Parser.Arguments.Model.TrainEpochs(argExamples, epochs, t.Shuffle)
}
