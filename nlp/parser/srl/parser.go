package srl

import (
	"spinach/nlp/parser/srl/features"
	nlp "spinach/nlp/types"
)

// Parser labels a sentence: it detects predicates, then decodes the roles of
// their candidates.
type Parser struct {
	Detector  *PredicateDetector
	Arguments *ArgumentClassifier
	Decoder   ArgumentDecoder
}

func NewParser(setup *features.Setup, registry *features.Registry, decoder ArgumentDecoder) (*Parser, error) {
	predGen, argGen, err := setup.Generators(registry)
	if err != nil {
		return nil, err
	}
	return &Parser{
		Detector:  NewPredicateDetector(predGen),
		Arguments: NewArgumentClassifier(argGen),
		Decoder:   decoder,
	}, nil
}

func (p *Parser) parse(tree *nlp.DependencyTree, training bool) *nlp.FrameAnnotation {
	frame := nlp.NewFrameAnnotation(tree)
	p.Detector.detect(frame, training)
	p.Decoder.Decode(frame, p.Arguments.scoreFunc(training))
	return frame
}

// Parse labels tree with the averaged weights.
func (p *Parser) Parse(tree *nlp.DependencyTree) *nlp.FrameAnnotation {
	return p.parse(tree, false)
}

// TrainingParse labels tree with the raw weights of a model being trained.
func (p *Parser) TrainingParse(tree *nlp.DependencyTree) *nlp.FrameAnnotation {
	return p.parse(tree, true)
}

// ParseGold decodes the arguments of the gold predicates of frame only.
func (p *Parser) ParseGold(gold *nlp.FrameAnnotation) *nlp.FrameAnnotation {
	frame := nlp.NewFrameAnnotation(gold.Tree)
	for _, pred := range gold.Predicates() {
		frame.AddPredicate(pred)
	}
	p.Decoder.Decode(frame, p.Arguments.scoreFunc(false))
	return frame
}
