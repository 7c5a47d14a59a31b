package srl

import (
	"spinach/alg/perceptron"
	nlp "spinach/nlp/types"
)

// LeftToRightDecoder visits the candidates of each predicate in sentence
// order and gives each the best scoring role still allowed. The restriction
// is shared by all predicates of the frame: a numbered role or an
// overlapping token taken for one predicate is unavailable for the next.
type LeftToRightDecoder struct{}

var _ ArgumentDecoder = &LeftToRightDecoder{}

func (d *LeftToRightDecoder) Name() string {
	return LEFT_TO_RIGHT
}

func (d *LeftToRightDecoder) Decode(frame *nlp.FrameAnnotation, score ScoreFunc) {
	acc := newRestriction()
	for _, p := range frame.Predicates() {
		for _, c := range Candidates(frame.Tree, p) {
			acc = d.decodeCandidate(frame, p, c, score(frame, c, p), acc)
		}
	}
}

func (d *LeftToRightDecoder) decodeCandidate(frame *nlp.FrameAnnotation, p, c nlp.Token, scores []perceptron.LabelScore, acc restriction) restriction {
	perceptron.SortScores(scores)
	for _, s := range scores {
		if s.Label == nlp.NilRole {
			return acc
		}
		if acc.allows(c, s.Label) {
			frame.AddArgument(p, c, s.Label)
			return acc.assign(frame.Tree, c, s.Label)
		}
	}
	return acc
}
