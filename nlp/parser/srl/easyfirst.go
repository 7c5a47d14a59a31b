package srl

import (
	"spinach/alg/perceptron"
	nlp "spinach/nlp/types"
)

// EasyFirstDecoder commits, per predicate, the single most confident
// (candidate, role) decision first and propagates its constraints before
// choosing the next one.
type EasyFirstDecoder struct{}

var _ ArgumentDecoder = &EasyFirstDecoder{}

func (d *EasyFirstDecoder) Name() string {
	return EASY_FIRST
}

type pending struct {
	token  nlp.Token
	scores []perceptron.LabelScore
}

func best(scores []perceptron.LabelScore) (perceptron.LabelScore, bool) {
	if len(scores) == 0 {
		return perceptron.LabelScore{}, false
	}
	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score || (s.Score == top.Score && s.Index < top.Index) {
			top = s
		}
	}
	return top, true
}

func (d *EasyFirstDecoder) Decode(frame *nlp.FrameAnnotation, score ScoreFunc) {
	for _, p := range frame.Predicates() {
		d.decodePredicate(frame, p, score)
	}
}

func (d *EasyFirstDecoder) decodePredicate(frame *nlp.FrameAnnotation, p nlp.Token, score ScoreFunc) {
	var remaining []*pending
	for _, c := range Candidates(frame.Tree, p) {
		scores := score(frame, c, p)
		if top, ok := best(scores); !ok || top.Label == nlp.NilRole {
			continue
		}
		remaining = append(remaining, &pending{token: c, scores: scores})
	}
	for len(remaining) > 0 {
		var (
			chosen     int
			chosenBest perceptron.LabelScore
		)
		for i, cand := range remaining {
			top, _ := best(cand.scores)
			if i == 0 || top.Score > chosenBest.Score {
				chosen, chosenBest = i, top
			}
		}
		c := remaining[chosen].token
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
		if chosenBest.Label == nlp.NilRole {
			continue
		}
		frame.AddArgument(p, c, chosenBest.Label)
		if nlp.IsRestrictedRole(chosenBest.Label) {
			remaining = removeOverlapping(frame.Tree, c, remaining)
		}
		if nlp.IsNumberedRole(chosenBest.Label) {
			remaining = stripLabel(chosenBest.Label, remaining)
		}
	}
}

func removeOverlapping(tree *nlp.DependencyTree, c nlp.Token, remaining []*pending) []*pending {
	overlap := tree.DescendantsOf(c)
	for _, a := range tree.AncestorsOf(c) {
		overlap[a] = struct{}{}
	}
	kept := remaining[:0]
	for _, cand := range remaining {
		if _, exists := overlap[cand.token]; !exists {
			kept = append(kept, cand)
		}
	}
	return kept
}

func stripLabel(label string, remaining []*pending) []*pending {
	kept := remaining[:0]
	for _, cand := range remaining {
		scores := cand.scores[:0:0]
		for _, s := range cand.scores {
			if s.Label != label {
				scores = append(scores, s)
			}
		}
		cand.scores = scores
		if len(scores) > 0 {
			kept = append(kept, cand)
		}
	}
	return kept
}
