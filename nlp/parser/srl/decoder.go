package srl

import (
	"fmt"

	nlp "spinach/nlp/types"
)

// ArgumentDecoder assigns roles to the candidates of every predicate of
// frame, adding them to frame.
type ArgumentDecoder interface {
	Decode(frame *nlp.FrameAnnotation, score ScoreFunc)
	Name() string
}

const (
	LEFT_TO_RIGHT = "ltr"
	EASY_FIRST    = "easyfirst"
)

var Decoders = []string{LEFT_TO_RIGHT, EASY_FIRST}

func NewDecoder(name string) (ArgumentDecoder, error) {
	switch name {
	case LEFT_TO_RIGHT:
		return &LeftToRightDecoder{}, nil
	case EASY_FIRST:
		return &EasyFirstDecoder{}, nil
	}
	return nil, fmt.Errorf("unknown decoder %q, expected one of %v", name, Decoders)
}

// restriction accumulates the constraints established by assignments made
// so far: tokens that overlap an assigned core argument and numbered roles
// already taken.
type restriction struct {
	tokens map[nlp.Token]struct{}
	roles  map[string]struct{}
}

func newRestriction() restriction {
	return restriction{
		tokens: make(map[nlp.Token]struct{}),
		roles:  make(map[string]struct{}),
	}
}

func (r restriction) restricts(t nlp.Token) bool {
	_, exists := r.tokens[t]
	return exists
}

func (r restriction) used(role string) bool {
	_, exists := r.roles[role]
	return exists
}

// allows reports whether role may be given to t. Modifiers and SU are always
// allowed.
func (r restriction) allows(t nlp.Token, role string) bool {
	if !nlp.IsRestrictedRole(role) {
		return true
	}
	return !r.used(role) && !r.restricts(t)
}

// assign records that t received role.
func (r restriction) assign(tree *nlp.DependencyTree, t nlp.Token, role string) restriction {
	if !nlp.IsRestrictedRole(role) {
		return r
	}
	for _, a := range tree.AncestorsOf(t) {
		r.tokens[a] = struct{}{}
	}
	for d := range tree.DescendantsOf(t) {
		r.tokens[d] = struct{}{}
	}
	if nlp.IsNumberedRole(role) {
		r.roles[role] = struct{}{}
	}
	return r
}
