package types

import (
	"regexp"
	"strings"
)

const (
	// NilRole marks "not an argument". It is a decoding sentinel and is never
	// stored in a FrameAnnotation.
	NilRole        = "NIL"
	SURole         = "SU"
	ModifierPrefix = "AM-"
)

var numberedRole = regexp.MustCompile(`^A[0-9]$`)

// IsNumberedRole reports core roles A0..A9, at most one of which may be
// assigned per predicate.
func IsNumberedRole(role string) bool {
	return numberedRole.MatchString(role)
}

func IsModifierRole(role string) bool {
	return strings.HasPrefix(role, ModifierPrefix)
}

// IsRestrictedRole reports roles subject to the syntactic non-overlap
// constraint: everything but NIL, SU and modifiers.
func IsRestrictedRole(role string) bool {
	return role != NilRole && role != SURole && !IsModifierRole(role)
}
