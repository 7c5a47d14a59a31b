package types

import (
	"fmt"
	"sort"
	"strings"

	"spinach/util"
)

type Argument struct {
	Token Token
	Role  string
}

// FrameAnnotation is the semantic layer of one sentence: the predicates in
// processing order and, per predicate, the role of each argument.
type FrameAnnotation struct {
	Tree *DependencyTree

	predicates []Token
	arguments  map[Token]map[Token]string
	senses     map[Token]string
}

var _ util.Equaler = &FrameAnnotation{}

func NewFrameAnnotation(tree *DependencyTree) *FrameAnnotation {
	return &FrameAnnotation{
		Tree:      tree,
		arguments: make(map[Token]map[Token]string),
		senses:    make(map[Token]string),
	}
}

// AddPredicate appends p to the predicate list; duplicates are not checked.
func (f *FrameAnnotation) AddPredicate(p Token) {
	f.predicates = append(f.predicates, p)
	if _, exists := f.arguments[p]; !exists {
		f.arguments[p] = make(map[Token]string)
	}
}

func (f *FrameAnnotation) Predicates() []Token {
	return f.predicates
}

func (f *FrameAnnotation) IsPredicate(t Token) bool {
	_, exists := f.arguments[t]
	return exists
}

func (f *FrameAnnotation) AddArgument(p, a Token, role string) {
	if role == NilRole {
		panic(fmt.Sprintf("Cannot store reserved role %s for argument %v of %v", NilRole, a, p))
	}
	args, exists := f.arguments[p]
	if !exists {
		panic(fmt.Sprintf("Cannot add argument %v to unknown predicate %v", a, p))
	}
	args[a] = role
}

func (f *FrameAnnotation) RoleOf(p, a Token) (string, bool) {
	role, exists := f.arguments[p][a]
	return role, exists
}

// ArgumentsOf returns the arguments of p in sentence order.
func (f *FrameAnnotation) ArgumentsOf(p Token) []Argument {
	args := f.arguments[p]
	retval := make([]Argument, 0, len(args))
	for a, role := range args {
		retval = append(retval, Argument{a, role})
	}
	sort.Slice(retval, func(i, j int) bool { return retval[i].Token.Index < retval[j].Token.Index })
	return retval
}

func (f *FrameAnnotation) NumArguments(p Token) int {
	return len(f.arguments[p])
}

func (f *FrameAnnotation) SetSense(p Token, sense string) {
	f.senses[p] = sense
}

func (f *FrameAnnotation) SenseOf(p Token) (string, bool) {
	sense, exists := f.senses[p]
	return sense, exists
}

// Trim drops predicates that have no arguments.
func (f *FrameAnnotation) Trim() {
	kept := f.predicates[:0]
	for _, p := range f.predicates {
		if len(f.arguments[p]) > 0 {
			kept = append(kept, p)
			continue
		}
		delete(f.arguments, p)
		delete(f.senses, p)
	}
	f.predicates = kept
}

// Equal compares predicates (as a list) and argument roles.
func (f *FrameAnnotation) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(*FrameAnnotation)
	if !ok || other == nil || len(f.predicates) != len(other.predicates) {
		return false
	}
	for i, p := range f.predicates {
		if other.predicates[i] != p {
			return false
		}
		mine, theirs := f.arguments[p], other.arguments[p]
		if len(mine) != len(theirs) {
			return false
		}
		for a, role := range mine {
			if theirs[a] != role {
				return false
			}
		}
	}
	return true
}

func (f *FrameAnnotation) String() string {
	strs := make([]string, 0, len(f.predicates))
	for _, p := range f.predicates {
		args := f.ArgumentsOf(p)
		argStrs := make([]string, len(args))
		for i, a := range args {
			argStrs[i] = fmt.Sprintf("%s:%s", a.Token.Form, a.Role)
		}
		strs = append(strs, fmt.Sprintf("%s[%s]", p.Form, strings.Join(argStrs, " ")))
	}
	return strings.Join(strs, " ")
}
