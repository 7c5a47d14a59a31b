package types

import (
	"fmt"

	"spinach/util"
)

// Token is a single word of a dependency parsed sentence. Index and Head are
// 0-based sentence positions; a negative Head marks the root.
type Token struct {
	Form   string
	Lemma  string
	POS    string
	DepRel string
	Index  int
	Head   int
}

// EmptyToken stands for absent context, e.g. the position before the
// sentence start.
var EmptyToken = Token{Index: -1, Head: -1}

func (t Token) IsEmpty() bool {
	return t == EmptyToken
}

func (t Token) IsRoot() bool {
	return t.Head < 0 && t.Index >= 0
}

// ID implements graph.Vertex
func (t Token) ID() int {
	return t.Index
}

func (t Token) Equal(otherEq util.Equaler) bool {
	other, ok := otherEq.(Token)
	return ok && t == other
}

func (t Token) String() string {
	if t.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprintf("%d:%s/%s", t.Index, t.Form, t.POS)
}

// ByIndex sorts tokens in sentence order
type ByIndex []Token

func (b ByIndex) Len() int           { return len(b) }
func (b ByIndex) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }
func (b ByIndex) Less(i, j int) bool { return b[i].Index < b[j].Index }
