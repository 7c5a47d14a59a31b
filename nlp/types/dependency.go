package types

import (
	"errors"
	"fmt"

	"spinach/alg/graph"
)

var (
	ErrNoRoot          = errors.New("tree has no root")
	ErrMultipleRoots   = errors.New("tree has more than one root")
	ErrHeadOutOfRange  = errors.New("head index out of range")
	ErrCycle           = errors.New("tree has a cycle")
	ErrIndexOutOfOrder = errors.New("token index does not match its position")
)

// DependencyTree holds the tokens of a sentence in order together with a
// children multimap keyed by head index. Children are kept in insertion
// (sentence) order.
type DependencyTree struct {
	tokens   []Token
	children map[int][]int
}

var _ graph.DirectedGraph = &DependencyTree{}

func NewDependencyTree(capacity int) *DependencyTree {
	return &DependencyTree{
		tokens:   make([]Token, 0, capacity),
		children: make(map[int][]int, capacity),
	}
}

// TreeOf builds a tree from tokens given in sentence order.
func TreeOf(tokens ...Token) *DependencyTree {
	tree := NewDependencyTree(len(tokens))
	for _, t := range tokens {
		tree.Append(t)
	}
	return tree
}

// Append adds the next token of the sentence. Its head may reference a token
// that is appended later.
func (d *DependencyTree) Append(t Token) {
	if t.Index != len(d.tokens) {
		panic(fmt.Sprintf("%v: token %v appended at position %d", ErrIndexOutOfOrder, t, len(d.tokens)))
	}
	d.tokens = append(d.tokens, t)
	if t.Head >= 0 {
		d.children[t.Head] = append(d.children[t.Head], t.Index)
	}
}

// Validate checks that the tree has a single root and no cycle.
func (d *DependencyTree) Validate() error {
	roots := 0
	for _, t := range d.tokens {
		if t.Head < 0 {
			roots++
			continue
		}
		if t.Head >= len(d.tokens) {
			return fmt.Errorf("%w: token %v has head %d of %d tokens", ErrHeadOutOfRange, t, t.Head, len(d.tokens))
		}
	}
	switch {
	case roots == 0:
		return ErrNoRoot
	case roots > 1:
		return fmt.Errorf("%w: %d roots", ErrMultipleRoots, roots)
	}
	if cycle := graph.FindCycle(d); cycle != nil {
		return fmt.Errorf("%w: %v", ErrCycle, cycle)
	}
	return nil
}

func (d *DependencyTree) Len() int {
	return len(d.tokens)
}

func (d *DependencyTree) Token(i int) Token {
	return d.tokens[i]
}

// Tokens returns the sentence tokens; the slice must not be modified.
func (d *DependencyTree) Tokens() []Token {
	return d.tokens
}

// Root returns the first token with a negative head.
func (d *DependencyTree) Root() (Token, bool) {
	for _, t := range d.tokens {
		if t.Head < 0 {
			return t, true
		}
	}
	return EmptyToken, false
}

func (d *DependencyTree) contains(t Token) bool {
	return t.Index >= 0 && t.Index < len(d.tokens)
}

func (d *DependencyTree) ParentOf(t Token) (Token, bool) {
	if !d.contains(t) || t.Head < 0 || t.Head >= len(d.tokens) {
		return EmptyToken, false
	}
	return d.tokens[t.Head], true
}

func (d *DependencyTree) ChildrenOf(t Token) []Token {
	if !d.contains(t) {
		return nil
	}
	indices := d.children[t.Index]
	retval := make([]Token, len(indices))
	for i, idx := range indices {
		retval[i] = d.tokens[idx]
	}
	return retval
}

// AncestorsOf returns the chain of heads of t, nearest first, ending at the
// root. A cycle in the head chain is a malformed tree and panics.
func (d *DependencyTree) AncestorsOf(t Token) []Token {
	var retval []Token
	cur, ok := d.ParentOf(t)
	for ok {
		if len(retval) >= len(d.tokens) {
			panic(fmt.Sprintf("%v: ancestor chain of %v does not reach a root", ErrCycle, t))
		}
		retval = append(retval, cur)
		cur, ok = d.ParentOf(cur)
	}
	return retval
}

// DescendantsOf returns all tokens dominated by t, t excluded.
func (d *DependencyTree) DescendantsOf(t Token) map[Token]struct{} {
	retval := make(map[Token]struct{})
	d.collectDescendants(t, retval)
	return retval
}

func (d *DependencyTree) collectDescendants(t Token, into map[Token]struct{}) {
	for _, child := range d.ChildrenOf(t) {
		if _, seen := into[child]; seen {
			panic(fmt.Sprintf("%v: %v reached twice below %v", ErrCycle, child, t))
		}
		into[child] = struct{}{}
		d.collectDescendants(child, into)
	}
}

// SiblingsOf returns the children of t's parent, t included. The root is
// its own only sibling.
func (d *DependencyTree) SiblingsOf(t Token) []Token {
	parent, ok := d.ParentOf(t)
	if !ok {
		return []Token{t}
	}
	return d.ChildrenOf(parent)
}

func (d *DependencyTree) LeftSiblingsOf(t Token) []Token {
	var retval []Token
	for _, s := range d.SiblingsOf(t) {
		if s.Index <= t.Index {
			retval = append(retval, s)
		}
	}
	return retval
}

func (d *DependencyTree) RightSiblingsOf(t Token) []Token {
	var retval []Token
	for _, s := range d.SiblingsOf(t) {
		if s.Index >= t.Index {
			retval = append(retval, s)
		}
	}
	return retval
}

// CommonAncestorOf returns the lowest token present in both the chain
// starting at a and the chain starting at b.
func (d *DependencyTree) CommonAncestorOf(a, b Token) (Token, bool) {
	bChain := make(map[Token]struct{}, len(d.tokens))
	bChain[b] = struct{}{}
	for _, t := range d.AncestorsOf(b) {
		bChain[t] = struct{}{}
	}
	if _, exists := bChain[a]; exists {
		return a, true
	}
	for _, t := range d.AncestorsOf(a) {
		if _, exists := bChain[t]; exists {
			return t, true
		}
	}
	return EmptyToken, false
}

// PathToAncestor returns t, its head, ... up to and including ancestor. If
// ancestor does not dominate t the path stops at the root.
func (d *DependencyTree) PathToAncestor(t, ancestor Token) []Token {
	if !d.contains(t) {
		return nil
	}
	retval := []Token{t}
	if t == ancestor {
		return retval
	}
	for _, cur := range d.AncestorsOf(t) {
		retval = append(retval, cur)
		if cur == ancestor {
			break
		}
	}
	return retval
}

// graph.DirectedGraph, with one head -> dependent edge per non root token;
// the edge id is the dependent's index

func (d *DependencyTree) GetVertices() []int {
	vertices := make([]int, len(d.tokens))
	for i := range d.tokens {
		vertices[i] = i
	}
	return vertices
}

func (d *DependencyTree) GetEdges() []int {
	edges := make([]int, 0, len(d.tokens))
	for _, t := range d.tokens {
		if t.Head >= 0 && t.Head < len(d.tokens) {
			edges = append(edges, t.Index)
		}
	}
	return edges
}

func (d *DependencyTree) GetVertex(i int) graph.Vertex {
	return d.tokens[i]
}

func (d *DependencyTree) GetEdge(i int) graph.Edge {
	return d.GetDirectedEdge(i)
}

func (d *DependencyTree) GetDirectedEdge(i int) graph.DirectedEdge {
	t := d.tokens[i]
	return graph.BasicDirectedEdge{t.Index, t.Head, t.Index}
}

func (d *DependencyTree) NumberOfVertices() int {
	return len(d.tokens)
}

func (d *DependencyTree) NumberOfEdges() int {
	return len(d.GetEdges())
}
