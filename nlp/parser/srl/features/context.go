package features

import (
	nlp "spinach/nlp/types"
)

// Context holds one (frame, candidate, predicate) triple and caches the tree
// lookups shared by several templates.
type Context struct {
	Frame     *nlp.FrameAnnotation
	Tree      *nlp.DependencyTree
	Candidate nlp.Token
	Predicate nlp.Token

	ancestor     *nlp.Token
	up, down     []nlp.Token
	pathComputed bool
	voice        *nlp.Voice
}

func NewContext(frame *nlp.FrameAnnotation, candidate, predicate nlp.Token) *Context {
	return &Context{
		Frame:     frame,
		Tree:      frame.Tree,
		Candidate: candidate,
		Predicate: predicate,
	}
}

// CommonAncestor of the candidate and the predicate
func (c *Context) CommonAncestor() (nlp.Token, bool) {
	if c.ancestor == nil {
		ancestor, ok := c.Tree.CommonAncestorOf(c.Candidate, c.Predicate)
		if !ok {
			ancestor = nlp.EmptyToken
		}
		c.ancestor = &ancestor
	}
	return *c.ancestor, !c.ancestor.IsEmpty()
}

// Path returns the tokens climbed from the candidate and from the predicate
// to their common ancestor, the ancestor itself excluded from both.
func (c *Context) Path() (up, down []nlp.Token) {
	if !c.pathComputed {
		c.pathComputed = true
		if ancestor, ok := c.CommonAncestor(); ok {
			up = c.Tree.PathToAncestor(c.Candidate, ancestor)
			down = c.Tree.PathToAncestor(c.Predicate, ancestor)
			c.up, c.down = up[:len(up)-1], down[:len(down)-1]
		}
	}
	return c.up, c.down
}

func (c *Context) Voice() nlp.Voice {
	if c.voice == nil {
		v := c.Tree.VoiceOf(c.Predicate)
		c.voice = &v
	}
	return *c.voice
}

// Neighbour returns the token offset positions away from t, or the empty
// token outside the sentence.
func (c *Context) Neighbour(t nlp.Token, offset int) nlp.Token {
	i := t.Index + offset
	if i < 0 || i >= c.Tree.Len() {
		return nlp.EmptyToken
	}
	return c.Tree.Token(i)
}
