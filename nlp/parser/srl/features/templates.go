package features

import (
	"fmt"
	"strings"

	nlp "spinach/nlp/types"
	"spinach/util"
)

const (
	NONE          = "<none>"
	MAX_DISTANCE  = 5
	MAX_ARGUMENTS = 3
	SUFFIX_LENGTH = 3
	PREFIX_LENGTH = 3
)

var (
	PredicateTemplates = []string{
		"bias",
		"pred.word", "pred.lemma", "pred.pos", "pred.deprel", "pred.head.pos",
		"pred.child.deprels", "pred.window.pos", "pred.suffix", "pred.signature",
	}
	ArgumentTemplates = []string{
		"bias",
		"arg.word", "arg.lemma", "arg.pos", "arg.deprel", "arg.head.pos", "arg.prefix",
		"arg.left.pos", "arg.right.pos",
		"pred.lemma", "pred.pos", "pred.subcat",
		"path", "path.pos", "path.length", "position", "distance", "voice",
		"pred.lemma+arg.pos",
	}
)

func single(values ...string) []string {
	return values
}

func orNone(s string) string {
	if len(s) == 0 {
		return NONE
	}
	return s
}

func word(t nlp.Token) string {
	return strings.ToLower(t.Form)
}

func headPOS(c *Context, t nlp.Token) string {
	head, ok := c.Tree.ParentOf(t)
	if !ok {
		return NONE
	}
	return head.POS
}

func childDepRels(c *Context, t nlp.Token) []string {
	children := c.Tree.ChildrenOf(t)
	rels := make([]string, len(children))
	for i, child := range children {
		rels[i] = child.DepRel
	}
	return rels
}

func joinPath(tokens []nlp.Token, field func(nlp.Token) string, sep string) string {
	strs := make([]string, len(tokens))
	for i, t := range tokens {
		strs[i] = field(t)
	}
	return strings.Join(strs, sep)
}

func position(c *Context) string {
	switch {
	case c.Candidate.Index < c.Predicate.Index:
		return "before"
	case c.Candidate.Index > c.Predicate.Index:
		return "after"
	}
	return "self"
}

// DefaultRegistry holds the predicate and argument templates. Predicate
// templates describe Context.Predicate only.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("bias", func(c *Context) []string {
		return single("1")
	})

	// predicate
	r.Register("pred.word", func(c *Context) []string {
		return single(word(c.Predicate))
	})
	r.Register("pred.lemma", func(c *Context) []string {
		return single(orNone(c.Predicate.Lemma))
	})
	r.Register("pred.pos", func(c *Context) []string {
		return single(c.Predicate.POS)
	})
	r.Register("pred.deprel", func(c *Context) []string {
		return single(c.Predicate.DepRel)
	})
	r.Register("pred.head.pos", func(c *Context) []string {
		return single(headPOS(c, c.Predicate))
	})
	r.Register("pred.child.deprels", func(c *Context) []string {
		return childDepRels(c, c.Predicate)
	})
	r.Register("pred.window.pos", func(c *Context) []string {
		return single(
			"-1:"+orNone(c.Neighbour(c.Predicate, -1).POS),
			"+1:"+orNone(c.Neighbour(c.Predicate, 1).POS),
		)
	})
	r.Register("pred.suffix", func(c *Context) []string {
		return single(util.Suffix(word(c.Predicate), SUFFIX_LENGTH))
	})
	r.Register("pred.signature", func(c *Context) []string {
		return single(util.Signature(c.Predicate.Form))
	})
	r.Register("pred.subcat", func(c *Context) []string {
		rels := childDepRels(c, c.Predicate)
		return single(strings.Join(rels, "_"))
	})

	// candidate argument
	r.Register("arg.word", func(c *Context) []string {
		return single(word(c.Candidate))
	})
	r.Register("arg.lemma", func(c *Context) []string {
		return single(orNone(c.Candidate.Lemma))
	})
	r.Register("arg.pos", func(c *Context) []string {
		return single(c.Candidate.POS)
	})
	r.Register("arg.prefix", func(c *Context) []string {
		return single(util.Prefix(word(c.Candidate), PREFIX_LENGTH))
	})
	r.Register("arg.deprel", func(c *Context) []string {
		return single(c.Candidate.DepRel)
	})
	r.Register("arg.head.pos", func(c *Context) []string {
		return single(headPOS(c, c.Candidate))
	})
	r.Register("arg.left.pos", func(c *Context) []string {
		left := c.Tree.LeftSiblingsOf(c.Candidate)
		if len(left) < 2 {
			return single(NONE)
		}
		return single(left[len(left)-2].POS)
	})
	r.Register("arg.right.pos", func(c *Context) []string {
		right := c.Tree.RightSiblingsOf(c.Candidate)
		if len(right) < 2 {
			return single(NONE)
		}
		return single(right[1].POS)
	})

	// relation between the two
	r.Register("path", func(c *Context) []string {
		up, down := c.Path()
		return single(joinPath(up, func(t nlp.Token) string { return t.DepRel }, "^") + "|" +
			joinPath(down, func(t nlp.Token) string { return t.DepRel }, "v"))
	})
	r.Register("path.pos", func(c *Context) []string {
		up, down := c.Path()
		return single(joinPath(up, func(t nlp.Token) string { return t.POS }, "^") + "|" +
			joinPath(down, func(t nlp.Token) string { return t.POS }, "v"))
	})
	r.Register("path.length", func(c *Context) []string {
		up, down := c.Path()
		return single(fmt.Sprintf("%d", len(up)+len(down)))
	})
	r.Register("position", func(c *Context) []string {
		return single(position(c))
	})
	r.Register("distance", func(c *Context) []string {
		d := util.Min(util.AbsInt(c.Candidate.Index-c.Predicate.Index), MAX_DISTANCE)
		return single(fmt.Sprintf("%d", d))
	})
	r.Register("voice", func(c *Context) []string {
		return single(c.Voice().String() + "&" + position(c))
	})
	r.Register("pred.lemma+arg.pos", func(c *Context) []string {
		return single(orNone(c.Predicate.Lemma) + "&" + c.Candidate.POS)
	})
	r.Register("arg.count", func(c *Context) []string {
		n := util.Min(c.Frame.NumArguments(c.Predicate), MAX_ARGUMENTS)
		return single(fmt.Sprintf("%d", n))
	})
	return r
}
