package srl

import (
	"sort"

	nlp "spinach/nlp/types"
)

// Candidates returns the possible arguments of predicate: the children of
// the predicate and of each of its ancestors, and the root. The result is in
// sentence order.
func Candidates(tree *nlp.DependencyTree, predicate nlp.Token) []nlp.Token {
	seen := make(map[nlp.Token]bool)
	var retval []nlp.Token
	add := func(t nlp.Token) {
		if !seen[t] {
			seen[t] = true
			retval = append(retval, t)
		}
	}
	for _, child := range tree.ChildrenOf(predicate) {
		add(child)
	}
	for _, ancestor := range tree.AncestorsOf(predicate) {
		for _, child := range tree.ChildrenOf(ancestor) {
			add(child)
		}
	}
	if root, ok := tree.Root(); ok {
		add(root)
	}
	sort.Sort(nlp.ByIndex(retval))
	return retval
}
