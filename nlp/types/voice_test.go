package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// chain builds a flat tree: the token at root is the root and every other
// token attaches to it.
func chain(root int, tagged ...[3]string) *DependencyTree {
	tree := NewDependencyTree(len(tagged))
	for i, tg := range tagged {
		head := root
		if i == root {
			head = -1
		}
		tree.Append(Token{Form: tg[0], Lemma: tg[1], POS: tg[2], Index: i, Head: head})
	}
	return tree
}

func TestVoiceOf(t *testing.T) {
	cases := []struct {
		name     string
		tree     *DependencyTree
		verb     int
		expected Voice
	}{
		{"noun", chain(1, [3]string{"Dogs", "dog", "NNS"}, [3]string{"chase", "chase", "VBP"}), 0, NotVerb},
		{"present", chain(1, [3]string{"Dogs", "dog", "NNS"}, [3]string{"chase", "chase", "VBP"}), 1, Active},
		{"passive", chain(2, [3]string{"cats", "cat", "NNS"}, [3]string{"were", "be", "VBD"}, [3]string{"chased", "chase", "VBN"}), 2, Passive},
		{"perfect", chain(2, [3]string{"dogs", "dog", "NNS"}, [3]string{"have", "have", "VBP"}, [3]string{"chased", "chase", "VBN"}), 2, Active},
		{"reduced relative", chain(1, [3]string{"cats", "cat", "NNS"}, [3]string{"chased", "chase", "VBN"}), 1, Passive},
		{"infinitive", chain(0, [3]string{"want", "want", "VBP"}, [3]string{"to", "to", "TO"}, [3]string{"chase", "chase", "VB"}), 2, Infinitive},
		{"modal", chain(1, [3]string{"will", "will", "MD"}, [3]string{"chase", "chase", "VB"}), 1, Active},
		{"progressive", chain(1, [3]string{"is", "be", "VBZ"}, [3]string{"chasing", "chase", "VBG"}), 1, Active},
		{"gerund", chain(1, [3]string{"enjoys", "enjoy", "VBZ"}, [3]string{"chasing", "chase", "VBG"}), 1, Gerund},
		{"copula", chain(1, [3]string{"Cats", "cat", "NNS"}, [3]string{"are", "be", "VBP"}, [3]string{"fast", "fast", "JJ"}), 1, Copulative},
		{"conjunction boundary", chain(1,
			[3]string{"was", "be", "VBD"}, [3]string{"sleeping", "sleep", "VBG"},
			[3]string{"and", "and", "CC"}, [3]string{"snoring", "snore", "VBG"}), 3, Gerund},
		{"window bound", chain(6,
			[3]string{"is", "be", "VBZ"}, [3]string{"a", "a", "DT"}, [3]string{"b", "b", "NN"},
			[3]string{"c", "c", "NN"}, [3]string{"d", "d", "NN"}, [3]string{"e", "e", "NN"},
			[3]string{"chasing", "chase", "VBG"}), 6, Gerund},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, c.tree.VoiceOf(c.tree.Token(c.verb)))
		})
	}
}

func TestVoiceString(t *testing.T) {
	assert.Equal(t, "passive", Passive.String())
	assert.Equal(t, "unknown", Voice(42).String())
}
