package conll09

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	nlp "spinach/nlp/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(lines ...string) string {
	for i, l := range lines {
		lines[i] = strings.ReplaceAll(l, " ", "\t")
	}
	return strings.Join(lines, "\n") + "\n"
}

var corpus = rows(
	"1 Dogs dog dog NNS NNS _ _ 2 2 SBJ SBJ _ _ A0",
	"2 chase chase chase VBP VBP _ _ 0 0 ROOT ROOT Y chase.01 _",
	"3 cats cat cat NNS NNS _ _ 2 2 OBJ OBJ _ _ A1",
	"4 fast fast fast RB RB _ _ 2 2 MNR MNR _ _ AM-MNR",
	"",
	"1 It it it PRP PRP _ _ 2 2 SBJ SBJ _ _ A0 _",
	"2 tried try try VBD VBD _ _ 0 0 ROOT ROOT Y try.01 _ _",
	"3 to to to TO TO _ _ 2 4 OPRD OPRD _ _ A1 _",
	"4 swim swim swim VB VB _ _ 3 2 IM IM Y swim.01 _ _",
	"",
)

func TestRead(t *testing.T) {
	sents, err := Read(strings.NewReader(corpus), 0)
	require.NoError(t, err)
	require.Len(t, sents, 2)
	require.Len(t, sents[0], 4)
	assert.Equal(t, 1, sents[0].NumPredicates())
	assert.Equal(t, 2, sents[1].NumPredicates())

	row := sents[1][2]
	assert.Equal(t, 3, row.ID)
	assert.Equal(t, "to", row.Form)
	assert.Equal(t, 2, row.Head)
	assert.Equal(t, 4, row.PHead)
	assert.Equal(t, "", row.Feat)
	assert.False(t, row.FillPred)
	assert.Equal(t, []string{"A1", ""}, row.APreds)

	limited, err := Read(strings.NewReader(corpus), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestReadWithoutTrailingBlankLine(t *testing.T) {
	sents, err := Read(strings.NewReader(strings.TrimRight(corpus, "\n")), 0)
	require.NoError(t, err)
	assert.Len(t, sents, 2)
}

func TestReadErrors(t *testing.T) {
	cases := map[string]struct {
		input string
		line  string
		err   error
	}{
		"columns":  {rows("1 Dogs dog dog NNS NNS _ _ 2"), "line 1", ErrNumFields},
		"id":       {rows("x Dogs dog dog NNS NNS _ _ 0 0 ROOT ROOT _ _"), "line 1", nil},
		"head":     {rows("1 Dogs dog dog NNS NNS _ _ 0 0 ROOT ROOT _ _", "2 a a a DT DT _ _ one 1 NMOD NMOD _ _"), "line 2", nil},
		"sequence": {rows("1 Dogs dog dog NNS NNS _ _ 0 0 ROOT ROOT _ _", "3 a a a DT DT _ _ 1 1 NMOD NMOD _ _"), "line 2", nil},
		"apreds":   {rows("", "1 run run run VB VB _ _ 0 0 ROOT ROOT Y run.01 _", "2 now now now RB RB _ _ 1 1 TMP TMP _ _"), "line 2", ErrNumAPreds},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(c.input), 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.line)
			if c.err != nil {
				assert.True(t, errors.Is(err, c.err), err.Error())
			}
		})
	}
}

func TestSentence2Frame(t *testing.T) {
	sents, err := Read(strings.NewReader(corpus), 0)
	require.NoError(t, err)

	frame, err := Sentence2Frame(sents[0])
	require.NoError(t, err)
	tree := frame.Tree
	root, ok := tree.Root()
	require.True(t, ok)
	assert.Equal(t, nlp.Token{Form: "chase", Lemma: "chase", POS: "VBP", DepRel: "ROOT", Index: 1, Head: -1}, root)
	assert.Equal(t, []nlp.Token{root}, frame.Predicates())
	assert.Equal(t, []nlp.Argument{
		{Token: tree.Token(0), Role: "A0"},
		{Token: tree.Token(2), Role: "A1"},
		{Token: tree.Token(3), Role: "AM-MNR"},
	}, frame.ArgumentsOf(root))
	sense, _ := frame.SenseOf(root)
	assert.Equal(t, "chase.01", sense)

	frame, err = Sentence2Frame(sents[1])
	require.NoError(t, err)
	require.Len(t, frame.Predicates(), 2)
	swim := frame.Predicates()[1]
	assert.Equal(t, "swim", swim.Form)
	assert.Equal(t, 0, frame.NumArguments(swim))
	role, ok := frame.RoleOf(frame.Predicates()[0], frame.Tree.Token(2))
	require.True(t, ok)
	assert.Equal(t, "A1", role)
}

func TestUsePredicted(t *testing.T) {
	UsePredicted = true
	defer func() { UsePredicted = false }()

	sents, err := Read(strings.NewReader(corpus), 0)
	require.NoError(t, err)
	frame, err := Sentence2Frame(sents[1])
	require.NoError(t, err)
	assert.Equal(t, 3, frame.Tree.Token(2).Head)
}

func TestSentence2FrameErrors(t *testing.T) {
	sents, err := Read(strings.NewReader(rows(
		"1 a a a DT DT _ _ 2 2 NMOD NMOD _ _",
		"2 b b b NN NN _ _ 1 1 NMOD NMOD _ _",
	)), 0)
	require.NoError(t, err)
	_, err = Sentence2Frame(sents[0])
	assert.True(t, errors.Is(err, nlp.ErrNoRoot))

	sents, err = Read(strings.NewReader(rows(
		"1 run run run VB VB _ _ 0 0 ROOT ROOT Y run.01 _",
		"2 now now now RB RB _ _ 1 1 TMP TMP _ _ NIL",
	)), 0)
	require.NoError(t, err)
	_, err = Sentence2Frame(sents[0])
	assert.True(t, errors.Is(err, ErrReservedTag))
}

func TestRoundTrip(t *testing.T) {
	sents, err := Read(strings.NewReader(corpus), 0)
	require.NoError(t, err)
	var frames []*nlp.FrameAnnotation
	for _, sent := range sents {
		frame, err := Sentence2Frame(sent)
		require.NoError(t, err)
		frames = append(frames, frame)
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Frames2Sentences(frames)))
	assert.True(t, strings.HasPrefix(buf.String(), "1\tDogs\tdog\tdog\tNNS\tNNS\t_\t_\t2\t2\tSBJ\tSBJ\t_\t_\tA0\n"))

	reread, err := Read(&buf, 0)
	require.NoError(t, err)
	require.Len(t, reread, 2)
	for i, sent := range reread {
		frame, err := Sentence2Frame(sent)
		require.NoError(t, err)
		assert.True(t, frames[i].Equal(frame), "sentence %d: %v != %v", i, frames[i], frame)
	}
}

func TestParseCorpus(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "train.conll09")
	require.NoError(t, os.WriteFile(filename, []byte(corpus), 0o644))

	frames, err := ParseCorpus(filename, 0)
	require.NoError(t, err)
	assert.Len(t, frames, 2)

	out := filepath.Join(t.TempDir(), "out.conll09")
	require.NoError(t, WriteFile(out, Frames2Sentences(frames)))
	again, err := ParseCorpus(out, 0)
	require.NoError(t, err)
	assert.Len(t, again, 2)

	_, err = ParseCorpus(filepath.Join(t.TempDir(), "missing"), 0)
	assert.Error(t, err)
}

var predictedCorpus = rows(
	"1 Dogs dog dogs NNS NN _ _ 2 3 SBJ NMOD _ _ A0",
	"2 chase chase chased VBP VBD _ _ 0 0 ROOT ROOT Y chase.01 _",
	"3 cats cat cats NNS NNS _ _ 2 2 OBJ OBJ _ _ A1",
	"",
)

func TestAnnotateKeepsColumns(t *testing.T) {
	defer func() { UsePredicted = false }()
	for _, usePredicted := range []bool{false, true} {
		UsePredicted = usePredicted
		sents, frames, err := readCorpus(t, predictedCorpus)
		require.NoError(t, err)

		annotated, err := AnnotateAll(sents, frames)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, annotated))
		assert.Equal(t, predictedCorpus, buf.String(), "predicted columns: %v", usePredicted)

		tree := frames[0].Tree
		relabeled := nlp.NewFrameAnnotation(tree)
		relabeled.AddPredicate(tree.Token(0))
		relabeled.AddArgument(tree.Token(0), tree.Token(2), "A1")
		sent, err := Annotate(sents[0], relabeled)
		require.NoError(t, err)
		assert.Equal(t, rows(
			"1 Dogs dog dogs NNS NN _ _ 2 3 SBJ NMOD Y "+tree.Token(0).Lemma+" _",
			"2 chase chase chased VBP VBD _ _ 0 0 ROOT ROOT _ _ _",
			"3 cats cat cats NNS NNS _ _ 2 2 OBJ OBJ _ _ A1",
		), sentenceString(sent))
	}
}

func TestAnnotateMisaligned(t *testing.T) {
	sents, frames, err := readCorpus(t, corpus)
	require.NoError(t, err)
	_, err = Annotate(sents[0], frames[1])
	assert.Error(t, err)
	_, err = AnnotateAll(sents, frames[:1])
	assert.Error(t, err)
}

func readCorpus(t *testing.T, content string) (Sentences, []*nlp.FrameAnnotation, error) {
	filename := filepath.Join(t.TempDir(), "corpus.conll09")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return ReadCorpus(filename, 0)
}

func sentenceString(sent Sentence) string {
	var lines []string
	for _, row := range sent {
		lines = append(lines, row.String())
	}
	return strings.Join(lines, "\n") + "\n"
}
