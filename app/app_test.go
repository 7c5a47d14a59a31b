package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spinach/eval"
	"spinach/nlp/format/conll09"
	"spinach/nlp/parser/srl"
	"spinach/nlp/parser/srl/features"
	nlp "spinach/nlp/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(lines ...string) string {
	for i, l := range lines {
		lines[i] = strings.ReplaceAll(l, " ", "\t")
	}
	return strings.Join(lines, "\n") + "\n"
}

var trainCorpus = rows(
	"1 Dogs dog dog NNS NNS _ _ 2 2 SBJ SBJ _ _ A0",
	"2 chase chase chase VBP VBP _ _ 0 0 ROOT ROOT Y chase.01 _",
	"3 cats cat cat NNS NNS _ _ 2 2 OBJ OBJ _ _ A1",
	"4 fast fast fast RB RB _ _ 2 2 MNR MNR _ _ AM-MNR",
	"",
)

const featureSetup = `predicate features:
  - pred.word
argument features:
  - arg.word
  - arg.deprel
  - position
`

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func quietLogger() *logrus.Logger {
	log := NewLogger(false)
	log.SetLevel(logrus.ErrorLevel)
	return log
}

func resetFlags() {
	decoderName, trainMode, labelsFile = srl.LEFT_TO_RIGHT, LOCAL, ""
	Iterations, BurnIn, limit, shuffle = 10, 0, 0, false
}

func TestLoadSetup(t *testing.T) {
	setup, err := LoadSetup("")
	require.NoError(t, err)
	assert.NotEmpty(t, setup.Predicate)
	assert.NotEmpty(t, setup.Argument)

	dir := t.TempDir()
	setup, err = LoadSetup(writeFile(t, dir, "features.yaml", featureSetup))
	require.NoError(t, err)
	assert.Equal(t, []string{"pred.word"}, setup.Predicate)
	assert.Equal(t, []string{"arg.word", "arg.deprel", "position"}, setup.Argument)

	_, err = LoadSetup(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRoles(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	path := writeFile(t, dir, "roles.conf", "# core\nA1\nNIL\nA0\n\n")
	setup, err := LoadSetup("")
	require.NoError(t, err)
	decoder, err := srl.NewDecoder(srl.LEFT_TO_RIGHT)
	require.NoError(t, err)
	parser, err := srl.NewParser(setup, features.DefaultRegistry(), decoder)
	require.NoError(t, err)
	require.NoError(t, LoadRoles(parser, path))
	assert.Equal(t, []string{"A1", "A0"}, parser.Arguments.Model.Labels.Values())

	gold, err := conll09.ParseCorpus(writeFile(t, dir, "train.conll09", trainCorpus), 0)
	require.NoError(t, err)
	parser.Arguments.IndexRoles(gold)
	assert.Equal(t, []string{"A1", "A0", "AM-MNR", nlp.NilRole}, parser.Arguments.Model.Labels.Values())
	assert.Error(t, LoadRoles(parser, filepath.Join(dir, "missing.conf")))
}

func TestTrainWriteReadParse(t *testing.T) {
	for _, decoder := range srl.Decoders {
		t.Run(decoder, func(t *testing.T) {
			resetFlags()
			decoderName = decoder
			dir := t.TempDir()
			corpusFile := writeFile(t, dir, "train.conll09", trainCorpus)
			setup, err := LoadSetup(writeFile(t, dir, "features.yaml", featureSetup))
			require.NoError(t, err)
			gold, err := conll09.ParseCorpus(corpusFile, 0)
			require.NoError(t, err)

			parser, err := TrainParser(quietLogger(), setup, gold, gold, nil)
			require.NoError(t, err)
			parsed := ParseAll(parser, gold)
			require.Len(t, parsed, 1)
			assert.True(t, gold[0].Equal(parsed[0]))

			model := filepath.Join(dir, "srl.model")
			require.NoError(t, WriteModel(model, NewSerialization(parser, setup)))
			data, err := ReadModel(model)
			require.NoError(t, err)
			assert.Equal(t, decoder, data.Decoder)
			assert.Equal(t, setup, data.Setup)

			reloaded, err := LoadParser(quietLogger(), model, "")
			require.NoError(t, err)
			assert.Equal(t, decoder, reloaded.Decoder.Name())
			assert.Equal(t, parser.Arguments.Model.Generation, reloaded.Arguments.Model.Generation)
			assert.Equal(t, parser.Arguments.Model.Labels.Values(), reloaded.Arguments.Model.Labels.Values())
			assert.True(t, parsed[0].Equal(reloaded.Parse(gold[0].Tree)))

			// a loaded model scores unseen features without indexing them
			assert.True(t, reloaded.Detector.Model.Features.Frozen)
			assert.True(t, reloaded.Arguments.Model.Features.Frozen)
			known := reloaded.Arguments.Model.Features.Len()
			unseen, err := conll09.ParseCorpus(writeFile(t, dir, "unseen.conll09", rows(
				"1 Cats cat cat NNS NNS _ _ 2 2 SBJ SBJ _ _",
				"2 bite bite bite VBP VBP _ _ 0 0 ROOT ROOT _ _",
				"3 mice mouse mouse NNS NNS _ _ 2 2 OBJ OBJ _ _",
				"",
			)), 0)
			require.NoError(t, err)
			assert.NotPanics(t, func() { ParseAll(reloaded, unseen) })
			assert.Equal(t, known, reloaded.Arguments.Model.Features.Len())

			result := eval.Evaluate(reloaded, gold)
			assert.Equal(t, 1.0, result.Role(eval.TOTAL).F1())
			assert.Equal(t, 1.0, result.Predicates.F1())
			assert.Equal(t, 1.0, eval.EvaluateGold(reloaded, gold).Role(eval.TOTAL).F1())

			out := filepath.Join(dir, "parsed.conll09")
			require.NoError(t, conll09.WriteFile(out, conll09.Frames2Sentences(parsed)))
			reread, err := conll09.ParseCorpus(out, 0)
			require.NoError(t, err)
			compared, err := eval.Compare(reread, gold)
			require.NoError(t, err)
			assert.Equal(t, 1.0, compared.Role(eval.TOTAL).F1())
		})
	}
}

func TestModelDecoderOverride(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	gold, err := conll09.ParseCorpus(writeFile(t, dir, "train.conll09", trainCorpus), 0)
	require.NoError(t, err)
	setup, err := LoadSetup("")
	require.NoError(t, err)
	parser, err := TrainParser(quietLogger(), setup, gold, nil, nil)
	require.NoError(t, err)

	model := filepath.Join(dir, "srl.model")
	require.NoError(t, WriteModel(model, NewSerialization(parser, setup)))
	reloaded, err := LoadParser(quietLogger(), model, srl.EASY_FIRST)
	require.NoError(t, err)
	assert.Equal(t, srl.EASY_FIRST, reloaded.Decoder.Name())

	_, err = LoadParser(quietLogger(), model, "beam")
	assert.Error(t, err)
}

func TestTrainParserErrors(t *testing.T) {
	resetFlags()
	setup, err := LoadSetup("")
	require.NoError(t, err)

	trainMode = "joint"
	_, err = TrainParser(quietLogger(), setup, nil, nil, nil)
	assert.Error(t, err)

	resetFlags()
	decoderName = "beam"
	_, err = TrainParser(quietLogger(), setup, nil, nil, nil)
	assert.Error(t, err)
}

func TestReadModelErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadModel(filepath.Join(dir, "missing.model"))
	assert.Error(t, err)

	_, err = ReadModel(writeFile(t, dir, "garbage.model", "not a model"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.model")
	require.NoError(t, WriteModel(empty, &Serialization{Decoder: srl.LEFT_TO_RIGHT}))
	_, err = ReadModel(empty)
	assert.Error(t, err)
}

func TestVerifyExists(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, VerifyExists(writeFile(t, dir, "present", "")))
	assert.Error(t, VerifyExists(filepath.Join(dir, "absent")))
}

func TestAllCommands(t *testing.T) {
	cmd := AllCommands()
	var names []string
	for _, sub := range cmd.Subcommands {
		names = append(names, sub.Name())
	}
	assert.Equal(t, []string{"train", "parse", "eval"}, names)
	assert.Equal(t, srl.LEFT_TO_RIGHT, decoderName)
}

var predictedInput = rows(
	"1 Dogs dog dogs NNS NN _ _ 2 2 SBJ SBJ _ _",
	"2 chase chase chased VBP VBD _ _ 0 0 ROOT ROOT _ _",
	"3 cats cat cats NNS NN _ _ 2 2 OBJ OBJ _ _",
	"4 fast fast quick RB JJ _ _ 2 2 MNR MNR _ _",
	"",
)

func TestParseFileKeepsColumns(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	setup, err := LoadSetup(writeFile(t, dir, "features.yaml", featureSetup))
	require.NoError(t, err)
	gold, err := conll09.ParseCorpus(writeFile(t, dir, "train.conll09", trainCorpus), 0)
	require.NoError(t, err)
	parser, err := TrainParser(quietLogger(), setup, gold, nil, nil)
	require.NoError(t, err)

	conll09.UsePredicted = true
	defer func() { conll09.UsePredicted = false }()
	in := writeFile(t, dir, "input.conll09", predictedInput)
	out := filepath.Join(dir, "output.conll09")
	require.NoError(t, ParseFile(quietLogger(), parser, in, out))

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, rows(
		"1 Dogs dog dogs NNS NN _ _ 2 2 SBJ SBJ _ _ A0",
		"2 chase chase chased VBP VBD _ _ 0 0 ROOT ROOT Y chased _",
		"3 cats cat cats NNS NN _ _ 2 2 OBJ OBJ _ _ A1",
		"4 fast fast quick RB JJ _ _ 2 2 MNR MNR _ _ AM-MNR",
		"",
	), string(written))

	// the parse built on the predicted columns scores against gold by position
	parsed, err := conll09.ParseCorpus(out, 0)
	require.NoError(t, err)
	assert.Equal(t, "dogs", parsed[0].Tree.Token(0).Lemma)
	compared, err := eval.Compare(parsed, gold)
	require.NoError(t, err)
	assert.Equal(t, 3, compared.Role(eval.TOTAL).TP)
	assert.Equal(t, 1.0, compared.Role(eval.TOTAL).F1())
}
