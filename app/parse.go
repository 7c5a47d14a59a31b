package app

import (
	"fmt"
	"os"
	"time"

	"spinach/nlp/format/conll09"
	"spinach/nlp/parser/srl"
	nlp "spinach/nlp/types"
	"spinach/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/sirupsen/logrus"
)

// LoadParser locates and reads a model file and rebuilds its parser.
func LoadParser(log logrus.FieldLogger, filename, decoder string) (*srl.Parser, error) {
	location, found := util.LocateFile(filename, DEFAULT_MODEL_DIRS)
	if !found {
		return nil, fmt.Errorf("model file %s not found", filename)
	}
	data, err := ReadModel(location)
	if err != nil {
		return nil, err
	}
	parser, err := data.Parser(decoder)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"file":       location,
		"decoder":    parser.Decoder.Name(),
		"features":   parser.Arguments.Model.Features.Len(),
		"roles":      parser.Arguments.Model.Labels.Len(),
		"generation": parser.Arguments.Model.Generation,
	}).Info("Read model")
	return parser, nil
}

// ParseAll labels every sentence of sents with parser.
func ParseAll(parser *srl.Parser, sents []*nlp.FrameAnnotation) []*nlp.FrameAnnotation {
	parsed := make([]*nlp.FrameAnnotation, len(sents))
	for i, sent := range sents {
		parsed[i] = parser.Parse(sent.Tree)
	}
	return parsed
}

func SRLParse(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"m", "in"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	log := NewLogger(verbose)
	if err := VerifyExists(input); err != nil {
		return err
	}
	parser, err := LoadParser(log, modelFile, modelDecoder)
	if err != nil {
		return err
	}
	return ParseFile(log, parser, input, outConll)
}

// ParseFile labels the CoNLL-2009 corpus in and writes it to out (stdout when
// empty). Columns other than FILLPRED, PRED and APRED are copied unchanged.
func ParseFile(log logrus.FieldLogger, parser *srl.Parser, in, out string) error {
	rows, sents, err := conll09.ReadCorpus(in, limit)
	if err != nil {
		return fmt.Errorf("failed reading input corpus: %w", err)
	}
	log.WithField("sentences", len(sents)).Info("Parsing")
	start := time.Now()
	parsed := ParseAll(parser, sents)
	logTime(log, "Parsing", start)

	annotated, err := conll09.AnnotateAll(rows, parsed)
	if err != nil {
		return err
	}
	if len(out) == 0 {
		return conll09.Write(os.Stdout, annotated)
	}
	if err := conll09.WriteFile(out, annotated); err != nil {
		return err
	}
	log.WithField("file", out).Info("Wrote parses")
	return nil
}

func SRLParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       SRLParse,
		UsageLine: "parse <file options> [arguments]",
		Short:     "label the semantic roles of a CoNLL-2009 corpus",
		Long: `
label the semantic roles of a CoNLL-2009 corpus with a trained model

	$ spinach parse -m <model file> -in <input conll09> [-out <output conll09>] [options]

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.StringVar(&input, "in", "", "Input CoNLL-2009 File")
	cmd.Flag.StringVar(&outConll, "out", "", "Output CoNLL-2009 File (default stdout)")
	cmd.Flag.StringVar(&modelDecoder, "d", "", "Override the model's argument decoder (ltr, easyfirst)")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit input set")
	cmd.Flag.BoolVar(&conll09.UsePredicted, "predicted", false, "Use the predicted lemma, POS and tree columns")
	cmd.Flag.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	return cmd
}
