package app

import (
	"errors"
	"fmt"

	"spinach/eval"
	"spinach/nlp/format/conll09"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func SRLEval(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"g"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if (len(modelFile) == 0) == (len(input) == 0) {
		cmd.Usage()
		return errors.New("exactly one of -m and -p must be set")
	}
	log := NewLogger(verbose)
	if err := VerifyExists(inputGold); err != nil {
		return err
	}
	gold, err := conll09.ParseCorpus(inputGold, limit)
	if err != nil {
		return fmt.Errorf("failed reading gold corpus: %w", err)
	}

	var result *eval.SRLResult
	if len(modelFile) > 0 {
		parser, err := LoadParser(log, modelFile, modelDecoder)
		if err != nil {
			return err
		}
		if goldPredicates {
			result = eval.EvaluateGold(parser, gold)
		} else {
			result = eval.Evaluate(parser, gold)
		}
	} else {
		if err := VerifyExists(input); err != nil {
			return err
		}
		predicted, err := conll09.ParseCorpus(input, limit)
		if err != nil {
			return fmt.Errorf("failed reading parsed corpus: %w", err)
		}
		if result, err = eval.Compare(predicted, gold); err != nil {
			return err
		}
	}
	result.Log(log)
	return nil
}

func SRLEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       SRLEval,
		UsageLine: "eval <file options> [arguments]",
		Short:     "evaluate semantic role labels against a gold corpus",
		Long: `
evaluate semantic role labels against a gold CoNLL-2009 corpus, either of a
trained model or of a parsed file

	$ spinach eval -g <gold conll09> -m <model file> [-goldpreds]
	$ spinach eval -g <gold conll09> -p <parsed conll09>

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&modelFile, "m", "", "Model File")
	cmd.Flag.StringVar(&input, "p", "", "Parse Result CoNLL-2009 File")
	cmd.Flag.StringVar(&inputGold, "g", "", "Gold CoNLL-2009 File")
	cmd.Flag.BoolVar(&goldPredicates, "goldpreds", false, "Label the arguments of the gold predicates only (with -m)")
	cmd.Flag.StringVar(&modelDecoder, "d", "", "Override the model's argument decoder (ltr, easyfirst)")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit evaluated set")
	cmd.Flag.BoolVar(&conll09.UsePredicted, "predicted", false, "Use the predicted lemma, POS and tree columns")
	cmd.Flag.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	return cmd
}
