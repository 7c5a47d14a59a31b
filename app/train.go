package app

import (
	"fmt"
	"time"

	"spinach/alg/perceptron"
	"spinach/eval"
	"spinach/nlp/format/conll09"
	"spinach/nlp/parser/srl"
	"spinach/nlp/parser/srl/features"
	nlp "spinach/nlp/types"
	"spinach/util"
	"spinach/util/conf"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/gosuri/uiprogress"
	"github.com/sirupsen/logrus"
)

func TrainConfigOut(log logrus.FieldLogger) error {
	log.WithFields(logrus.Fields{
		"iterations": Iterations,
		"mode":       trainMode,
		"decoder":    decoderName,
		"burn-in":    BurnIn,
		"predicted":  conll09.UsePredicted,
		"model":      modelFile,
	}).Info("Configuration")
	if len(featuresFile) > 0 {
		log.WithField("file", featuresFile).Info("Features")
		if err := VerifyExists(featuresFile); err != nil {
			return err
		}
	}
	if len(labelsFile) > 0 {
		log.WithField("file", labelsFile).Info("Labels")
		if err := VerifyExists(labelsFile); err != nil {
			return err
		}
	}
	log.WithField("file", tConll).Info("Train file (conll09)")
	if err := VerifyExists(tConll); err != nil {
		return err
	}
	if len(devConll) > 0 {
		log.WithField("file", devConll).Info("Dev file (conll09)")
		if err := VerifyExists(devConll); err != nil {
			return err
		}
	}
	return nil
}

// LoadSetup reads the feature setup from filename, looked up in the
// configuration directories, or returns the default setup.
func LoadSetup(filename string) (*features.Setup, error) {
	if len(filename) == 0 {
		return features.DefaultSetup(), nil
	}
	location, found := util.LocateFile(filename, DEFAULT_CONF_DIRS)
	if !found {
		return nil, fmt.Errorf("features file %s not found", filename)
	}
	return features.LoadSetupFile(location)
}

// LoadRoles indexes the role labels listed in filename ahead of those found
// in the training data.
func LoadRoles(parser *srl.Parser, filename string) error {
	if len(filename) == 0 {
		return nil
	}
	location, found := util.LocateFile(filename, DEFAULT_CONF_DIRS)
	if !found {
		return fmt.Errorf("labels file %s not found", filename)
	}
	roles, err := conf.ReadFile(location)
	if err != nil {
		return fmt.Errorf("failed reading role labels from %s: %w", location, err)
	}
	parser.Arguments.AddRoles(roles.Values)
	return nil
}

// EpochMonitor returns a stop condition that reports every finished epoch on
// bar and, with a dev set, evaluates the parser on it.
func EpochMonitor(log logrus.FieldLogger, parser *srl.Parser, dev []*nlp.FrameAnnotation, bar *uiprogress.Bar) perceptron.StopCondition {
	return func(epoch, epochs, generation int) bool {
		if epoch > 0 {
			if bar != nil {
				bar.Incr()
			}
			if len(dev) > 0 {
				eval.Evaluate(parser, dev).Log(log.WithField("epoch", epoch-1))
			}
		}
		return perceptron.DefaultStopCondition(epoch, epochs, generation)
	}
}

// TrainParser builds a parser for setup and trains it on gold.
func TrainParser(log logrus.FieldLogger, setup *features.Setup, gold, dev []*nlp.FrameAnnotation, bar *uiprogress.Bar) (*srl.Parser, error) {
	decoder, err := srl.NewDecoder(decoderName)
	if err != nil {
		return nil, err
	}
	parser, err := srl.NewParser(setup, features.DefaultRegistry(), decoder)
	if err != nil {
		return nil, err
	}
	if err := LoadRoles(parser, labelsFile); err != nil {
		return nil, err
	}
	monitor := EpochMonitor(log, parser, dev, bar)
	switch trainMode {
	case STRUCTURED:
		trainer := &srl.StructuredTrainer{
			Parser:   parser,
			BurnIn:   BurnIn,
			Continue: monitor,
			Log:      log,
		}
		if err := trainer.Train(gold, Iterations); err != nil {
			return nil, err
		}
	case LOCAL:
		parser.Arguments.Model.Continue = monitor
		trainer := &srl.LocalTrainer{
			Parser:  parser,
			Shuffle: shuffle,
			Log:     log,
		}
		trainer.Train(gold, Iterations)
	default:
		return nil, fmt.Errorf("unknown training mode %q, expected %s or %s", trainMode, STRUCTURED, LOCAL)
	}
	return parser, nil
}

func SRLTrain(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"t", "m"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	log := NewLogger(verbose)
	if allOut {
		if err := TrainConfigOut(log); err != nil {
			return err
		}
	}
	setup, err := LoadSetup(featuresFile)
	if err != nil {
		return err
	}

	start := time.Now()
	gold, err := conll09.ParseCorpus(tConll, limit)
	if err != nil {
		return fmt.Errorf("failed reading training corpus: %w", err)
	}
	var dev []*nlp.FrameAnnotation
	if len(devConll) > 0 {
		if dev, err = conll09.ParseCorpus(devConll, 0); err != nil {
			return fmt.Errorf("failed reading dev corpus: %w", err)
		}
	}
	log.WithFields(logrus.Fields{"train": len(gold), "dev": len(dev)}).Info("Read corpora")
	logTime(log, "Reading", start)
	util.LogMemory(log)

	var bar *uiprogress.Bar
	if showBar {
		uiprogress.Start()
		bar = uiprogress.AddBar(Iterations)
		bar.AppendCompleted()
		bar.PrependElapsed()
	}
	start = time.Now()
	parser, err := TrainParser(log, setup, gold, dev, bar)
	if showBar {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}
	logTime(log, "Training", start)
	util.LogMemory(log)

	if err := WriteModel(modelFile, NewSerialization(parser, setup)); err != nil {
		return err
	}
	sum, err := util.MD5File(modelFile)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": modelFile, "md5": sum}).Info("Wrote model")
	return nil
}

func SRLTrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       SRLTrain,
		UsageLine: "train <file options> [arguments]",
		Short:     "train a semantic role labeler",
		Long: `
train a semantic role labeler on a CoNLL-2009 corpus

	$ spinach train -t <train conll09> -m <model file> [-d ltr|easyfirst] [-mode structured|local] [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&tConll, "t", "", "Training CoNLL-2009 File")
	cmd.Flag.StringVar(&devConll, "dev", "", "Dev CoNLL-2009 File, evaluated after every epoch")
	cmd.Flag.StringVar(&modelFile, "m", "", "Output Model File")
	cmd.Flag.StringVar(&featuresFile, "f", "", "Features Configuration File (yaml)")
	cmd.Flag.StringVar(&labelsFile, "l", "", "Role Labels Configuration File")
	cmd.Flag.IntVar(&Iterations, "it", 10, "Number of Perceptron Iterations")
	cmd.Flag.IntVar(&BurnIn, "burnin", 0, "Number of initial frames not counted in the averaging")
	cmd.Flag.StringVar(&decoderName, "d", srl.LEFT_TO_RIGHT, "Argument decoder (ltr, easyfirst)")
	cmd.Flag.StringVar(&trainMode, "mode", STRUCTURED, "Training mode (structured, local)")
	cmd.Flag.BoolVar(&shuffle, "shuffle", true, "Shuffle examples every epoch in local mode")
	cmd.Flag.IntVar(&limit, "limit", 0, "Limit training set")
	cmd.Flag.BoolVar(&showBar, "progress", false, "Show a progress bar over epochs")
	cmd.Flag.BoolVar(&conll09.UsePredicted, "predicted", false, "Use the predicted lemma, POS and tree columns")
	cmd.Flag.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	return cmd
}
