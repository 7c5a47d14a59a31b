package app

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"spinach/alg/perceptron"
	"spinach/nlp/parser/srl"
	"spinach/nlp/parser/srl/features"

	"github.com/gonuts/commander"
	"github.com/sirupsen/logrus"
)

func init() {
	gob.Register(&Serialization{})
}

var (
	allOut  bool = true
	verbose bool

	// processing options
	Iterations     int
	BurnIn         int
	decoderName    string
	modelDecoder   string
	trainMode      string
	showBar        bool
	shuffle        bool
	limit          int
	goldPredicates bool

	// file names
	tConll       string
	devConll     string
	input        string
	inputGold    string
	outConll     string
	modelFile    string
	featuresFile string
	labelsFile   string

	DEFAULT_CONF_DIRS  = []string{".", "conf", "data"}
	DEFAULT_MODEL_DIRS = []string{".", "data"}
)

const (
	STRUCTURED = "structured"
	LOCAL      = "local"
)

// Serialization is the content of a model file: both classifiers and what is
// needed to rebuild the parser around them.
type Serialization struct {
	Detector  *perceptron.Snapshot
	Arguments *perceptron.Snapshot
	Setup     *features.Setup
	Decoder   string
}

func NewSerialization(parser *srl.Parser, setup *features.Setup) *Serialization {
	return &Serialization{
		Detector:  parser.Detector.Model.Snapshot(),
		Arguments: parser.Arguments.Model.Snapshot(),
		Setup:     setup,
		Decoder:   parser.Decoder.Name(),
	}
}

// Parser rebuilds the parser stored in s. A non-empty decoder overrides the
// stored one.
func (s *Serialization) Parser(decoder string) (*srl.Parser, error) {
	if len(decoder) == 0 {
		decoder = s.Decoder
	}
	dec, err := srl.NewDecoder(decoder)
	if err != nil {
		return nil, err
	}
	parser, err := srl.NewParser(s.Setup, features.DefaultRegistry(), dec)
	if err != nil {
		return nil, err
	}
	if parser.Detector.Model, err = perceptron.FromSnapshot(s.Detector); err != nil {
		return nil, fmt.Errorf("predicate model: %w", err)
	}
	if parser.Arguments.Model, err = perceptron.FromSnapshot(s.Arguments); err != nil {
		return nil, fmt.Errorf("argument model: %w", err)
	}
	parser.Detector.Model.Features.Frozen = true
	parser.Arguments.Model.Features.Frozen = true
	return parser, nil
}

func WriteModel(file string, data *Serialization) error {
	fObj, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed creating model file %s: %w", file, err)
	}
	defer fObj.Close()
	writer := gob.NewEncoder(fObj)
	if err := writer.Encode(data); err != nil {
		return fmt.Errorf("failed writing model to %s: %w", file, err)
	}
	return nil
}

func ReadModel(file string) (*Serialization, error) {
	data := &Serialization{}
	fObj, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading model from %s: %w", file, err)
	}
	defer fObj.Close()
	reader := gob.NewDecoder(fObj)
	if err := reader.Decode(data); err != nil {
		return nil, fmt.Errorf("failed decoding model %s: %w", file, err)
	}
	if data.Detector == nil || data.Arguments == nil || data.Setup == nil {
		return nil, fmt.Errorf("model %s is incomplete", file)
	}
	return data, nil
}

func NewLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

func VerifyExists(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("error accessing file %s: %w", filename, err)
	}
	return nil
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f == nil || f.Value.String() == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", flag)
		}
	}
	return nil
}

func logTime(log logrus.FieldLogger, what string, start time.Time) {
	if allOut {
		log.WithField("time", time.Since(start)).Info(what + " done")
	}
}
