package features

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// Setup names the templates enabled for each classifier. It is stored with
// the model so that parsing uses the features the model was trained with.
type Setup struct {
	Predicate []string `yaml:"predicate features"`
	Argument  []string `yaml:"argument features"`
}

func DefaultSetup() *Setup {
	return &Setup{
		Predicate: append([]string(nil), PredicateTemplates...),
		Argument:  append([]string(nil), ArgumentTemplates...),
	}
}

func LoadSetup(reader io.Reader) (*Setup, error) {
	setup := new(Setup)
	decoder := yaml.NewDecoder(reader)
	decoder.SetStrict(true)
	if err := decoder.Decode(setup); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("feature setup: %w", err)
	}
	return setup, nil
}

func LoadSetupFile(filename string) (*Setup, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadSetup(file)
}

func (s *Setup) Write(writer io.Writer) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

// Generators builds the predicate and argument generators from r.
func (s *Setup) Generators(r *Registry) (predicate, argument *Composite, err error) {
	if predicate, err = NewComposite(r, s.Predicate); err != nil {
		return nil, nil, fmt.Errorf("predicate features: %w", err)
	}
	if argument, err = NewComposite(r, s.Argument); err != nil {
		return nil, nil, fmt.Errorf("argument features: %w", err)
	}
	return predicate, argument, nil
}
