// Package features turns a (frame, candidate, predicate) triple into feature
// strings for the perceptron classifiers. Features come from named templates
// held in a Registry; a Composite enables any subset of them by name.
package features

import (
	"errors"
	"fmt"
	"sort"

	nlp "spinach/nlp/types"

	"github.com/samber/lo"
)

// FEATURE_SEPARATOR joins a template name and one of its values
const FEATURE_SEPARATOR = "="

var ErrUnknownTemplate = errors.New("unknown feature template")

type Generator interface {
	Features(frame *nlp.FrameAnnotation, candidate, predicate nlp.Token) []string
}

// Template computes the values of one feature family. It may return no
// value when the feature does not apply.
type Template func(c *Context) []string

type Registry struct {
	templates map[string]Template
}

func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds or replaces the template called name.
func (r *Registry) Register(name string, t Template) {
	r.templates[name] = t
}

func (r *Registry) Lookup(name string) (Template, bool) {
	t, exists := r.templates[name]
	return t, exists
}

func (r *Registry) Names() []string {
	names := lo.Keys(r.templates)
	sort.Strings(names)
	return names
}

// Composite is a Generator made of the enabled templates, in order.
type Composite struct {
	names     []string
	templates []Template
}

var _ Generator = &Composite{}

func NewComposite(r *Registry, names []string) (*Composite, error) {
	c := &Composite{
		names:     lo.Uniq(names),
		templates: make([]Template, 0, len(names)),
	}
	for _, name := range c.names {
		t, exists := r.Lookup(name)
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
		}
		c.templates = append(c.templates, t)
	}
	return c, nil
}

func (c *Composite) Names() []string {
	return c.names
}

func (c *Composite) Features(frame *nlp.FrameAnnotation, candidate, predicate nlp.Token) []string {
	ctx := NewContext(frame, candidate, predicate)
	retval := make([]string, 0, 2*len(c.templates))
	for i, t := range c.templates {
		for _, value := range t(ctx) {
			retval = append(retval, c.names[i]+FEATURE_SEPARATOR+value)
		}
	}
	return lo.Uniq(retval)
}
