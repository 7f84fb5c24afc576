// Package config holds the checker options the enclosing verification
// tool sets: which analyses are enabled and how chatty the checker is.
// Options round-trip through YAML so driver tools can ship presets.
package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Options configures a type-checking run.
type Options struct {
	// Refinement enables the controllability warnings used when the model
	// is the subject of a refinement check.
	Refinement bool `yaml:"refinement"`

	// Probability enables the checking of edge probability weights. SMC
	// queries are checked whatever its value.
	Probability bool `yaml:"probability"`

	// Hints names a warning verbosity level: "none", "normal" or
	// "pedantic". Load validates it; the checker does not read it and
	// emits every warning.
	Hints string `yaml:"hints"`
}

// Default returns the options used when the caller provides none.
func Default() *Options {
	return &Options{Probability: true, Hints: "normal"}
}

// Load reads YAML options, applying defaults for absent fields.
func Load(r io.Reader) (*Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && err != io.EOF {
		return nil, fmt.Errorf("loading checker options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate rejects unknown hint levels.
func (o *Options) Validate() error {
	switch o.Hints {
	case "", "none", "normal", "pedantic":
		return nil
	}
	return fmt.Errorf("unknown hints level %q", o.Hints)
}
