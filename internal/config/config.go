// Package config loads analyzer-wide options from YAML, matching the
// teacher's own funxy.yaml configuration pattern (internal/ext/config.go):
// struct tags plus gopkg.in/yaml.v3, no bespoke parsing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalyzerOptions controls behavior left open by spec.md (see DESIGN.md's
// Open Question resolution) and operational limits for very large inputs.
type AnalyzerOptions struct {
	// StrictFlattenPolicy, when true (the default), makes the explicit
	// copy operator v[..] the only legal source for concrete-array
	// flattening (spec §4.6, §9). This is the policy spec.md's own
	// worked examples assume.
	StrictFlattenPolicy bool `yaml:"strictFlattenPolicy"`

	// MaxErrors caps how many diagnostics a single Analyze call retains.
	// Zero means unbounded, which is the default and matches spec §7's
	// "collect, don't stop" policy.
	MaxErrors int `yaml:"maxErrors"`
}

// Default returns the options the analyzer uses when no configuration file
// is supplied.
func Default() AnalyzerOptions {
	return AnalyzerOptions{
		StrictFlattenPolicy: true,
		MaxErrors:           0,
	}
}

// Load reads AnalyzerOptions from a YAML file at path, starting from
// Default() so a partial document only overrides the fields it sets.
func Load(path string) (AnalyzerOptions, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return opts, nil
}
