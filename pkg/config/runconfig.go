// Package config defines the benchmark run configuration and its
// YAML loading.
package config

import (
	"github.com/msbench/msbench/pkg/errors"
	"github.com/msbench/msbench/pkg/fill"
	"github.com/msbench/msbench/pkg/schema"
)

// RunConfig is the full configuration of one benchmark or validation
// run. It is built from defaults, an optional YAML file, and CLI flag
// overrides, then threaded explicitly into every component; there is no
// process-wide option state.
type RunConfig struct {
	Dimensions  schema.Dimensions `yaml:"dimensions" json:"dimensions"`
	Order       string            `yaml:"order" json:"order"`
	Granularity string            `yaml:"granularity" json:"granularity"`
	Iterations  int               `yaml:"iterations" json:"iterations"`
	Validate    bool              `yaml:"validate" json:"validate"`
	Stream      bool              `yaml:"stream" json:"stream"`
	LogLevel    string            `yaml:"log_level" json:"log_level"`
	TablePath   string            `yaml:"table" json:"table"`
	ResultPath  string            `yaml:"output,omitempty" json:"output,omitempty"`
}

// Default returns the configuration the original tool ran with:
// full-size dimensions, TIME column only, one row per write, 100
// iterations.
func Default() *RunConfig {
	return &RunConfig{
		Dimensions:  schema.Default(),
		Order:       fill.TimeOnly.String(),
		Granularity: fill.Cell.String(),
		Iterations:  100,
		LogLevel:    "info",
		TablePath:   "table.data",
	}
}

// Strategy parses the configured order and granularity names.
func (c *RunConfig) Strategy() (fill.Order, fill.Granularity, error) {
	o, err := fill.ParseOrder(c.Order)
	if err != nil {
		return 0, 0, err
	}
	g, err := fill.ParseGranularity(c.Granularity)
	if err != nil {
		return 0, 0, err
	}
	return o, g, nil
}

// Check rejects every illegal configuration before any table is
// created: non-positive dimensions, unknown strategy names, the
// row-wise/column combination, negative iteration counts, and
// streaming combined with validation (streamed writes deliberately do
// not match the synthesized reference, so comparing them is
// meaningless).
func (c *RunConfig) Check() error {
	if err := c.Dimensions.Validate(); err != nil {
		return err
	}
	o, g, err := c.Strategy()
	if err != nil {
		return err
	}
	if err := fill.Check(o, g); err != nil {
		return err
	}
	if c.Iterations < 0 {
		return errors.Newf(errors.ErrorTypeConfig, "iterations must be non-negative, got %d", c.Iterations)
	}
	if c.Validate && c.Stream {
		return errors.New(errors.ErrorTypeConfig,
			"validate and stream are mutually exclusive: streamed writes do not match the reference data")
	}
	if c.TablePath == "" {
		return errors.New(errors.ErrorTypeConfig, "table path must not be empty")
	}
	return nil
}
