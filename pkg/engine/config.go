package engine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeout is the hard limit for a single evaluation when the
// configuration does not set one.
const DefaultTimeout = 5 * time.Second

// DefaultMaxParts caps the parts argument of the distribute builtins when
// the configuration does not set one.
const DefaultMaxParts = 1 << 16

// Config controls evaluation. It is usually read from a YAML document:
//
//	timeout: 250ms
//	seed: 42
//	parallel_tolerance: 0.01
//	workers: 4
//	max_parts: 1024
//	log_level: debug
type Config struct {
	// Timeout bounds each evaluation. Zero means DefaultTimeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// Seed seeds the random generator of every evaluation. Zero seeds
	// from the clock and the evaluation generation instead, so separate
	// engines and repeated evaluations differ.
	Seed uint64 `json:"seed" yaml:"seed"`
	// ParallelTolerance, in degrees, switches is-parallel to the tolerant
	// comparison. Zero keeps the exact comparison.
	ParallelTolerance float64 `json:"parallel_tolerance" yaml:"parallel_tolerance"`
	// Workers limits EvaluateBatch concurrency. Zero means one per CPU.
	Workers int `json:"workers" yaml:"workers"`
	// MaxParts caps the parts argument of distribute-random and
	// distribute-halves. Zero means DefaultMaxParts.
	MaxParts int `json:"max_parts" yaml:"max_parts"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// LoadConfig decodes a YAML configuration from r. An empty document yields
// the zero Config. The result is validated but not resolved.
func LoadConfig(r io.Reader) (Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("engine: decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// ReadConfig loads the YAML configuration file at path.
func ReadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate rejects values that can never be valid.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("engine: config: negative timeout %s", c.Timeout)
	}
	if c.ParallelTolerance < 0 || c.ParallelTolerance >= 90 {
		return fmt.Errorf("engine: config: parallel_tolerance %v out of range [0, 90)", c.ParallelTolerance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("engine: config: negative workers %d", c.Workers)
	}
	if c.MaxParts < 0 {
		return fmt.Errorf("engine: config: negative max_parts %d", c.MaxParts)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("engine: config: %w", err)
	}
	return nil
}

// Resolve returns a copy of c with defaults filled in.
func (c Config) Resolve() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxParts <= 0 {
		c.MaxParts = DefaultMaxParts
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}
