package run

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/revfix/internal/probe"
	"github.com/gnolang/revfix/internal/sequence"
)

const (
	DefaultConfigFile = ".revfix.yaml"
	DefaultSteps      = 1000

	FormatText = "text"
	FormatJSON = "json"
)

// Output controls how results are rendered.
type Output struct {
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
}

// Config is the on-disk configuration. Steps is the iteration bound shared
// by every procedure.
type Config struct {
	Name   string `yaml:"name"`
	Steps  int    `yaml:"steps"`
	Probe  string `yaml:"probe"`
	Output Output `yaml:"output"`
}

func DefaultConfig() Config {
	return Config{
		Name:   "revfix",
		Steps:  DefaultSteps,
		Probe:  probe.KindHeap,
		Output: Output{Format: FormatText, Color: true},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Steps < sequence.Start {
		return fmt.Errorf("steps must be at least %d, got %d", sequence.Start, c.Steps)
	}
	if !slices.Contains(probe.Kinds, c.Probe) {
		return fmt.Errorf("unknown probe %q (want one of %v)", c.Probe, probe.Kinds)
	}
	switch c.Output.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", c.Output.Format, FormatText, FormatJSON)
	}
	return nil
}

// LoadConfig reads path over the defaults. An empty path means
// DefaultConfigFile, which may be absent.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	optional := path == ""
	if optional {
		path = DefaultConfigFile
	}

	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// WriteConfig stores config at path, replacing any existing file.
func WriteConfig(path string, config Config) error {
	if path == "" {
		path = DefaultConfigFile
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
