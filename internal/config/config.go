// Package config loads seqindex settings from defaults and an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDirectory  = "."
	DefaultSuffix     = ".fasta"
	DefaultPathsOut   = "seq_path.txt"
	DefaultNamesOut   = "seq_name.txt"
	DefaultLengthOut  = "length.data"
	DefaultDataOut    = "seq.data"
	DefaultRecordSize = 65536
)

type (
	// Config holds the export and preprocess settings.
	Config struct {
		Directory  string     `yaml:"directory"`
		Suffix     string     `yaml:"suffix"`
		PathsOut   string     `yaml:"paths_out"`
		NamesOut   string     `yaml:"names_out"`
		Preprocess Preprocess `yaml:"preprocess"`
	}

	// Preprocess holds the settings of the preprocess step.
	Preprocess struct {
		LengthOut  string `yaml:"length_out"`
		DataOut    string `yaml:"data_out"`
		RecordSize int    `yaml:"record_size"`
	}
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Directory: DefaultDirectory,
		Suffix:    DefaultSuffix,
		PathsOut:  DefaultPathsOut,
		NamesOut:  DefaultNamesOut,
		Preprocess: Preprocess{
			LengthOut:  DefaultLengthOut,
			DataOut:    DefaultDataOut,
			RecordSize: DefaultRecordSize,
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %s - %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %s - %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %s - %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings that cannot be defaulted.
func (c Config) Validate() error {
	if c.Suffix == "" {
		return errors.New("suffix cannot be empty")
	}
	if c.Preprocess.RecordSize <= 0 {
		return fmt.Errorf("preprocess.record_size must be positive, got %d", c.Preprocess.RecordSize)
	}
	return nil
}

// Marshal renders the settings as YAML.
func (c Config) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
