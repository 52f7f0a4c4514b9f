// Package config loads debugdiff settings from a YAML file
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qri-io/debugdiff"
	"github.com/qri-io/debugdiff/parse"
)

const (
	// EnvVar names the environment variable that can point at a config file
	EnvVar = "DEBUGDIFF_CONFIG"
	// DefaultFile is looked for in the working directory when no config file
	// is named
	DefaultFile = ".debugdiff.yml"
)

// Output formats
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the full set of settings the command reads from file. Every
// field has a matching command line flag
type Config struct {
	// Source is the path of the file the config was loaded from, empty when
	// using defaults
	Source string `yaml:"-"`

	Format        string               `yaml:"format"`
	Color         string               `yaml:"color"`
	ListPolicy    debugdiff.ListPolicy `yaml:"list_policy"`
	StrictStructs bool                 `yaml:"strict_structs"`
	MaxDepth      int                  `yaml:"max_depth"`
	Stats         bool                 `yaml:"stats"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Format:     FormatPretty,
		Color:      ColorAuto,
		ListPolicy: debugdiff.ListAsRecorded,
		MaxDepth:   parse.DefaultMaxDepth,
	}
}

// Load reads configuration from path. When path is empty the DEBUGDIFF_CONFIG
// env variable is used, falling back to DefaultFile. Only a missing
// DefaultFile is tolerated, yielding defaults. Settings absent from the file
// keep their default values
func Load(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		path = DefaultFile
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Decode parses YAML config data over the defaults. Unknown keys are an error
func Decode(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting holds a supported value
func (c *Config) Validate() error {
	switch c.Format {
	case FormatPretty, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q, expected %q or %q", c.Format, FormatPretty, FormatJSON)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q, expected %q, %q, or %q", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.ListPolicy > debugdiff.ListAsSet {
		return fmt.Errorf("unknown list policy %d", c.ListPolicy)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	return nil
}

// DiffOptions converts the config into options for debugdiff.Diff. stats may
// be nil
func (c *Config) DiffOptions(stats *debugdiff.Stats) []debugdiff.DiffOption {
	opts := []debugdiff.DiffOption{
		debugdiff.OptionListPolicy(c.ListPolicy),
		debugdiff.OptionStrictStructs(c.StrictStructs),
	}
	if stats != nil {
		opts = append(opts, debugdiff.OptionSetStats(stats))
	}
	return opts
}

// ParseOptions converts the config into options for parse.Parse
func (c *Config) ParseOptions() []parse.Option {
	return []parse.Option{parse.OptionMaxDepth(c.MaxDepth)}
}
