package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/internal/logging"
)

// YesNo is a boolean that also accepts y, n, yes and no in any casing, both
// in YAML and on the command line.
type YesNo bool

// ParseYesNo parses true/false, y/n or yes/no, ignoring case.
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid yes/no value %q", s)
	}
}

func (v *YesNo) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a yes/no value", node.Line)
	}
	b, err := ParseYesNo(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*v = YesNo(b)

	return nil
}

func (v YesNo) MarshalYAML() (any, error) {
	return v.String(), nil
}

// String, Set and Type implement pflag.Value.
func (v YesNo) String() string {
	if v {
		return "yes"
	}

	return "no"
}

func (v *YesNo) Set(s string) error {
	b, err := ParseYesNo(s)
	if err != nil {
		return err
	}
	*v = YesNo(b)

	return nil
}

func (v *YesNo) Type() string {
	return "yes|no"
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the analyze configuration, read from a YAML file and overridden
// by flags.
type Config struct {
	Input       string    `yaml:"input"`
	OutputDir   string    `yaml:"output_dir"`
	Iterate     YesNo     `yaml:"iterate"`
	SwapAxes    YesNo     `yaml:"swap_axes"`
	Plots       YesNo     `yaml:"plots"`
	Summary     YesNo     `yaml:"summary"`
	Archive     YesNo     `yaml:"archive"`
	Compression string    `yaml:"compression"`
	Log         LogConfig `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		OutputDir:   ".",
		Summary:     true,
		Compression: "none",
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// loadConfig reads path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// compression returns the archive compression type.
func (c Config) compression() (format.CompressionType, error) {
	ct, ok := format.ParseCompression(c.Compression)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2, lz4 or gzip)", c.Compression)
	}

	return ct, nil
}

func (c Config) validate() error {
	var problems []error
	if c.Input == "" {
		problems = append(problems, errors.New("input file is required"))
	}
	if c.OutputDir == "" {
		problems = append(problems, errors.New("output_dir must not be empty"))
	}
	if _, err := c.compression(); err != nil {
		problems = append(problems, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format))
	}

	return errors.Join(problems...)
}
