// Package config loads key sheets: the machine settings plus the ambient
// options of the command-line tools.
//
// Values are layered. Defaults come first, then the YAML sheet if one is
// given, then ENIGMA_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
)

// Config is the on-disk key sheet.
type Config struct {
	Machine     enigma.Settings `yaml:"machine"`
	LogLevel    string          `yaml:"log_level" env:"ENIGMA_LOG_LEVEL"`
	MetricsFile string          `yaml:"metrics_file,omitempty" env:"ENIGMA_METRICS_FILE"`
	// Workers bounds parallel batch enciphering.
	Workers int `yaml:"workers,omitempty" env:"ENIGMA_WORKERS"`
}

// envOverrides holds the machine fields that may be set from the
// environment. Rotor settings only come from the sheet.
type envOverrides struct {
	Reflector string `env:"ENIGMA_REFLECTOR"`
	Plugboard string `env:"ENIGMA_PLUGBOARD"`
}

// metricsExt is the suffix the node exporter textfile collector picks up.
const metricsExt = ".prom"

// DefaultWorkers is the batch parallelism when none is configured.
const DefaultWorkers = 4

// Default returns the configuration used when no sheet is given.
func Default() *Config {
	return &Config{
		Machine:  enigma.DefaultSettings(),
		LogLevel: "info",
		Workers:  DefaultWorkers,
	}
}

// Load builds a Config from defaults, the optional sheet at path, and the
// environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read key sheet: %w", err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parse key sheet %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates a sheet held in memory.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse key sheet: %w", err)
	}
	if err := validation.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Reflector != "" {
		cfg.Machine.Reflector = o.Reflector
	}
	if o.Plugboard != "" {
		cfg.Machine.Plugboard = o.Plugboard
	}
	return nil
}

// Validate checks the machine settings and the ambient options together.
func (c *Config) Validate() error {
	machineErr := validation.ValidateSettings(&c.Machine)

	cv := validation.NewConfigValidator("Config").
		OneOf("LogLevel", strings.ToLower(strings.TrimSpace(c.LogLevel)), []string{"debug", "info", "warn", "warning", "error"}).
		RangeInt("Workers", c.Workers, 1, 256).
		When(c.MetricsFile != "", func(cv *validation.ConfigValidator) {
			cv.Custom("MetricsFile", func() error {
				if filepath.Ext(c.MetricsFile) != metricsExt {
					return fmt.Errorf("textfile collector only reads %s files, got %q", metricsExt, c.MetricsFile)
				}
				return nil
			})
		})

	return errors.Join(machineErr, cv.Validate())
}

// Level is the parsed log level.
func (c *Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Save writes cfg as a YAML sheet.
func Save(path string, cfg *Config) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write key sheet: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML with two-space indentation.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode key sheet: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode key sheet: %w", err)
	}
	return buf.Bytes(), nil
}
