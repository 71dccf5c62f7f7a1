// Package config loads and saves the .toonbench.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the project configuration file looked up from cwd upwards.
	ConfigFileName = ".toonbench.yaml"
	// DataDirName holds run history and lock files.
	DataDirName = ".toonbench"

	defaultEncoding = "cl100k_base"
	maxConcurrency  = 64
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the content of .toonbench.yaml.
type Config struct {
	Version   int             `yaml:"version"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Stats     StatsConfig     `yaml:"stats"`
}

// TokenizerConfig selects the encoding. Model, when set, takes precedence
// over Encoding.
type TokenizerConfig struct {
	Encoding string `yaml:"encoding"`
	Model    string `yaml:"model,omitempty"`
}

// BenchmarkConfig selects the samples and how they are run. An empty
// SamplesFile means the built-in set.
type BenchmarkConfig struct {
	SamplesFile string       `yaml:"samples_file,omitempty"`
	Concurrency int          `yaml:"concurrency"`
	Labels      LabelsConfig `yaml:"labels"`
}

// LabelsConfig names the two compared formats.
type LabelsConfig struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// StatsConfig controls the local run history. Recording is off unless
// Enabled is set or a run passes --record.
type StatsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Tokenizer: TokenizerConfig{
			Encoding: defaultEncoding,
		},
		Benchmark: BenchmarkConfig{
			Concurrency: 1,
			Labels:      LabelsConfig{A: "JSON", B: "TOON"},
		},
		Stats: StatsConfig{
			Enabled: false,
		},
	}
}

// GetConfigPath returns the configuration file path inside projectRoot.
func GetConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, ConfigFileName)
}

// GetDataDir returns the directory holding run history.
func GetDataDir(projectRoot string) string {
	return filepath.Join(projectRoot, DataDirName)
}

// Load reads the configuration in projectRoot. A missing file yields the
// defaults. Fields absent from the file keep their default values.
func Load(projectRoot string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(GetConfigPath(projectRoot))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", ConfigFileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to projectRoot.
func (c *Config) Save(projectRoot string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(GetConfigPath(projectRoot), data, 0o644); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Tokenizer.Encoding == "" && c.Tokenizer.Model == "" {
		return fmt.Errorf("%w: tokenizer.encoding or tokenizer.model is required", ErrInvalidConfig)
	}
	if c.Benchmark.Concurrency < 1 || c.Benchmark.Concurrency > maxConcurrency {
		return fmt.Errorf("%w: benchmark.concurrency must be between 1 and %d, got %d",
			ErrInvalidConfig, maxConcurrency, c.Benchmark.Concurrency)
	}
	return nil
}

// ResolveSamplesPath returns the samples file as an absolute path, or "" when
// the built-in set is configured. Relative paths are resolved against
// projectRoot.
func (c *Config) ResolveSamplesPath(projectRoot string) string {
	p := c.Benchmark.SamplesFile
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(projectRoot, p)
}

// FindProjectRoot walks up from the working directory to the first directory
// containing ConfigFileName. Without one, the working directory is the root.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("config: get working directory: %w", err)
	}
	return findProjectRootFrom(cwd), nil
}

func findProjectRootFrom(start string) string {
	dir := start
	for {
		if _, err := os.Stat(GetConfigPath(dir)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
