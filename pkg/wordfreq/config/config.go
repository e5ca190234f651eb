package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/wordfreq/pkg/wordfreq/internalerr"
)

// DefaultK is the number of most and least frequent words reported.
const DefaultK = 10

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds analysis settings
type Config struct {
	K           int    `yaml:"k"`
	MinLength   int    `yaml:"min_length"`
	KeepDigits  bool   `yaml:"keep_digits"`
	KeepHyphens bool   `yaml:"keep_hyphens"`
	Workers     int    `yaml:"workers"`
	Stoplist    string `yaml:"stoplist"`
	DB          string `yaml:"db"`
	Format      string `yaml:"format"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		K:           DefaultK,
		MinLength:   1,
		KeepHyphens: true,
		Workers:     1,
		Format:      FormatText,
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %w", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.K < 0:
		return fmt.Errorf("%w: k must be >= 0, got %d", internalerr.ErrInvalidConfig, c.K)
	case c.MinLength < 0:
		return fmt.Errorf("%w: min_length must be >= 0, got %d", internalerr.ErrInvalidConfig, c.MinLength)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0, got %d", internalerr.ErrInvalidConfig, c.Workers)
	case c.Format != FormatText && c.Format != FormatJSON:
		return fmt.Errorf("%w: unknown format %q", internalerr.ErrInvalidConfig, c.Format)
	}
	return nil
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", internalerr.ErrInvalidConfig, path, err)
	}

	return &sl, nil
}
