package config

import (
	"fmt"

	"github.com/cognicore/wordfreq/pkg/wordfreq/ingest"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath   string
	StoplistPath string // overrides the stoplist named in the config file
}

// Components holds all loaded configuration components
type Components struct {
	Config    Config
	Tokenizer *ingest.Tokenizer
}

// Load reads all configuration files and returns initialized components
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	stoplistPath := cfg.Stoplist
	if l.StoplistPath != "" {
		stoplistPath = l.StoplistPath
	}

	var terms []string
	if stoplistPath != "" {
		sl, err := LoadStoplist(stoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		terms = sl.Terms
		cfg.Stoplist = stoplistPath
	}

	return &Components{
		Config:    cfg,
		Tokenizer: NewTokenizer(cfg, terms),
	}, nil
}

// NewTokenizer builds a tokenizer from cfg and a stopword list.
func NewTokenizer(cfg Config, stopwords []string) *ingest.Tokenizer {
	tok := ingest.NewTokenizer(stopwords)
	tok.SetMinLength(cfg.MinLength)
	tok.SetKeepDigits(cfg.KeepDigits)
	tok.SetKeepHyphens(cfg.KeepHyphens)
	return tok
}
