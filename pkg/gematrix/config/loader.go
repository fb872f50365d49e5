package config

import (
	"fmt"

	"github.com/cognicore/gematrix/pkg/gematrix/ingest"
	"github.com/cognicore/gematrix/pkg/gematrix/numwords"
)

// Loader loads configuration files and constructs components
type Loader struct {
	ConfigPath   string
	StoplistPath string
}

// Components holds the loaded configuration and the components built from it
type Components struct {
	Config     Config
	Normalizer *numwords.Normalizer
	Tokenizer  *ingest.Tokenizer
	Pipeline   *ingest.Pipeline
}

// Load reads the configured files and returns initialized components.
// Empty paths fall back to defaults.
func (l *Loader) Load() (*Components, error) {
	cfg := Default()
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	return Build(cfg, l.StoplistPath)
}

// Build constructs components from cfg, adding stopwords from stoplistPath
// when set.
func Build(cfg Config, stoplistPath string) (*Components, error) {
	stopwords := append([]string(nil), cfg.Words.Stopwords...)
	if stoplistPath != "" {
		sl, err := LoadStoplist(stoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		stopwords = append(stopwords, sl.Terms...)
	}

	tokenizer := ingest.NewTokenizer(stopwords)
	tokenizer.SetLengthBounds(cfg.Words.MinLength, cfg.Words.MaxLength)

	normalizer := numwords.NewNormalizer(cfg.Normalizer.MaxDigits)
	pipeline := ingest.NewPipeline(normalizer, tokenizer)
	pipeline.SetLengthBounds(cfg.Headlines.MinLength, cfg.Headlines.MaxLength)

	return &Components{
		Config:     cfg,
		Normalizer: normalizer,
		Tokenizer:  tokenizer,
		Pipeline:   pipeline,
	}, nil
}
