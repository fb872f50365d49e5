package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/gematrix/pkg/gematrix/internalerr"
	"github.com/cognicore/gematrix/pkg/gematrix/numwords"
)

// Config is the top-level gematrix configuration file.
type Config struct {
	Crawler    Crawler      `yaml:"crawler"`
	Normalizer Normalizer   `yaml:"normalizer"`
	Headlines  LengthBounds `yaml:"headlines"`
	Words      Words        `yaml:"words"`
	Phrases    LengthBounds `yaml:"phrases"`
	Sources    []Source     `yaml:"sources"`
}

// Crawler configures feed fetching.
type Crawler struct {
	Name           string        `yaml:"name"`
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	Retries        int           `yaml:"retries"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
	LimitPerSource int           `yaml:"limit_per_source"`
	Concurrency    int           `yaml:"concurrency"`
}

// Normalizer configures numeral expansion.
type Normalizer struct {
	// MaxDigits caps bare digit runs that are spelled out as numbers.
	MaxDigits int `yaml:"max_digits"`
}

// LengthBounds is an inclusive rune length range.
type LengthBounds struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
}

// Words configures single-word extraction from headlines.
type Words struct {
	LengthBounds `yaml:",inline"`
	Stopwords    []string `yaml:"stopwords"`
}

// Source is a default news feed registered on first crawl.
type Source struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	RSSURL  string `yaml:"rss_url"`
	Locale  string `yaml:"locale"`
	Weight  int    `yaml:"weight"` // 0 means 100
}

// Crawl and import limits accepted on the command line.
const (
	MinCrawlLimit = 10
	MaxCrawlLimit = 500
)

// Default returns a working configuration.
func Default() Config {
	return Config{
		Crawler: Crawler{
			Name:           "news_headlines",
			UserAgent:      "GematrixNewsCrawler/1.0",
			Timeout:        20 * time.Second,
			Retries:        2,
			RetryBackoff:   250 * time.Millisecond,
			LimitPerSource: 80,
			Concurrency:    4,
		},
		Normalizer: Normalizer{MaxDigits: numwords.DefaultMaxDigits},
		Headlines:  LengthBounds{MinLength: 3, MaxLength: 500},
		Words:      Words{LengthBounds: LengthBounds{MinLength: 3, MaxLength: 40}},
		Phrases:    LengthBounds{MinLength: 2, MaxLength: 500},
		Sources: []Source{
			{Name: "BBC News", BaseURL: "https://www.bbc.com", RSSURL: "https://feeds.bbci.co.uk/news/world/rss.xml", Locale: "en"},
			{Name: "Al Jazeera", BaseURL: "https://www.aljazeera.com", RSSURL: "https://www.aljazeera.com/xml/rss/all.xml", Locale: "en"},
			{Name: "NPR", BaseURL: "https://www.npr.org", RSSURL: "https://feeds.npr.org/1004/rss.xml", Locale: "en"},
			{Name: "Times of Israel", BaseURL: "https://www.timesofisrael.com", RSSURL: "https://www.timesofisrael.com/feed/", Locale: "en"},
		},
	}
}

// Load reads a YAML file over Default. Keys missing from the file keep
// their defaults; a present sources list replaces the default list.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Crawler.Name != "", "crawler.name is required")
	check(c.Crawler.Timeout > 0, "crawler.timeout must be positive")
	check(c.Crawler.Retries >= 0, "crawler.retries must not be negative")
	check(c.Crawler.RetryBackoff >= 0, "crawler.retry_backoff must not be negative")
	check(c.Crawler.LimitPerSource >= MinCrawlLimit && c.Crawler.LimitPerSource <= MaxCrawlLimit,
		"crawler.limit_per_source must be in [%d, %d]", MinCrawlLimit, MaxCrawlLimit)
	check(c.Crawler.Concurrency >= 1, "crawler.concurrency must be at least 1")
	check(c.Normalizer.MaxDigits >= 1 && c.Normalizer.MaxDigits <= 18,
		"normalizer.max_digits must be in [1, 18]")
	for _, b := range []struct {
		name string
		LengthBounds
	}{
		{"headlines", c.Headlines},
		{"words", c.Words.LengthBounds},
		{"phrases", c.Phrases},
	} {
		check(b.MinLength >= 1 && b.MaxLength >= b.MinLength,
			"%s length bounds [%d, %d] are invalid", b.name, b.MinLength, b.MaxLength)
	}
	for i, s := range c.Sources {
		check(s.Name != "" && s.RSSURL != "", "sources[%d] needs name and rss_url", i)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
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
		return nil, err
	}

	return &sl, nil
}

// ClampCrawlLimit bounds a per-source item limit to [MinCrawlLimit, MaxCrawlLimit].
func ClampCrawlLimit(n int) int {
	return min(max(n, MinCrawlLimit), MaxCrawlLimit)
}
