// Package rss fetches RSS 2.0 and Atom feeds over HTTP and reduces them to
// titled items.
package rss

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Defaults for NewFetcher.
const (
	DefaultUserAgent    = "GematrixNewsCrawler/1.0"
	DefaultTimeout      = 20 * time.Second
	DefaultRetries      = 2
	DefaultRetryBackoff = 250 * time.Millisecond

	acceptHeader = "application/rss+xml,application/atom+xml,application/xml,text/xml,*/*"
	maxFeedBytes = 10 << 20
)

// Item represents a simplified feed item
type Item struct {
	Title       string
	Link        string
	PublishedAt time.Time // zero when the feed has no parseable date
}

// StatusError is returned for non-2xx feed responses.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed %s: unexpected status %d", e.URL, e.Status)
}

// Options configures a Fetcher. Zero values fall back to the defaults.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
	Client       *http.Client
	Logger       *zap.Logger
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	client    *http.Client
	userAgent string
	retries   int
	backoff   time.Duration
	logger    *zap.Logger
}

// NewFetcher creates a Fetcher. A negative Retries disables retrying.
func NewFetcher(opts Options) *Fetcher {
	f := &Fetcher{
		client:    opts.Client,
		userAgent: opts.UserAgent,
		retries:   opts.Retries,
		backoff:   opts.RetryBackoff,
		logger:    opts.Logger,
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	if f.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		f.client = &http.Client{Timeout: timeout}
	}
	if f.retries < 0 {
		f.retries = 0
	}
	if f.backoff <= 0 {
		f.backoff = DefaultRetryBackoff
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	return f
}

// Fetch downloads feedURL and returns the titled items among its first
// limit entries. A non-positive limit returns every item.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, limit int) ([]Item, error) {
	var body []byte
	var err error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			f.logger.Debug("retrying feed",
				zap.String("url", feedURL),
				zap.Int("attempt", attempt),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.backoff):
			}
		}
		body, err = f.get(ctx, feedURL)
		if err == nil || ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return Parse(body, limit)
}

func (f *Fetcher) get(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: feedURL, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", feedURL, err)
	}
	return body, nil
}

type document struct {
	XMLName xml.Name
	Channel struct {
		Items []entry `xml:"item"`
	} `xml:"channel"`
	Items   []entry `xml:"item"` // RSS 1.0 keeps items outside the channel
	Entries []entry `xml:"entry"`
}

// entry covers both RSS items and Atom entries.
type entry struct {
	Title     string `xml:"title"`
	Links     []link `xml:"link"`
	PubDate   string `xml:"pubDate"`
	Date      string `xml:"date"`
	Updated   string `xml:"updated"`
	Published string `xml:"published"`
}

type link struct {
	Href string `xml:"href,attr"`
	Text string `xml:",chardata"`
}

// Parse decodes an RSS or Atom document. The first limit entries are
// read and those without a title dropped, so fewer than limit items may
// come back.
func Parse(data []byte, limit int) ([]Item, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var entries []entry
	switch strings.ToLower(doc.XMLName.Local) {
	case "rss":
		entries = doc.Channel.Items
	case "rdf":
		entries = append(doc.Channel.Items, doc.Items...)
	case "feed":
		entries = doc.Entries
	default:
		return nil, errors.New("parse feed: not an RSS or Atom document")
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			continue
		}
		items = append(items, Item{
			Title:       title,
			Link:        e.link(),
			PublishedAt: ParseDate(firstNonEmpty(e.PubDate, e.Date, e.Updated, e.Published)),
		})
	}
	return items, nil
}

func (e entry) link() string {
	for _, l := range e.Links {
		if href := strings.TrimSpace(l.Href); href != "" {
			return href
		}
		if text := strings.TrimSpace(l.Text); text != "" {
			return text
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339Nano,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses the date formats seen in RSS and Atom feeds. It returns
// the zero time when s matches none of them.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
