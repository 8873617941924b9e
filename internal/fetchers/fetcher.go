package fetchers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"trendchart/internal/logger"
	"trendchart/internal/models"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetryCount = 3
	defaultRetryWait  = 2 * time.Second
)

// DocumentFetcher loads the chart document from a URL or a local file
type DocumentFetcher struct {
	client *resty.Client
	log    *logger.Logger
}

// Option configures a DocumentFetcher
type Option func(*DocumentFetcher)

// WithRetries sets how often failed requests are retried and the wait between attempts
func WithRetries(count int, wait time.Duration) Option {
	return func(f *DocumentFetcher) {
		f.client.SetRetryCount(count)
		f.client.SetRetryWaitTime(wait)
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(timeout time.Duration) Option {
	return func(f *DocumentFetcher) {
		f.client.SetTimeout(timeout)
	}
}

// NewDocumentFetcher creates a new fetcher instance
func NewDocumentFetcher(opts ...Option) *DocumentFetcher {
	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetRetryCount(defaultRetryCount)
	client.SetRetryWaitTime(defaultRetryWait)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= http.StatusInternalServerError
	})

	f := &DocumentFetcher{
		client: client,
		log:    logger.GetGlobalLogger().WithComponent("fetcher"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Load reads the document from source, which is either an http(s) URL or a
// file path
func (f *DocumentFetcher) Load(ctx context.Context, source string) (models.Document, error) {
	if source == "" {
		return nil, fmt.Errorf("no chart data source configured")
	}
	if IsURL(source) {
		return f.Fetch(ctx, source)
	}
	return f.LoadFile(source)
}

// Fetch downloads and parses the document at url
func (f *DocumentFetcher) Fetch(ctx context.Context, url string) (models.Document, error) {
	start := time.Now()
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chart data: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("chart data source returned status %d", resp.StatusCode())
	}

	doc, err := models.ParseDocument(resp.Body())
	if err != nil {
		return nil, err
	}
	f.logLoaded(doc, url, time.Since(start))
	return doc, nil
}

// LoadFile reads and parses a document stored on disk
func (f *DocumentFetcher) LoadFile(path string) (models.Document, error) {
	start := time.Now()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart data file: %w", err)
	}
	doc, err := models.ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	f.logLoaded(doc, path, time.Since(start))
	return doc, nil
}

func (f *DocumentFetcher) logLoaded(doc models.Document, source string, took time.Duration) {
	counts := make(map[string]interface{}, len(doc))
	for _, mode := range doc.AvailableModes() {
		counts[string(mode)] = len(doc[mode])
	}
	f.log.Info("Chart data loaded", map[string]interface{}{
		"source":      source,
		"series":      counts,
		"duration_ms": took.Milliseconds(),
	})
}

// IsURL reports whether source should be fetched over HTTP
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
