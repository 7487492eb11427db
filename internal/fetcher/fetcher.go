// Package fetcher retrieves article pages for link analysis.
package fetcher

import (
	"context"
	"time"
)

// PageContent represents a fetched page.
type PageContent struct {
	URL         string
	HTML        string
	Text        string // Readable text, used for render-mode detection
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// FetchOptions controls fetching behavior.
type FetchOptions struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic only)
	WaitDuration    time.Duration // Additional wait after load
	Headers         map[string]string
}

// DefaultFetchOptions returns sensible defaults.
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		UserAgent: "linkprune/1.0 (https://github.com/linkprune/linkprune)",
		Timeout:   30 * time.Second,
	}
}

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts FetchOptions) (PageContent, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns "static" or "dynamic".
	Type() string
}

// Config holds common fetcher configuration.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent: "linkprune/1.0 (https://github.com/linkprune/linkprune)",
		Timeout:   30 * time.Second,
	}
}
