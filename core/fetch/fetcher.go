// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests for `clipmark convert --url`.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/clipmark/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "clipmark/1.0 (https://github.com/gaurav-prasanna/clipmark)"

	// DefaultMaxBytes caps the size of a fetched page.
	DefaultMaxBytes = 10 << 20
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates an HTTPFetcher with a sensible timeout.
func New() *HTTPFetcher {
	return NewWithClient(&http.Client{Timeout: defaultTimeout}, DefaultMaxBytes)
}

// NewWithClient creates an HTTPFetcher using client and rejecting bodies
// larger than maxBytes.
func NewWithClient(client *http.Client, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, f.maxBytes)
	}

	slog.Debug("page fetched", "url", url, "status", resp.StatusCode, "bytes", len(body), "duration", time.Since(start).String())

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
