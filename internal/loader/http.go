// Package loader fetches the remote source tables and parses them into
// typed records for scoring. A source that cannot be fetched or parsed
// yields an empty, correctly shaped table and a warning, never an error
// that stops the run: a missing form export just means no club submitted.
package loader

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/district91/leaderboard-cli/internal/config"
)

// HTTPFetcher downloads source files over HTTP(S) with retries and a
// shared rate limit so a refresh does not hammer the file store.
type HTTPFetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// NewHTTPFetcher creates an HTTPFetcher from fetch configuration.
func NewHTTPFetcher(cfg config.FetchConfig) *HTTPFetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 2
	}
	return &HTTPFetcher{
		client:     &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
	}
}

// Fetch downloads the URL and returns the body plus the filename reported
// in the content-disposition header (empty when the server sends none).
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, "", eris.Wrap(err, "loader: rate limit")
		}

		body, filename, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, filename, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		zap.L().Warn("loader: fetch attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		select {
		case <-time.After(time.Duration(attempt+1) * 500 * time.Millisecond):
		case <-ctx.Done():
			return nil, "", eris.Wrap(ctx.Err(), "loader: fetch cancelled")
		}
	}

	return nil, "", eris.Wrapf(lastErr, "loader: fetch %s", url)
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", eris.Wrap(err, "loader: build request")
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", eris.Wrap(err, "loader: http get")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", eris.Errorf("loader: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", eris.Wrap(err, "loader: read body")
	}

	return body, dispositionFilename(resp.Header.Get("Content-Disposition")), nil
}

// dispositionFilename extracts the filename from a content-disposition
// header value. Returns "" when absent or unparsable.
func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		// Drive occasionally sends bare filename=... values.
		if i := strings.Index(header, "filename="); i >= 0 {
			return strings.Trim(header[i+len("filename="):], `"; `)
		}
		return ""
	}
	return params["filename"]
}
