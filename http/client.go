// Package http provides network-tier clients for the remote
// manual-page archive and the help site. Requests are rate limited
// and sequential; transport failures degrade to "absent" rather than
// errors so a flaky network never aborts an index build.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultRequestsPerSecond limits the request rate to the remote
// documentation servers. Burst is 1: no bursting allowed.
const DefaultRequestsPerSecond = 4

const userAgent = "docdex/1.0"

// Fallback release identifiers used when the detected release's
// documentation is not yet published. Treated as configuration
// constants, not a policy to auto-update.
const (
	FallbackCodename    = "noble" // Ubuntu 24.04 LTS
	FallbackHelpRelease = "lts"
)

// client is the shared HTTP transport for both documentation sources.
type client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures a documentation client.
type Option func(*client)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.http.Timeout = d
	}
}

// WithRateLimit sets the requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the logger for fetch outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *client) {
		c.logger = logger
	}
}

func newClient(opts ...Option) *client {
	c := &client{
		http:    &http.Client{Timeout: DefaultFetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a rate-limited GET. ok is false for any transport
// error or non-200 status.
func (c *client) get(ctx context.Context, url string) ([]byte, bool) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("fetch failed", "url", url, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("fetch rejected", "url", url, "status", resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// dedupeReleases returns the detected release followed by the
// fallback, with duplicates removed.
func dedupeReleases(detected, fallback string) []string {
	if detected == "" || detected == fallback {
		return []string{fallback}
	}
	return []string{detected, fallback}
}
