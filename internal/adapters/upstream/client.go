// internal/adapters/upstream/client.go
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"guest_reviews/internal/adapters/observability"
	"guest_reviews/internal/domain"
)

const (
	userAgent = "guest-reviews/1.0"

	// MaxBodyBytes caps a successful response body.
	MaxBodyBytes = 8 << 20
)

// Client is a rate-limited JSON GET client shared by the review source adapters.
// Calls are single-attempt: a failure surfaces to the aggregator as a warning.
type Client struct {
	service string
	hc      *http.Client
	rl      *rate.Limiter
}

func New(service string, timeout time.Duration, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		service: service,
		hc:      &http.Client{Timeout: timeout},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// GetRaw performs a GET and returns the body of a 2xx response.
// endpoint is the low-cardinality metrics label for url.
func (c *Client) GetRaw(ctx context.Context, endpoint, url string, header http.Header) ([]byte, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(c.service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUpstreamUnavailable, c.service, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal(c.service, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s: status %d: %s",
			domain.ErrUpstreamUnavailable, c.service, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", domain.ErrUpstreamUnavailable, c.service, err)
	}
	if len(b) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: %s: body exceeds %d bytes", domain.ErrBadUpstreamFormat, c.service, MaxBodyBytes)
	}
	return b, nil
}

// GetJSON is GetRaw followed by a decode into out. A body that does not
// decode is a format error, not an availability one.
func (c *Client) GetJSON(ctx context.Context, endpoint, url string, header http.Header, out any) error {
	b, err := c.GetRaw(ctx, endpoint, url, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrBadUpstreamFormat, c.service, err)
	}
	return nil
}
