// Package api looks up bibliographic entries from remote services: CrossRef
// by DOI or title, Google Books by ISBN and the IETF datatracker by RFC
// number. Every lookup goes through the Client interface so transports can be
// swapped, cached or mocked.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/seb/internal/seb"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the polite request rate shared across the lookup
	// services, none of which document a hard limit.
	RateLimit = 2.0

	defaultUserAgent = "seb (bibliography manager)"
)

// Client fetches remote resources for the lookup functions in this package.
type Client interface {
	// GetText fetches the URL and returns the response body as text.
	GetText(ctx context.Context, url string) (string, error)
	// GetJSON fetches the URL and unmarshals the JSON response body.
	GetJSON(ctx context.Context, url string, into any) error
}

// HTTPClient is the rate-limited http implementation of Client.
type HTTPClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(c *HTTPClient) {
		c.userAgent = ua
	}
}

// NewHTTPClient creates a rate-limited HTTP client.
func NewHTTPClient(opts ...ClientOption) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		userAgent:  defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *HTTPClient) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, seb.Wrap(seb.KindIO, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, seb.Wrap(seb.KindIO, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, seb.Wrap(seb.KindIO, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, seb.New(seb.KindIO, fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, seb.Wrap(seb.KindIO, err)
	}
	return body, nil
}

// GetText fetches the URL and returns the body as text. An empty body is a
// NoValue error because every service used here answers a miss that way.
func (c *HTTPClient) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", seb.New(seb.KindNoValue, "response body was empty")
	}
	return string(body), nil
}

// GetJSON fetches the URL and unmarshals the JSON response body into into.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, into any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, into); err != nil {
		return seb.WrapWith(seb.KindDeserialize, err, "unable to parse response as JSON")
	}
	return nil
}
