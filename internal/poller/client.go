package poller

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxDrainBodySize = 1 << 20 // 1MB

// connection pooling limits; a single target is polled sequentially, so a
// handful of idle connections is plenty
const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 60 * time.Second // conservative: matches common ALB defaults
)

// Response holds the result of an HTTP request made by [Client].
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 503).
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Error contains any transport error that occurred during the request.
	// nil indicates a response was received, whatever its status.
	Error error
}

// Client is an HTTP client wrapper for readiness probes.
//
// Client uses per-request timeouts via context rather than a global timeout.
// Redirects are not followed: a 3xx answer already means the target is
// serving traffic.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new probe [Client].
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			// no default timeout - we use per-request timeouts via context
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Fetch performs a GET request against url and returns a structured [Response].
//
// The timeout is applied via context cancellation. Up to 1MB of the body is
// drained so the connection can be reused; the body itself is discarded.
//
// Fetch always returns a Response; errors are captured in the Error field.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) Response {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{Error: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{Error: fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	// drain errors don't change the answer we already got
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBodySize))

	return Response{StatusCode: resp.StatusCode}
}

// Close closes all idle connections in the client's connection pool.
//
// Safe to call multiple times and on a nil Client. After Close, the client
// remains usable but new connections will be established as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
