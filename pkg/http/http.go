package http

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/exp/rand"
)

//go:generate mockgen -package mocks -destination mocks/mock_http_client.go github.com/kasuboski/renamez/pkg/http HTTPClient

const (
	DefaultMaxRetries  = 3
	DefaultBaseBackoff = time.Millisecond * 500
	DefaultTimeout     = time.Second * 30
	DefaultUserAgent   = "renamez"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client decorates requests with credentials and a user agent and backs off on 429 and 503 responses
// The client can be used concurrently
type Client struct {
	mu          sync.Mutex
	client      HTTPClient
	username    string
	password    string
	userAgent   string
	baseBackoff time.Duration
	maxRetries  int
}

// ClientOption is a function that can be used to configure a Client
type ClientOption func(*Client)

// NewClient creates a new Client with a default timeout
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxRetries:  DefaultMaxRetries,
		baseBackoff: DefaultBaseBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithMaxRetries sets the maximum number of attempts for a single request
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

// WithBaseBackoff sets the base backoff time for the client
func WithBaseBackoff(baseBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.baseBackoff = baseBackoff
	}
}

// WithHTTPClient sets the http client to use for the client
func WithHTTPClient(client HTTPClient) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout replaces the underlying client with one that times out after the given duration
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client = &http.Client{Timeout: timeout}
	}
}

// WithBasicAuth sets credentials sent on every request. An empty username disables auth.
func WithBasicAuth(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithUserAgent sets the User-Agent header sent on every request
func WithUserAgent(userAgent string) ClientOption {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func (c *Client) getBackoff() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseBackoff
}

func (c *Client) getMaxRetries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxRetries
}

// Do executes the HTTP request while respecting 429 and 503 responses
// This is a blocking call until the request completes, the request context is done, or the maximum retries is reached
// If the maximum number of retries is reached, the response returned will be the last response received
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var resp *http.Response
	var err error

	maxRetries := c.getMaxRetries()
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 && req.GetBody != nil {
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, err
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			return nil, err
		}

		if !shouldRetry(resp.StatusCode) {
			return resp, nil
		}

		if attempt == maxRetries-1 {
			break
		}

		retryAfter := c.getRetryAfter(resp, attempt)
		resp.Body.Close()

		timer := time.NewTimer(retryAfter)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}
	}

	return resp, fmt.Errorf("rate limit exceeded after %d retries", maxRetries)
}

func shouldRetry(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// getRetryAfter calculates the appropriate retry delay
func (c *Client) getRetryAfter(resp *http.Response, attempt int) time.Duration {
	retryAfterHeader := resp.Header.Get("Retry-After")

	if retryAfterHeader != "" {
		seconds, err := strconv.Atoi(retryAfterHeader)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	baseBackoff := c.getBackoff()

	// 2^n backoff
	expBackoff := time.Duration(1<<attempt) * baseBackoff

	if baseBackoff <= 0 {
		return expBackoff
	}

	// staggers the backoff to avoid a thundering herd
	jitter := time.Duration(rand.Int63n(int64(baseBackoff)))

	return expBackoff + jitter
}
