package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Fetcher defines the Discogs operations used by the lookup pipeline.
type Fetcher interface {
	GetRelease(ctx context.Context, id int64) (*Release, error)
	GetMaster(ctx context.Context, id int64) (*Master, error)
	SearchBarcode(ctx context.Context, barcode string) (*SearchResponse, error)
}

// Client provides access to the Discogs API.
type Client struct {
	token      string
	baseURL    string
	userAgent  string
	maxRetries int
	backoff    time.Duration
	interval   time.Duration
	httpClient *http.Client

	mu         sync.Mutex
	lastAccess time.Time
}

var _ Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimitInterval sets the minimum delay between requests. Zero
// disables throttling.
func WithRateLimitInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

// WithRetryPolicy sets the 429 retry count and base backoff delay.
func WithRetryPolicy(maxRetries int, backoff time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// New creates a Discogs client.
func New(token, baseURL, userAgent string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("discogs token required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("discogs base url required")
	}
	client := &Client{
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  strings.TrimSpace(userAgent),
		maxRetries: 3,
		backoff:    2 * time.Second,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetRelease fetches one pressing by id. A missing release returns
// (nil, nil).
func (c *Client) GetRelease(ctx context.Context, id int64) (*Release, error) {
	if id <= 0 {
		return nil, errors.New("release id must be positive")
	}
	var payload Release
	found, err := c.getJSON(ctx, fmt.Sprintf("%s/releases/%d", c.baseURL, id), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("fetch release %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &payload, nil
}

// GetMaster fetches a master edition by id. A missing master returns
// (nil, nil).
func (c *Client) GetMaster(ctx context.Context, id int64) (*Master, error) {
	if id <= 0 {
		return nil, errors.New("master id must be positive")
	}
	var payload Master
	found, err := c.getJSON(ctx, fmt.Sprintf("%s/masters/%d", c.baseURL, id), nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("fetch master %d: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &payload, nil
}

// SearchBarcode runs a database search restricted to releases with the
// given barcode.
func (c *Client) SearchBarcode(ctx context.Context, barcode string) (*SearchResponse, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.New("barcode must not be empty")
	}
	params := url.Values{}
	params.Set("barcode", barcode)
	params.Set("type", "release")
	var payload SearchResponse
	found, err := c.getJSON(ctx, c.baseURL+"/database/search", params, &payload)
	if err != nil {
		return nil, fmt.Errorf("search barcode %s: %w", barcode, err)
	}
	if !found {
		return &SearchResponse{}, nil
	}
	return &payload, nil
}

// getJSON performs an authenticated GET and decodes the body into out.
// It returns found=false for 404 responses and retries 429 responses
// with exponential backoff up to the configured limit.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) (bool, error) {
	endpoint, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse url: %w", err)
	}
	if params != nil {
		endpoint.RawQuery = params.Encode()
	}

	for attempt := 0; ; attempt++ {
		c.throttle()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return false, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Discogs token="+c.token)
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}

		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err != nil {
			return false, fmt.Errorf("execute request (latency=%v): %w", latency, err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return false, fmt.Errorf("decode response: %w", err)
			}
			return true, nil
		case http.StatusNotFound:
			resp.Body.Close()
			return false, nil
		case http.StatusTooManyRequests:
			wait := retryDelay(resp, c.backoff, attempt)
			resp.Body.Close()
			if attempt >= c.maxRetries {
				return false, fmt.Errorf("rate limited after %d retries", c.maxRetries)
			}
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		default:
			resp.Body.Close()
			return false, fmt.Errorf("discogs returned %d (latency=%v)", resp.StatusCode, latency)
		}
	}
}

// throttle enforces the minimum interval between requests.
func (c *Client) throttle() {
	if c.interval <= 0 {
		return
	}
	c.mu.Lock()
	wait := c.interval - time.Since(c.lastAccess)
	if wait > 0 {
		time.Sleep(wait)
	}
	c.lastAccess = time.Now()
	c.mu.Unlock()
}

// retryDelay honors a Retry-After header when present and otherwise
// doubles the base backoff per attempt.
func retryDelay(resp *http.Response, base time.Duration, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return base << attempt
}
