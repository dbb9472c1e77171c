package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

const (
	quotePath           = "/api/quote"
	listPath            = "/api/quotes"
	defaultHTTPTimeout  = 10 * time.Second
	maxResponseBodySize = 1 << 20
)

// ListResult is the answer of the listing endpoint.
type ListResult struct {
	Count int     `json:"count"`
	Items []Quote `json:"items"`
}

// Client talks to the quote endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *log.Logger
}

// ClientOption mutates the client during construction.
type ClientOption func(*Client)

// WithHTTPClient installs a custom http.Client, e.g. one whose transport
// goes through the offline asset cache.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithBreaker guards requests with a circuit breaker that opens after
// maxFailures consecutive transport or server failures and retries after
// timeout.
func WithBreaker(maxFailures uint32, timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "quote-endpoint",
			Timeout: timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			IsSuccessful: breakerSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
			},
		})
	}
}

func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client for the endpoint rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("quote: base URL is required")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return c, nil
}

// Fetch asks the endpoint for one quote matching opts. The request bypasses
// any HTTP-level cache.
func (c *Client) Fetch(ctx context.Context, opts Options) (Quote, error) {
	var q Quote
	if err := c.get(ctx, quotePath, opts, &q); err != nil {
		return Quote{}, err
	}
	return q, nil
}

// List returns up to the first 100 quotes matching the category, length and
// search filters of opts.
func (c *Client) List(ctx context.Context, opts Options) (ListResult, error) {
	opts.ID = ""
	opts.Mode = ""
	var res ListResult
	if err := c.get(ctx, listPath, opts, &res); err != nil {
		return ListResult{}, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string, opts Options, out any) error {
	if c.breaker == nil {
		return c.do(ctx, path, opts, out)
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, path, opts, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("quote endpoint unavailable: %w", err)
	}
	return err
}

func (c *Client) do(ctx context.Context, path string, opts Options, out any) error {
	u := c.baseURL + path
	if q := opts.Encode(); q != "" {
		u += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("quote request", "path", path, "query", opts.Encode(), "status", resp.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return buildStatusError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// breakerSuccess keeps client-side outcomes (no match, bad request,
// cancellation) from tripping the breaker.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode < 500
	}
	return false
}
