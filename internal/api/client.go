// Package api is the single point of egress for all backend calls. It owns
// the two cross-cutting request policies so the domain services never
// reimplement them: attaching the bearer token from the session store, and
// clearing that store when the backend reports the token invalid.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stockwatch/stockwatch-go/internal/session"
)

// Client dispatches authenticated requests to the backend REST API.
// One request, one response: no retries, no backoff, no queuing.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit throttles outgoing requests to rps requests per second with
// the given burst. A zero or negative rps disables the throttle.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a Client rooted at baseURL that reads and invalidates sessions
// through store.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		store:      store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends one request and decodes the JSON response into out (skipped when
// out is nil). The path is relative to the configured base URL. If a session
// is present its token is attached as a bearer credential; a 401 answer
// clears the session store and resolves as ErrUnauthenticated regardless of
// the response body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess, ok := c.store.Load(); ok {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	slog.Debug("api request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.store.Clear(); err != nil {
			slog.Warn("failed to clear session after 401", "error", err)
		}
		return ErrUnauthenticated
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusToError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// statusToError maps a non-2xx response onto the error taxonomy. The body is
// expected to be the backend's {"error": msg} shape but anything else is
// tolerated.
func statusToError(resp *http.Response) error {
	msg := errorMessage(resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return ErrNotFound
	case http.StatusConflict:
		if msg != "" {
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		}
		return ErrConflict
	default:
		return &StatusError{Status: resp.StatusCode, Message: msg}
	}
}

func errorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return ""
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return parsed.Message
}
