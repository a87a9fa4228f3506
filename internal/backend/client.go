package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody bounds how much of an error response is read for its detail.
const maxErrorBody = 64 << 10

type contextKey string

const tokenKey = contextKey("bearerToken")

// ContextWithToken returns a context whose backend requests carry the bearer token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token stored by ContextWithToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok && token != ""
}

// Config holds the backend connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the staff REST backend.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a new Client.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = u.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doJSON sends in (if non-nil) as JSON and decodes the response into out (if non-nil).
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send attaches the bearer token from the request context and executes the request.
func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if token, ok := TokenFromContext(req.Context()); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}
