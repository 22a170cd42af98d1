// Package client talks to the admin content API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-bilingual-cms/content"
	"github.com/goliatone/go-bilingual-cms/internal/logging"
	"github.com/goliatone/go-bilingual-cms/pkg/interfaces"
)

// HTTPClient matches the subset of http.Client used by Client.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client issues requests against the admin API base URL, for example
// https://cms.example.org/admin/api.
type Client struct {
	base   *url.URL
	http   HTTPClient
	logger interfaces.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides http.DefaultClient.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		c.logger = logging.Ensure(logger)
	}
}

// New constructs a Client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("client: base URL is required")
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("client: parse base URL: %w", err)
	}
	c := &Client{
		base:   parsed,
		http:   http.DefaultClient,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// GetSingleton fetches the navbar, contact info or the page settings of key.
func (c *Client) GetSingleton(ctx context.Context, kind content.Kind, key string) (map[string]any, error) {
	var doc map[string]any
	err := c.call(ctx, http.MethodGet, singletonPath(kind, key), nil, nil, http.StatusOK, &doc)
	return doc, err
}

// PutSingleton replaces a singleton document.
func (c *Client) PutSingleton(ctx context.Context, kind content.Kind, key string, doc map[string]any) (map[string]any, error) {
	var saved map[string]any
	err := c.call(ctx, http.MethodPut, singletonPath(kind, key), nil, doc, http.StatusOK, &saved)
	return saved, err
}

func singletonPath(kind content.Kind, key string) string {
	if kind == content.KindPages {
		return "pages/" + url.PathEscape(strings.ToLower(strings.TrimSpace(key)))
	}
	return kind.String()
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

// call sends payload as JSON and decodes the data field of the response
// into out. Any status other than want is returned as *APIError.
func (c *Client) call(ctx context.Context, method, endpoint string, query url.Values, payload any, want int, out any) error {
	req, err := c.newRequest(ctx, method, endpoint, query, payload)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("client.request.failed", "method", method, "endpoint", endpoint, "error", err)
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		apiErr := errorFromResponse(resp)
		c.logger.Debug("client.request.rejected", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "code", apiErr.Code)
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("client: decode %s %s: %w", method, endpoint, err)
	}
	if err := json.Unmarshal(body.Data, out); err != nil {
		return fmt.Errorf("client: decode %s %s data: %w", method, endpoint, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, payload any) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	target := c.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(endpoint, "/"), RawQuery: query.Encode()})

	var body io.Reader
	if payload != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("client: encode payload: %w", err)
		}
		body = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}
