// Package pulumi is a typed client for the Pulumi Cloud REST API: stacks,
// ESC environments, Neo agent tasks, the package/template registry, and
// resource search.
package pulumi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"lazypulumi/internal/logging"
)

// DefaultBaseURL is the public Pulumi Cloud API endpoint.
const DefaultBaseURL = "https://api.pulumi.com"

// paginationSafetyCap bounds continuation-token loops against a server that
// never stops handing out tokens.
const paginationSafetyCap = 10000

// Client talks to the Pulumi Cloud API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	defaultOrg string
	logger     *logging.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithLogger sets the client logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client with an explicit access token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrNoAccessToken
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		token:      token,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromEnv builds a client from PULUMI_ACCESS_TOKEN, PULUMI_API_URL and
// PULUMI_ORG.
func NewFromEnv(opts ...Option) (*Client, error) {
	c, err := New(os.Getenv("PULUMI_ACCESS_TOKEN"), opts...)
	if err != nil {
		return nil, err
	}
	if base := os.Getenv("PULUMI_API_URL"); base != "" && c.baseURL == DefaultBaseURL {
		c.baseURL = strings.TrimRight(base, "/")
	}
	c.defaultOrg = os.Getenv("PULUMI_ORG")
	return c, nil
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// DefaultOrg returns the organization from PULUMI_ORG, if any.
func (c *Client) DefaultOrg() string { return c.defaultOrg }

// SetDefaultOrg overrides the default organization.
func (c *Client) SetDefaultOrg(org string) { c.defaultOrg = org }

// resolveOrg falls back to the default organization.
func (c *Client) resolveOrg(org string) (string, error) {
	if org != "" {
		return org, nil
	}
	if c.defaultOrg != "" {
		return c.defaultOrg, nil
	}
	return "", ErrNoOrganization
}

// newRequest builds a request with auth and accept headers. body may be nil.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := path
	if !strings.HasPrefix(path, "http") {
		u = c.baseURL + path
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request and returns the body on 2xx, or an *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading body: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
	return data, nil
}

// getJSON issues a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Error("failed to parse response", "path", path, "preview", truncate(string(data), 500))
		return &ParseError{What: path, Preview: truncate(string(data), 500), Err: err}
	}
	return nil
}

// postJSON issues a POST with a JSON body and returns the raw response body.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req)
}

// queryEscape is a short alias kept for readability in URL builders.
func queryEscape(s string) string { return url.QueryEscape(s) }
