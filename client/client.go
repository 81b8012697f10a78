// Package client is a typed wrapper around the recipe HTTP API.
//
// Every method issues exactly one request. Any non-2xx response is reported
// as an *Error carrying the operation and status; the response body is not
// read, so the server's message is not available to callers.
package client

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

	"recipeshare_backend/models"
)

const (
	// DefaultBaseURL is where the API listens in a default local setup.
	DefaultBaseURL = "http://localhost:3000/api"

	DefaultTimeout = 30 * time.Second
	UserAgent      = "RecipeShare-Client/1.0"
)

// Error is returned for transport failures and non-2xx responses.
type Error struct {
	Op         string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to %s: status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// New returns a client for the API rooted at baseURL. An empty baseURL uses
// DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	err := c.do(ctx, "fetch recipes", http.MethodGet, "/recipes", nil, &out)
	return out, err
}

func (c *Client) GetRecipe(ctx context.Context, id string) (models.Recipe, error) {
	var out models.Recipe
	err := c.do(ctx, "fetch recipe", http.MethodGet, "/recipes/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateRecipe(ctx context.Context, in models.NewRecipe) (models.Recipe, error) {
	var out models.Recipe
	err := c.do(ctx, "create recipe", http.MethodPost, "/recipes", in, &out)
	return out, err
}

func (c *Client) UpdateRecipe(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	var out models.Recipe
	err := c.do(ctx, "update recipe", http.MethodPut, "/recipes/"+url.PathEscape(id), patch, &out)
	return out, err
}

func (c *Client) DeleteRecipe(ctx context.Context, id string) (models.Recipe, error) {
	var out models.Recipe
	err := c.do(ctx, "delete recipe", http.MethodDelete, "/recipes/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) SearchRecipes(ctx context.Context, query string) ([]models.Recipe, error) {
	var out []models.Recipe
	err := c.do(ctx, "search recipes", http.MethodGet, "/search?query="+url.QueryEscape(query), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	return nil
}
