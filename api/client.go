// Package api is the REST client for the shop backend.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/Kariqs/amexan-storefront/storage"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "http://localhost:8082/api"
	DefaultTimeout = 10 * time.Second

	// TokenNamespace is where the bearer token is persisted.
	TokenNamespace = "auth-token"
)

var ErrUnauthorized = errors.New("api: unauthorized")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client wraps a resty client with bearer-token handling. A 401 from any
// endpoint drops the held token and fires the unauthorized hook.
type Client struct {
	http   *resty.Client
	tokens storage.Storage
	log    *slog.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithTokenStorage persists the bearer token under TokenNamespace.
func WithTokenStorage(s storage.Storage) Option {
	return func(c *Client) { c.tokens = s }
}

func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		http: resty.New().SetBaseURL(baseURL).SetTimeout(DefaultTimeout),
		log:  logging.New("api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			if token := c.Token(); token != "" {
				req.SetAuthToken(token)
			}
			return nil
		}).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() == http.StatusUnauthorized {
				c.log.Warn("backend rejected credentials", "path", resp.Request.URL)
				c.ClearToken(resp.Request.Context())
				c.mu.RLock()
				hook := c.onUnauthorized
				c.mu.RUnlock()
				if hook != nil {
					hook()
				}
			}
			return nil
		})
	return c
}

// SetUnauthorizedHandler replaces the hook fired on a 401.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(ctx context.Context, token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if c.tokens == nil {
		return
	}
	if err := c.tokens.Save(ctx, TokenNamespace, []byte(token)); err != nil {
		c.log.Error("failed to persist auth token", "error", err)
	}
}

func (c *Client) ClearToken(ctx context.Context) {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if c.tokens == nil {
		return
	}
	if err := c.tokens.Delete(ctx, TokenNamespace); err != nil {
		c.log.Error("failed to delete auth token", "error", err)
	}
}

// RestoreToken loads a previously persisted token. It returns the token, or
// an empty string when none was stored.
func (c *Client) RestoreToken(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return c.Token(), nil
	}
	b, err := c.tokens.Load(ctx, TokenNamespace)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("restore token: %w", err)
	}
	c.mu.Lock()
	c.token = string(b)
	c.mu.Unlock()
	return string(b), nil
}

type requestOption func(*resty.Request)

func withQuery(params map[string]string) requestOption {
	return func(r *resty.Request) { r.SetQueryParams(params) }
}

func withHeader(key, value string) requestOption {
	return func(r *resty.Request) { r.SetHeader(key, value) }
}

func (c *Client) do(ctx context.Context, method, path string, body, result any, opts ...requestOption) error {
	var eb errorBody
	req := c.http.R().SetContext(ctx).SetError(&eb)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
