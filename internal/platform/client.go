// Package platform is the client for the Carbon Wallet remote API. Every
// request goes through Client.do, which attaches the session token.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/carbonwallet/internal/errors"
	"github.com/felixgeelhaar/carbonwallet/internal/log"
	"github.com/felixgeelhaar/carbonwallet/internal/version"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 4 << 20
	contentTypeJSON  = "application/json"
	contentTypeForm  = "application/x-www-form-urlencoded"
)

// TokenSource yields the current access token, if any.
type TokenSource interface {
	Token(ctx context.Context) (string, bool, error)
}

// RequestValidator checks a request before it is sent.
type RequestValidator interface {
	ValidateRequest(ctx context.Context, method, path, contentType string, body []byte) error
}

// Client is the Carbon Wallet API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	validator  RequestValidator
	logger     *log.Logger
	userAgent  string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithValidator checks every request against v before sending it.
func WithValidator(v RequestValidator) Option {
	return func(c *Client) { c.validator = v }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the API served under backendURL + "/api".
// An empty backendURL is allowed: the client is built, a warning is
// logged, and every call fails with a NET-002 error.
func NewClient(backendURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		tokens:     tokens,
		logger:     log.DefaultLogger(),
		userAgent:  version.UserAgent(),
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := strings.TrimRight(strings.TrimSpace(backendURL), "/")
	if base == "" {
		c.logger.Warn("backend URL is not configured; remote calls will fail",
			"hint", "set CARBONWALLET_BACKEND_URL or api.backend_url")
	} else {
		c.baseURL = base + "/api"
	}

	return c
}

// BaseURL returns the API root, or "" when unconfigured.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Configured reports whether a backend URL was provided.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

type request struct {
	method      string
	path        string
	contentType string
	body        []byte
	headers     map[string]string

	// classify overrides the default mapping of non-2xx responses.
	classify func(status int, detail string) error
}

func jsonRequest(method, path string, payload any) (request, error) {
	r := request{method: method, path: path}
	if payload == nil {
		return r, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return r, errors.Wrap(errors.ErrCodeNetworkInvalidRequest, "failed to marshal request body", err)
	}
	r.body = body
	r.contentType = contentTypeJSON
	return r, nil
}

func formRequest(method, path string, values url.Values) request {
	return request{
		method:      method,
		path:        path,
		contentType: contentTypeForm,
		body:        []byte(values.Encode()),
	}
}

// do performs r and decodes a successful JSON response into out.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.baseURL == "" {
		return errors.NewNotConfiguredError()
	}

	if c.validator != nil {
		if err := c.validator.ValidateRequest(ctx, r.method, r.path, r.contentType, r.body); err != nil {
			return err
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetworkInvalidRequest, "failed to create request", err)
	}

	requestID := uuid.NewString()
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	if c.tokens != nil {
		token, ok, err := c.tokens.Token(ctx)
		if err != nil {
			return err
		}
		if ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		if stderrors.Is(err, context.DeadlineExceeded) {
			return errors.NewTimeoutError(r.path, err)
		}
		return errors.NewUnreachableError(r.path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "request completed",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.NewUnreachableError(r.path, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := errorDetail(data)
		if r.classify != nil {
			if err := r.classify(resp.StatusCode, detail); err != nil {
				return err
			}
		}
		return classifyStatus(resp.StatusCode, detail)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode, fmt.Sprintf("failed to decode response from %s", r.path), err).
				WithStatus(resp.StatusCode)
		}
	}

	return nil
}

// classifyStatus maps a non-2xx status onto the error taxonomy.
func classifyStatus(status int, detail string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return errors.NewUnauthorizedError(status, detail)
	case status >= 400 && status < 500:
		return errors.NewValidationError(status, detail)
	default:
		return errors.NewServerError(status, detail)
	}
}
