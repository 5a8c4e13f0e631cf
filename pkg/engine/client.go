package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/alexbotov/engine-go/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBodyBytes bounds how much of a non-2xx response body is buffered
const maxErrorBodyBytes = 1 << 20

// HTTPDoer sends HTTP requests. *http.Client satisfies it
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the Engine API client. It is safe for concurrent use
type Client struct {
	mu     sync.RWMutex
	config Config
	auth   AuthorizationProvider

	httpClient    HTTPDoer
	logger        *slog.Logger
	correlationID func() string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithAuthorization sets the initial authorization provider
func WithAuthorization(provider AuthorizationProvider) Option {
	return func(c *Client) {
		c.auth = provider
	}
}

// WithLogger sets the logger used for per-request debug records
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCorrelationIDGenerator replaces the UUID generator used when a call
// does not supply its own correlation id
func WithCorrelationIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.correlationID = gen
		}
	}
}

// New creates a new Engine API client
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:        cfg,
		httpClient:    &http.Client{},
		logger:        logging.Nop(),
		correlationID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns a snapshot of the current configuration
func (c *Client) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// APIURL returns the configured base URL
func (c *Client) APIURL() string { return c.Config().APIURL }

// ServerID returns the configured server id
func (c *Client) ServerID() string { return c.Config().ServerID }

// ApplicationName returns the configured application name
func (c *Client) ApplicationName() string { return c.Config().ApplicationName }

// Locale returns the configured locale
func (c *Client) Locale() string { return c.Config().Locale }

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration { return c.Config().Timeout }

// SetAuthorization replaces the authorization provider. A nil provider
// stops sending the Authorization header
func (c *Client) SetAuthorization(provider AuthorizationProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = provider
}

// ChangeLocale switches the Accept-Language sent by subsequent requests
// An empty locale stops sending the header
func (c *Client) ChangeLocale(locale string) error {
	if err := validateLocale(locale); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = c.config.WithLocale(locale)
	return nil
}

func (c *Client) snapshot() (Config, AuthorizationProvider) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config, c.auth
}

// Get sends a GET request and decodes the response body into out
func (c *Client) Get(ctx context.Context, req Request, out any) error {
	return c.send(ctx, http.MethodGet, req, out)
}

// Post sends a POST request with req.Data as body
func (c *Client) Post(ctx context.Context, req Request, out any) error {
	return c.send(ctx, http.MethodPost, req, out)
}

// Put sends a PUT request with req.Data as body
func (c *Client) Put(ctx context.Context, req Request, out any) error {
	return c.send(ctx, http.MethodPut, req, out)
}

// Patch sends a PATCH request with req.Data as body
func (c *Client) Patch(ctx context.Context, req Request, out any) error {
	return c.send(ctx, http.MethodPatch, req, out)
}

// Delete sends a DELETE request
func (c *Client) Delete(ctx context.Context, req Request, out any) error {
	return c.send(ctx, http.MethodDelete, req, out)
}

func (c *Client) send(ctx context.Context, method string, req Request, out any) error {
	resp, err := c.Do(ctx, method, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// Do performs a request and returns the full response envelope. Non-2xx
// responses are returned as *APIError; transport failures are returned
// unchanged
func (c *Client) Do(ctx context.Context, method string, req Request) (*Response, error) {
	cfg, auth := c.snapshot()

	var body io.Reader
	if methodHasBody(method) && req.Data != nil {
		data, err := json.Marshal(req.Data)
		if err != nil {
			return nil, fmt.Errorf("engine: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	header, err := c.buildHeaders(cfg, auth, req.Options)
	if err != nil {
		return nil, err
	}
	if body != nil {
		header.Set("Content-Type", "application/json")
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	target := cfg.APIURL + "/" + strings.TrimLeft(EncodeQuery(req.URL, req.Query), "/")
	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("engine: create request: %w", err)
	}
	httpReq.Header = header

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("engine request failed",
			"method", method, "url", target,
			"correlation_id", header.Get(HeaderCorrelationID),
			"error", err)
		return nil, err
	}
	defer httpResp.Body.Close()

	success := httpResp.StatusCode >= 200 && httpResp.StatusCode < 300
	var bodyReader io.Reader = httpResp.Body
	if !success {
		bodyReader = io.LimitReader(httpResp.Body, maxErrorBodyBytes)
	}
	respBody, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, fmt.Errorf("engine: read response: %w", err)
	}

	finalURL := target
	if httpResp.Request != nil && httpResp.Request.URL != nil {
		finalURL = httpResp.Request.URL.String()
	}
	c.logger.Debug("engine request",
		"method", method, "url", finalURL,
		"status", httpResp.StatusCode,
		"correlation_id", header.Get(HeaderCorrelationID),
		"duration", time.Since(start))

	if !success {
		return nil, newAPIError(httpResp.StatusCode, respBody, map[string]any{
			"url":           finalURL,
			"method":        method,
			"correlationId": header.Get(HeaderCorrelationID),
		})
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       respBody,
		URL:        finalURL,
	}, nil
}

// buildHeaders assembles request headers; later entries override earlier ones
func (c *Client) buildHeaders(cfg Config, auth AuthorizationProvider, opts *RequestOptions) (http.Header, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	h := make(http.Header)
	for name, value := range opts.Headers {
		if v, ok := indirect(value); ok {
			h.Set(name, formatValue(v))
		}
	}

	h.Set("Accept", "application/json")
	if cfg.Locale != "" {
		h.Set(HeaderAcceptLanguage, cfg.Locale)
	}
	h.Set(HeaderAgentName, cfg.ApplicationName)
	h.Set(HeaderServerID, cfg.ServerID)

	correlationID := opts.CorrelationID
	if correlationID == "" {
		correlationID = c.correlationID()
	}
	h.Set(HeaderCorrelationID, correlationID)

	if auth != nil {
		value, err := auth.AuthorizationHeader()
		if err != nil {
			return nil, fmt.Errorf("engine: authorization: %w", err)
		}
		h.Set(HeaderAuthorization, value)
	}
	if opts.CharacterID != "" {
		h.Set(HeaderCharacterID, opts.CharacterID)
	}
	if opts.ExecutorUser != "" {
		h.Set(HeaderExecutorUser, opts.ExecutorUser)
	}
	return h, nil
}

// errorBody is the error shape the Engine returns
type errorBody struct {
	Key     string            `json:"key"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params"`
}

// maxErrorSnippet bounds the raw body kept for unrecognised error responses
const maxErrorSnippet = 512

func newAPIError(status int, body []byte, details map[string]any) *APIError {
	var parsed errorBody
	jsonErr := json.Unmarshal(body, &parsed)

	if jsonErr == nil && parsed.Key != "" {
		return &APIError{
			Key:        parsed.Key,
			Message:    parsed.Message,
			Params:     parsed.Params,
			StatusCode: status,
			Details:    details,
		}
	}

	snippet := strings.TrimSpace(string(body))
	if len(snippet) > maxErrorSnippet {
		snippet = snippet[:maxErrorSnippet]
	}
	message := parsed.Message
	if message == "" && jsonErr != nil {
		message = snippet
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if snippet != "" {
		details["body"] = snippet
	}
	return &APIError{
		Key:        ErrKeyUnknown,
		Message:    message,
		Params:     parsed.Params,
		StatusCode: status,
		Details:    details,
	}
}
