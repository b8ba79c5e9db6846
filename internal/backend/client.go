// Package backend is the JSON-over-HTTP transport to the storefront backend API.
package backend

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
	"time"

	"github.com/fekuna/omnipos-storefront/internal/auth"
	"github.com/fekuna/omnipos-storefront/internal/logger"
	"github.com/fekuna/omnipos-storefront/internal/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int
}

type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	headers    map[string]string
	tokens     auth.TokenSource
	limiter    *rate.Limiter
	metrics    *metrics.Metrics
	logger     logger.ZapLogger
}

// Request describes one backend call. Endpoint is a low-cardinality name used
// for metrics and logs; Path may carry ids.
type Request struct {
	Endpoint   string
	Method     string
	Path       string
	Query      url.Values
	Headers    map[string]string
	Body       any
	Privileged bool
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend responded with status %d: %s", e.StatusCode, e.Body)
}

func NewClient(cfg Config, tokens auth.TokenSource, m *metrics.Metrics, log logger.ZapLogger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "omnipos-storefront/1.0",
		},
		tokens:  tokens,
		metrics: m,
		logger:  log,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// Do executes req and decodes a JSON response body into out (when non-nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Method + " " + req.Path
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := c.httpClient.Do(httpReq)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, 0, elapsed)
		c.logger.Warn("backend request failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", httpReq.Header.Get("X-Request-ID")),
			zap.Error(err),
		)
		return fmt.Errorf("failed to call %s: %w", endpoint, err)
	}
	defer func() {
		if closeErr := res.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	c.metrics.ObserveRequest(endpoint, res.StatusCode, elapsed)
	c.logger.Debug("backend request",
		zap.String("endpoint", endpoint),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return &StatusError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.resolve(req.Path, req.Query)

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	if req.Privileged {
		if c.tokens == nil {
			return nil, auth.ErrNoCredential
		}
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	return httpReq, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) Get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Endpoint: endpoint, Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, endpoint, path string, body, out any) error {
	return c.Do(ctx, Request{Endpoint: endpoint, Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, endpoint, path string, body, out any) error {
	return c.Do(ctx, Request{Endpoint: endpoint, Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, endpoint, path string) error {
	return c.Do(ctx, Request{Endpoint: endpoint, Method: http.MethodDelete, Path: path}, nil)
}

// Segment escapes one path segment, e.g. a user-supplied category id.
func Segment(v any) string {
	return url.PathEscape(fmt.Sprint(v))
}
