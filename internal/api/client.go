// Package api is the HTTP client for the storefront backend.
package api

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

	"go.uber.org/zap"
)

const maxErrorBody = 512

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		// copy so a shared client such as http.DefaultClient is left alone
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.Named("api")
		}
	}
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. http://localhost:8000/api).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

func jsonBody(v any) (io.Reader, string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(data), "application/json", nil
}

func formBody(values url.Values) (io.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

// do performs one request and returns the raw 2xx body after checking it
// for a business error payload.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string) ([]byte, error) {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("op", op), zap.String("url", endpoint), zap.Error(err))
		return nil, &TransportError{Op: op, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{
			Op:         op,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if serr := businessError(op, data); serr != nil {
		return nil, serr
	}
	return data, nil
}

func decode(op, endpoint string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, URL: endpoint, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// businessError inspects a JSON object for a truthy "error" field. The
// backend answers failures like {"error": "Invalid Email"},
// {"error": "Please re-login", "code": "1"} or {"error": true}.
func businessError(op string, data []byte) *ServerError {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var payload struct {
		Error json.RawMessage `json:"error"`
		Code  json.RawMessage `json:"code"`
	}
	if json.Unmarshal(trimmed, &payload) != nil || len(payload.Error) == 0 {
		return nil
	}

	var msg string
	var flag bool
	switch {
	case json.Unmarshal(payload.Error, &msg) == nil:
		if msg == "" {
			return nil
		}
	case json.Unmarshal(payload.Error, &flag) == nil:
		if !flag {
			return nil
		}
		msg = "request failed"
	default:
		msg = string(payload.Error)
	}

	serr := &ServerError{Op: op, Message: msg}
	if len(payload.Code) > 0 {
		var code string
		if json.Unmarshal(payload.Code, &code) != nil {
			code = string(payload.Code)
		}
		serr.Code = code
	}
	return serr
}

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var terr *TransportError
	return errors.As(err, &terr)
}

// IsServer reports whether err is (or wraps) a ServerError.
func IsServer(err error) bool {
	var serr *ServerError
	return errors.As(err, &serr)
}
