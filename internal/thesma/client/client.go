// Package client wraps outbound HTTP calls to the Thesma REST API: bearer
// auth, a fixed timeout, and translation of HTTP outcomes into typed errors.
// No request is ever retried.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thesma/thesma-mcp/internal/thesma/common"
)

// DefaultTimeout is the fixed per-request ceiling. Exceeding it surfaces
// KindTimeout; there is no retry and no partial-result salvage.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client is an authenticated HTTP client for the Thesma REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// New creates a Client from API configuration. The API key must be present;
// startup fails fast rather than surfacing auth errors on first use.
func New(cfg common.APIConfig, logger *common.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, fmt.Errorf("THESMA_API_KEY not set. Get an API key at https://portal.thesma.dev")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = common.DefaultBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.Key,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}, nil
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an authenticated GET request and returns the raw response
// body. Failures come back as *APIError; callers unmarshal success bodies
// into their endpoint's model.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(params) > 0 {
		requestURL += "?" + params.Encode()
	}

	c.logger.Debug().
		Str("method", "GET").
		Str("path", path).
		Str("query", params.Encode()).
		Msg("Thesma API Request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", common.UserAgent())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Dur("duration", duration).Msg("Thesma API Request Failed")
		return nil, c.translateTransportError(path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &APIError{
			Kind:     KindServer,
			Endpoint: path,
			Message:  fmt.Sprintf("Failed to read response from %s: %v", path, err),
		}
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("Thesma API Response")

	if resp.StatusCode >= 400 {
		return nil, c.translateHTTPError(path, resp, body)
	}

	return body, nil
}

// translateTransportError maps a transport-level failure to a typed error.
// Timeouts (including context deadline) become KindTimeout; other transport
// failures surface as unreachable-API server errors.
func (c *Client) translateTransportError(path string, err error) *APIError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &APIError{Kind: KindTimeout, Endpoint: path}
	}
	return &APIError{
		Kind:     KindServer,
		Endpoint: path,
		Message:  fmt.Sprintf("Cannot reach Thesma API at %s. Check your network connection.", c.baseURL),
	}
}

// translateHTTPError maps an HTTP error status to a typed error, pulling the
// remote message out of the standard error envelope when present.
func (c *Client) translateHTTPError(path string, resp *http.Response, body []byte) *APIError {
	message := "Unknown error"
	var envelope struct {
		Error struct {
			Status  int    `json:"status"`
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	apiErr := &APIError{
		Status:   resp.StatusCode,
		Endpoint: path,
		Message:  message,
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		apiErr.Kind = KindAuth
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimit
		apiErr.RetryAfter = resp.Header.Get("Retry-After")
	default:
		apiErr.Kind = KindServer
	}

	return apiErr
}
