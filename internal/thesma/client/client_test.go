package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesma/thesma-mcp/internal/thesma/common"
)

func testLogger() *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:   "error",
		Outputs: []string{"console"},
		Format:  "json",
	})
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New(common.APIConfig{Key: "test-key", BaseURL: baseURL}, testLogger())
	require.NoError(t, err)
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := New(common.APIConfig{Key: "  "}, testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "THESMA_API_KEY not set")
}

func TestNew_DefaultBaseURL(t *testing.T) {
	c, err := New(common.APIConfig{Key: "test-key"}, testLogger())
	require.NoError(t, err)
	assert.Equal(t, common.DefaultBaseURL, c.BaseURL())
}

func TestGet_SendsAuthAndUserAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Thesma-MCP/")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	body, err := c.Get(context.Background(), "/v1/us/sec/companies", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

func TestGet_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"status":404,"code":"not_found","message":"Company not found"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Get(context.Background(), "/v1/us/sec/companies/0000000000", nil)
	require.Error(t, err)

	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Company not found")
}

func TestGet_AuthError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"status":401,"code":"invalid_key","message":"Invalid API key"}}`))
		}))

		c := newTestClient(t, server.URL)
		_, err := c.Get(context.Background(), "/v1/us/sec/companies", nil)
		server.Close()
		require.Error(t, err)

		assert.True(t, IsAuth(err), "status %d should map to an auth error", status)
		assert.Contains(t, err.Error(), "Get a new key at https://portal.thesma.dev")
	}
}

func TestGet_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"status":429,"code":"rate_limited","message":"Too many requests"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Get(context.Background(), "/v1/us/sec/screener", nil)
	require.Error(t, err)

	assert.True(t, IsRateLimit(err))
	assert.Contains(t, err.Error(), "Try again in 30 seconds")
	assert.Contains(t, err.Error(), "portal.thesma.dev/billing")
}

func TestGet_RateLimitDefaultRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Get(context.Background(), "/v1/us/sec/screener", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Try again in 60 seconds")
}

func TestGet_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Get(context.Background(), "/v1/us/sec/companies", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Thesma API is temporarily unavailable")
}

func TestGet_NoRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)
	_, err := c.Get(context.Background(), "/v1/us/sec/companies", nil)
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "failed requests must not be retried")
}

func TestGet_Unreachable(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	_, err := c.Get(context.Background(), "/v1/us/sec/companies", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot reach Thesma API")
	assert.Contains(t, err.Error(), "Check your network connection")
}

func TestGet_ContextCancelledMapsToTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(t, server.URL)
	_, err := c.Get(ctx, "/v1/us/sec/companies", nil)
	require.Error(t, err)
}

func TestAPIErrorMessages(t *testing.T) {
	timeout := &APIError{Kind: KindTimeout, Endpoint: "/v1/us/sec/companies"}
	assert.Contains(t, timeout.Error(), "did not respond within 30s")
	assert.True(t, IsTimeout(timeout))

	notFound := NotFoundError("No company found for ticker 'ZZZZ'.")
	assert.True(t, IsNotFound(notFound))
	assert.Equal(t, "No company found for ticker 'ZZZZ'.", notFound.Error())

	validation := ValidationError("Quarter (1-4) is required when period is 'quarterly'.")
	assert.Equal(t, KindValidation, validation.Kind)
}
