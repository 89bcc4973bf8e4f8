package resolver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesma/thesma-mcp/internal/thesma/client"
	"github.com/thesma/thesma-mcp/internal/thesma/common"
)

func testLogger() *common.Logger {
	return common.NewLoggerFromConfig(common.LoggingConfig{
		Level:   "error",
		Outputs: []string{"console"},
		Format:  "json",
	})
}

func newTestResolver(t *testing.T, baseURL string) *Resolver {
	t.Helper()
	c, err := client.New(common.APIConfig{Key: "test-key", BaseURL: baseURL}, testLogger())
	require.NoError(t, err)
	return New(c)
}

func companyLookupServer(t *testing.T, known map[string]string, calls *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		ticker := r.URL.Query().Get("ticker")
		w.Header().Set("Content-Type", "application/json")
		cik, ok := known[ticker]
		if !ok {
			json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []interface{}{map[string]interface{}{"cik": cik, "ticker": ticker}},
		})
	}))
}

func TestResolve_CIKPassthrough(t *testing.T) {
	calls := 0
	server := companyLookupServer(t, nil, &calls)
	defer server.Close()

	r := newTestResolver(t, server.URL)
	cik, err := r.Resolve(context.Background(), "0000320193")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
	assert.Equal(t, 0, calls, "CIK input must not trigger a lookup")
}

func TestResolve_CaseInsensitiveCache(t *testing.T) {
	calls := 0
	server := companyLookupServer(t, map[string]string{"AAPL": "0000320193"}, &calls)
	defer server.Close()

	r := newTestResolver(t, server.URL)

	cik, err := r.Resolve(context.Background(), "aapl")
	require.NoError(t, err)
	assert.Equal(t, "0000320193", cik)
	assert.Equal(t, 1, calls)

	// Case variants hit the cache, not the API
	for _, variant := range []string{"AAPL", "Aapl", "aApL", " aapl "} {
		cik, err = r.Resolve(context.Background(), variant)
		require.NoError(t, err)
		assert.Equal(t, "0000320193", cik)
	}
	assert.Equal(t, 1, calls, "cached tickers must not trigger further lookups")
}

func TestResolve_UnknownTicker(t *testing.T) {
	calls := 0
	server := companyLookupServer(t, nil, &calls)
	defer server.Close()

	r := newTestResolver(t, server.URL)

	_, err := r.Resolve(context.Background(), "ZZZZINVALID")
	require.Error(t, err)
	assert.True(t, client.IsNotFound(err))
	assert.Contains(t, err.Error(), "No company found for ticker 'ZZZZINVALID'")
	assert.Contains(t, err.Error(), "search_companies")

	// No negative caching: a second attempt queries the API again
	_, err = r.Resolve(context.Background(), "ZZZZINVALID")
	require.Error(t, err)
	assert.Equal(t, 2, calls, "failed resolutions must not be cached")
}

func TestResolve_APIErrorPassthrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	r := newTestResolver(t, server.URL)
	_, err := r.Resolve(context.Background(), "AAPL")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporarily unavailable")
}

func TestCIKPattern(t *testing.T) {
	assert.True(t, CIKPattern.MatchString("0000320193"))
	assert.False(t, CIKPattern.MatchString("320193"), "unpadded CIKs are treated as tickers")
	assert.False(t, CIKPattern.MatchString("1000320193"), "must start with a zero")
	assert.False(t, CIKPattern.MatchString("AAPL"))
}
