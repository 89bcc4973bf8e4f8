// Package resolver maps human-entered ticker symbols to SEC CIKs, caching
// successful resolutions in memory for the life of the process.
package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/thesma/thesma-mcp/internal/thesma/client"
)

// CIKPattern matches a 10-digit zero-padded CIK. Inputs that already look
// like a CIK pass through without a lookup.
var CIKPattern = regexp.MustCompile(`^0\d{9}$`)

// Resolver resolves stock tickers to SEC CIKs via the Thesma API.
//
// The cache holds only successful resolutions: a miss is never stored, so an
// unknown ticker is re-attempted on every call (the remote catalog may gain
// companies during process lifetime). Concurrent misses for the same ticker
// may issue duplicate lookups; resolution is idempotent so the last write
// wins with an identical value.
type Resolver struct {
	client *client.Client

	mu    sync.Mutex
	cache map[string]string
}

// New creates a Resolver backed by the given API client with a fresh cache.
func New(c *client.Client) *Resolver {
	return &Resolver{
		client: c,
		cache:  make(map[string]string),
	}
}

// Resolve resolves a ticker or CIK to a 10-digit zero-padded CIK string.
// Lookup is case-insensitive: the ticker is normalized to uppercase before
// cache access and before the API query.
func (r *Resolver) Resolve(ctx context.Context, tickerOrCIK string) (string, error) {
	if CIKPattern.MatchString(tickerOrCIK) {
		return tickerOrCIK, nil
	}

	key := strings.ToUpper(strings.TrimSpace(tickerOrCIK))

	r.mu.Lock()
	cik, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return cik, nil
	}

	params := url.Values{}
	params.Set("ticker", key)
	body, err := r.client.Get(ctx, "/v1/us/sec/companies", params)
	if err != nil {
		return "", err
	}

	var resp struct {
		Data []struct {
			CIK string `json:"cik"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse company lookup response: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].CIK == "" {
		return "", client.NotFoundError(fmt.Sprintf(
			"No company found for ticker '%s'. Try searching with search_companies.", tickerOrCIK))
	}

	cik = resp.Data[0].CIK
	r.mu.Lock()
	r.cache[key] = cik
	r.mu.Unlock()
	return cik, nil
}
