// Package pokeapi provides a read-only client for the public PokeAPI.
// Enrichment data from it is best-effort: callers must tolerate failure
// without failing their own request.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/pokevault/pokevault/internal/metrics"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 2 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 2 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 3 * time.Second

	// maxResponseBytes caps how much of an upstream body is read.
	maxResponseBytes = 1 << 20 // 1MB
)

// ErrUpstream indicates the PokeAPI was unreachable or returned an error
// after all retry attempts.
var ErrUpstream = errors.New("pokeapi request failed")

// Page is one page of the PokeAPI pokemon listing.
type Page struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Entry `json:"results"`
}

// Entry is a single pokemon reference in a listing page.
type Entry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Client fetches pokemon listings from the PokeAPI.
type Client struct {
	baseURL string
	http    *http.Client
	metrics metrics.Recorder
}

// New creates a Client for the given base URL (e.g. https://pokeapi.co).
// The timeout bounds each individual attempt.
func New(baseURL string, timeout time.Duration, recorder metrics.Recorder) *Client {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Client{
		baseURL: baseURL,
		metrics: recorder,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   DialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   TLSHandshakeTimeout,
				ResponseHeaderTimeout: ResponseHeaderTimeout,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   4,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// List fetches one page of the pokemon listing with the given page size.
// Network errors and 5xx responses are retried up to MaxAttempts with
// jittered backoff; 4xx responses are not retried. The context bounds
// the whole operation including backoff sleeps.
func (c *Client) List(ctx context.Context, limit int) (*Page, error) {
	url := c.baseURL + "/api/v2/pokemon?limit=" + strconv.Itoa(limit)

	start := time.Now()
	defer func() {
		c.metrics.ObserveUpstreamDuration(time.Since(start))
	}()

	var lastErr error
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				c.metrics.IncUpstreamFailure()
				return nil, fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
			case <-time.After(NextRetryDelay(attempt - 1)):
			}
		}

		page, retryable, err := c.fetch(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	c.metrics.IncUpstreamFailure()
	return nil, fmt.Errorf("%w: %v", ErrUpstream, lastErr)
}

// fetch performs a single attempt. The second return value reports
// whether the failure is worth retrying.
func (c *Client) fetch(ctx context.Context, url string) (*Page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Pokevault/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("status %d", resp.StatusCode)
	}

	var page Page
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&page); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}

	return &page, false, nil
}
