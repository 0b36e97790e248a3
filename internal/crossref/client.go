// Package crossref resolves free-text citation strings to DOIs via the
// CrossRef search API.
package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the CrossRef DOI search endpoint.
	BaseURL = "https://search.crossref.org/dois"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit keeps us inside CrossRef's polite-pool expectations.
	RateLimit = 5.0
)

// Result is one ranked search result. Score is nil when the service did not
// provide one.
type Result struct {
	DOI   string   `json:"doi"`
	Score *float64 `json:"score"`
	Year  Year     `json:"year"`
	Title string   `json:"title"`
}

// Year tolerates both string and numeric JSON encodings; the API is not
// consistent about which it sends.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*y = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = Year(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*y = Year(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s as year", string(data))
}

func (y Year) String() string {
	return string(y)
}

// Service searches for the best-matching publication for a query text.
// Returns nil (not an error) when there is no match. The HTTP Client
// implements it; tests substitute deterministic stubs.
type Service interface {
	Search(ctx context.Context, query string) (*Result, error)
}

// Client is a rate-limited HTTP client for the CrossRef search API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithMailto sets the contact address sent with requests, which admits the
// client to CrossRef's polite pool.
func WithMailto(mailto string) ClientOption {
	return func(c *Client) {
		c.mailto = mailto
	}
}

// NewClient creates a CrossRef search client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search queries the API for the single best-ranked match. Returns nil when
// there is no match. Connectivity failures wrap ErrNetwork; non-2xx
// responses return an *APIError.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("rows", strconv.Itoa(1))
	if c.mailto != "" {
		params.Set("mailto", c.mailto)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	var results []Result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}
