package wazirx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/muhammadchandra19/hodlinfo/pkg/errors"
	"github.com/muhammadchandra19/hodlinfo/pkg/logger"
)

const (
	// DefaultBaseURL is the public WazirX API host.
	DefaultBaseURL = "https://api.wazirx.com"
	// DefaultTickersPath lists every market ticker keyed by symbol.
	DefaultTickersPath = "/api/v2/tickers"

	maxErrorBody = 512
)

// APIError is returned for non-2xx upstream responses.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Client fetches tickers from the WazirX REST API.
type Client struct {
	baseURL     string
	tickersPath string
	userAgent   string
	httpClient  *http.Client
	logger      logger.Interface
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new upstream client.
func NewClient(baseURL string, logger logger.Interface, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		tickersPath: DefaultTickersPath,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTickersPath overrides DefaultTickersPath.
func WithTickersPath(path string) ClientOption {
	return func(c *Client) {
		c.tickersPath = path
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// FetchTickers performs a single GET of the tickers endpoint and returns its
// values in document order. Keys are kept only as Ticker.Symbol.
func (c *Client) FetchTickers(ctx context.Context) ([]*Ticker, error) {
	url := c.baseURL + c.tickersPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchError(fmt.Errorf("create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fetchError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fetchError(&APIError{StatusCode: resp.StatusCode, Body: body})
	}

	tickers, err := decodeTickers(resp.Body)
	if err != nil {
		return nil, fetchError(err)
	}

	c.logger.InfoContext(ctx, "Fetched tickers from upstream",
		logger.NewField("url", url),
		logger.NewField("count", len(tickers)),
		logger.NewField("duration", time.Since(start).String()),
	)

	return tickers, nil
}

// decodeTickers streams a JSON object of tickers so member order survives.
func decodeTickers(r io.Reader) ([]*Ticker, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("unexpected response: want a JSON object keyed by symbol, got %v", tok)
	}

	tickers := make([]*Ticker, 0, 64)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		symbol, _ := tok.(string)

		t := &Ticker{}
		if err := dec.Decode(t); err != nil {
			return nil, fmt.Errorf("decode ticker %q: %w", symbol, err)
		}
		t.Symbol = symbol
		tickers = append(tickers, t)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return tickers, nil
}

func fetchError(err error) error {
	return errors.NewErrorDetails(
		"failed to fetch tickers: "+err.Error(),
		string(errors.UpstreamFetchError),
		"upstream",
	).Wrap(err)
}
