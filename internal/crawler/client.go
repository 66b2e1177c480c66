package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/nao1215/adventcal/internal/htmldoc"
)

// Default client settings: one second between requests, no request
// timeout.
const (
	// DefaultDelay is the politeness interval between requests.
	// 1 second is conservative and respectful of server resources.
	DefaultDelay = 1 * time.Second

	// DefaultUserAgent identifies the crawler in HTTP requests.
	// A descriptive User-Agent lets site operators identify crawler
	// traffic in their logs.
	DefaultUserAgent = "adventcal/1.0 (+https://github.com/nao1215/adventcal)"
)

// Client fetches single pages with a politeness delay and counts every
// request it performs.
//
// Design decision: The politeness wait uses a rate.Limiter rather than a
// plain time.Sleep because Limiter.Wait respects context cancellation, so
// an interrupted crawl stops during the wait instead of after it. The
// limiter's initial token is consumed at construction so that the very
// first fetch also honors the interval: the delay is unconditional, not
// just between requests.
type Client struct {
	// http is the underlying HTTP client.
	http *resty.Client

	// limiter enforces the politeness interval. Nil when the delay is
	// zero (tests set a zero delay to avoid slow test runs).
	limiter *rate.Limiter

	// requestCount counts GetPage invocations across the client's
	// lifetime. Atomic so a progress display on another goroutine can
	// read it safely; the crawl itself is single-threaded.
	requestCount atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*clientSettings)

// clientSettings collects option values before the Client is built.
type clientSettings struct {
	delay     time.Duration
	timeout   time.Duration
	userAgent string
	headers   map[string]string
}

// WithDelay sets the politeness interval applied before every fetch.
// A zero delay disables the wait entirely.
func WithDelay(d time.Duration) ClientOption {
	return func(s *clientSettings) {
		s.delay = d
	}
}

// WithTimeout sets a per-request timeout.
// The default is no timeout: a hung request blocks the crawl until the
// context is cancelled.
func WithTimeout(d time.Duration) ClientOption {
	return func(s *clientSettings) {
		s.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(s *clientSettings) {
		s.userAgent = ua
	}
}

// WithHeaders sets extra HTTP headers sent with every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(s *clientSettings) {
		s.headers = headers
	}
}

// NewClient creates a Client with the given options.
func NewClient(opts ...ClientOption) *Client {
	settings := &clientSettings{
		delay:     DefaultDelay,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(settings)
	}

	httpClient := resty.New()
	httpClient.SetHeader("User-Agent", settings.userAgent)
	if len(settings.headers) > 0 {
		httpClient.SetHeaders(settings.headers)
	}
	if settings.timeout > 0 {
		httpClient.SetTimeout(settings.timeout)
	}

	c := &Client{http: httpClient}

	if settings.delay > 0 {
		c.limiter = rate.NewLimiter(rate.Every(settings.delay), 1)
		// Burn the initial token so the first Wait blocks a full
		// interval instead of passing immediately.
		c.limiter.Allow()
	}

	return c
}

// GetPage fetches a single page and parses it into a document.
//
// The request counter is incremented before the politeness wait, so the
// count reads as "requests attempted": an interrupted wait still counts.
// A response status other than 200 OK fails with *HTTPError; the client
// never retries.
func (c *Client) GetPage(ctx context.Context, pageURL string) (*htmldoc.Document, error) {
	c.requestCount.Add(1)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("politeness wait interrupted: %w", err)
		}
	}

	resp, err := c.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &HTTPError{URL: pageURL, StatusCode: resp.StatusCode()}
	}

	// The transport decodes gzip transparently. Brotli is decoded here
	// for servers that send it regardless of Accept-Encoding.
	var body io.Reader = bytes.NewReader(resp.Body())
	if resp.Header().Get("Content-Encoding") == "br" {
		body = brotli.NewReader(body)
	}

	doc, err := htmldoc.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	return doc, nil
}

// RequestCount returns the number of fetches performed by this client.
// It resets only by constructing a new Client.
func (c *Client) RequestCount() int64 {
	return c.requestCount.Load()
}
