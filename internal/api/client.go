package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lingocli/lingo/internal/metrics"
	"github.com/lingocli/lingo/internal/tracing"
	"github.com/lingocli/lingo/internal/transport"
)

// ConnectionInfo carries the credentials for one request. Values are used
// for the single call and never persisted.
type ConnectionInfo struct {
	Username string
	Password string
}

// Outcome is the decoded result of a successful request. Charset is the
// server-declared character set; Body is always UTF-8 text regardless of
// it (see DetermineCharset).
type Outcome struct {
	Body    string
	Charset string
}

// Client executes authenticated API requests through the per-scheme
// transport manager. Construct one at startup and share it across
// commands; it holds no per-request state.
type Client struct {
	transports *transport.Manager
	logger     *log.Logger
	collector  *metrics.Collector
	tracer     *tracing.Provider
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithCollector records per-request latency and error counts.
func WithCollector(collector *metrics.Collector) Option {
	return func(c *Client) {
		c.collector = collector
	}
}

// WithTracer wraps each request in a client span.
func WithTracer(provider *tracing.Provider) Option {
	return func(c *Client) {
		c.tracer = provider
	}
}

// WithUserAgent overrides the client identifier sent on every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// NewClient builds a Client over transports.
func NewClient(transports *transport.Manager, opts ...Option) *Client {
	c := &Client{
		transports: transports,
		logger:     log.Default(),
		userAgent:  "lingo/dev",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes one blocking request and classifies the outcome. The host
// selects the pooled client by scheme prefix; path is appended verbatim.
// fields become the form body for POST-style methods and query parameters
// otherwise. The response body is read fully and closed on every path, so
// the connection always returns to the pool.
//
// Status handling: 404 yields *NotFoundError with the raw body, any other
// status outside 200-399 yields *RequestFailedError, and TLS failures are
// logged and returned as *TLSError. There are no retries.
func (c *Client) Do(ctx context.Context, method, host, path string, info ConnectionInfo, fields url.Values) (Outcome, error) {
	client, err := c.transports.Acquire(host)
	if err != nil {
		return Outcome{}, err
	}

	req, err := c.newRequest(ctx, method, host, path, info, fields)
	if err != nil {
		return Outcome{}, err
	}

	ctx, span := tracing.StartRequestSpan(ctx, c.tracer.Tracer(), method, host+path)
	if c.tracer.ShouldPropagate() {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		if isTLSError(err) {
			err = &TLSError{Err: err}
			c.logger.Error("invalid SSL certificate", "host", host, "error", err)
		} else {
			err = fmt.Errorf("%s %s%s: %w", method, host, path, err)
		}
		c.record(latency, err)
		tracing.EndSpan(span, err)
		return Outcome{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read response from %s%s: %w", host, path, err)
		c.record(latency, err)
		tracing.EndSpan(span, err)
		return Outcome{}, err
	}

	// Body bytes become UTF-8 text no matter what charset the server
	// declared; the charset is reported alongside (see DetermineCharset).
	outcome := Outcome{
		Body:    string(raw),
		Charset: DetermineCharset(resp),
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		err = &NotFoundError{Body: outcome.Body}
	case resp.StatusCode < 200 || resp.StatusCode >= 400:
		err = &RequestFailedError{StatusCode: resp.StatusCode, Body: outcome.Body}
	}
	c.record(latency, err)
	tracing.EndSpan(span, err, attribute.Int("http.response.status_code", resp.StatusCode))
	if err != nil {
		return Outcome{}, err
	}

	c.logger.Debug("request completed",
		"method", method,
		"url", host+path,
		"status", resp.StatusCode,
		"charset", outcome.Charset,
		"latency", latency.Round(time.Millisecond),
	)
	return outcome, nil
}

func (c *Client) record(latency time.Duration, err error) {
	if c.collector != nil {
		c.collector.RecordRequest(latency, err)
	}
}

// newRequest assembles the authenticated request. Keep-alive reuse and
// gzip negotiation come from the pooled transport, not from headers set
// here.
func (c *Client) newRequest(ctx context.Context, method, host, path string, info ConnectionInfo, fields url.Values) (*http.Request, error) {
	target := host + path
	var body io.Reader
	if len(fields) > 0 {
		if methodHasBody(method) {
			body = strings.NewReader(fields.Encode())
		} else {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + fields.Encode()
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", target, err)
	}
	req.SetBasicAuth(info.Username, info.Password)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}
