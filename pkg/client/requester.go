package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// requester is the request-execution routine shared by Client and
// InsightsClient. The two clients differ only in how they build the path,
// which auth header carries the key, and which formats they accept.
type requester struct {
	httpClient *http.Client
	handler    ErrorHandler
	authHeader string
	key        string
	defaultURL string

	mu      sync.RWMutex
	baseURL string
	format  Format
	parser  ResponseParser

	filters filterSet
}

func newRequester(authHeader, key, defaultURL string, opts []Option) *requester {
	r := &requester{
		httpClient: http.DefaultClient,
		handler:    StatusErrorHandler{},
		authHeader: authHeader,
		key:        key,
		defaultURL: defaultURL,
		format:     FormatJSON,
		parser:     JSONParser{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *requester) apiURL() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.baseURL != "" {
		return r.baseURL
	}
	return r.defaultURL
}

func (r *requester) setAPIURL(u string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baseURL = strings.TrimSuffix(u, "/")
}

func (r *requester) currentFormat() (Format, ResponseParser) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.format, r.parser
}

func (r *requester) setFormat(f Format, p ResponseParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.format = f
	r.parser = p
}

// buildURL appends the encoded filters to base+path. An empty filter set
// adds no query string at all.
func (r *requester) buildURL(path string) string {
	u := r.apiURL() + path
	if q := r.filters.encode(); q != "" {
		u += "?" + q
	}
	return u
}

// do performs one HTTP round trip and runs the error handler over the
// completed response. There is exactly one attempt per call.
func (r *requester) do(ctx context.Context, method, path string, headers http.Header) (*Response, error) {
	start := time.Now()
	if method == "" {
		method = http.MethodGet
	}
	format, _ := r.currentFormat()
	fullURL := r.buildURL(path)

	if _, err := url.Parse(fullURL); err != nil {
		return nil, &ConfigurationError{Setting: "base URL", Value: r.apiURL(), Reason: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrInvalidArgument, err)
	}

	// Caller headers first so the key header always wins on collision.
	for k, vals := range headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", format.mediaType())
	}
	req.Header.Set(r.authHeader, r.key)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &TransportError{Method: method, URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Err: fmt.Errorf("reading body: %w", err)}
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
		URL:        fullURL,
	}

	if err := r.handler.Handle(out); err != nil {
		slog.Debug("HTTP request returned error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, err
	}

	slog.Debug("HTTP request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return out, nil
}

// Option is a functional option shared by Client and InsightsClient.
type Option func(*requester)

// WithBaseURL overrides the default base URL.
func WithBaseURL(baseURL string) Option {
	return func(r *requester) {
		r.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client. Timeouts are whatever that
// client's configuration provides.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(r *requester) {
		if httpClient != nil {
			r.httpClient = httpClient
		}
	}
}

// WithErrorHandler replaces the default StatusErrorHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *requester) {
		if h != nil {
			r.handler = h
		}
	}
}
