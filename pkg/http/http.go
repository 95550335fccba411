// Package http is the outgoing HTTP client used to talk to the product
// catalog.
//
// Usage:
//
//	resp, err := http.Get(baseURL + "/products").
//	    Timeout(5 * time.Second).
//	    WithContext(ctx).
//	    Send()
//	if err != nil || !resp.OK() {
//	    ...
//	}
//
//	var products []models.Product
//	err = resp.JSON(&products)
//
// Each request is a single attempt; callers decide what a failure means.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	gohttp "net/http"
	"time"
)

const userAgent = "revoshop/1.0"

// MaxBodyBytes caps how much of a response body is read.
var MaxBodyBytes int64 = 4 << 20

// ErrBodyTooLarge is returned when a response exceeds MaxBodyBytes.
var ErrBodyTooLarge = errors.New("http: response body too large")

var defaultTransport = &gohttp.Transport{
	Proxy:               gohttp.ProxyFromEnvironment,
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 20,
	IdleConnTimeout:     90 * time.Second,
}

// DefaultClient is the shared client for all outgoing requests.
// Tests can swap DefaultClient.Transport to intercept calls:
//
//	http.DefaultClient.Transport = myMockTransport
//	defer http.ResetTransport()
var DefaultClient = &gohttp.Client{
	Transport: defaultTransport,
}

// ResetTransport restores the production transport on DefaultClient.
func ResetTransport() {
	DefaultClient.Transport = defaultTransport
}

// Request is a fluent GET request builder.
type Request struct {
	url     string
	headers map[string]string
	timeout time.Duration
	ctx     context.Context
}

// Get starts a GET request.
func Get(url string) *Request {
	return &Request{
		url:     url,
		headers: map[string]string{"Accept": "application/json", "User-Agent": userAgent},
		timeout: 30 * time.Second,
		ctx:     context.Background(),
	}
}

// Header adds a single header to the request.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Timeout bounds the whole request including reading the body.
func (r *Request) Timeout(d time.Duration) *Request {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// WithContext sets the parent context.
func (r *Request) WithContext(ctx context.Context) *Request {
	if ctx != nil {
		r.ctx = ctx
	}
	return r
}

// Send executes the request once. A non-2xx status is not an error here;
// check Response.OK.
func (r *Request) Send() (*Response, error) {
	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	req, err := gohttp.NewRequestWithContext(ctx, gohttp.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("http: build request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: GET %s: %w", r.url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}
	if int64(len(raw)) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: GET %s", ErrBodyTooLarge, r.url)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    gohttp.Header
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("http: decode JSON: %w", err)
	}
	return nil
}
