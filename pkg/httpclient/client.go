// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/stackcheck/pkg/defaults"
)

const (
	// DefaultUserAgent identifies stackcheck in outbound requests.
	DefaultUserAgent = "stackcheck/1.0"

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
)

// Option defines a configuration option for Client.
type Option func(*Client)

// Client issues HTTP requests with tuned transport defaults and an optional
// client side rate limit shared by every caller of the same Client.
type Client struct {
	UserAgent             string
	TotalTimeout          time.Duration
	ConnectTimeout        time.Duration
	TLSHandshakeTimeout   time.Duration
	ResponseHeaderTimeout time.Duration
	InsecureSkipVerify    bool
	MaxBodySize           int64
	HTTP                  *http.Client

	limiter *rate.Limiter
	custom  bool
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.UserAgent = userAgent
	}
}

// WithTotalTimeout sets the overall request timeout.
func WithTotalTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.TotalTimeout = timeout
	}
}

// WithConnectTimeout sets the dial timeout.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.ConnectTimeout = timeout
	}
}

// WithTLSHandshakeTimeout sets the TLS handshake timeout.
func WithTLSHandshakeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.TLSHandshakeTimeout = timeout
	}
}

// WithResponseHeaderTimeout sets the time allowed to wait for response headers.
func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.ResponseHeaderTimeout = timeout
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		c.InsecureSkipVerify = skip
	}
}

// WithMaxBodySize caps the number of body bytes kept from a response.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.MaxBodySize = size
	}
}

// WithRateLimit allows at most rps requests per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithClient uses a caller supplied *http.Client. Transport related options
// are not applied to it.
func WithClient(client *http.Client) Option {
	return func(c *Client) {
		c.HTTP = client
		c.custom = client != nil
	}
}

// New creates a Client with the specified options.
func New(opts ...Option) *Client {
	c := &Client{
		UserAgent:             DefaultUserAgent,
		TotalTimeout:          defaults.HTTPClientTimeout,
		ConnectTimeout:        defaults.HTTPConnectTimeout,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		MaxBodySize:           defaults.MaxResponseBody,
	}

	for _, opt := range opts {
		opt(c)
	}

	if !c.custom {
		c.HTTP = &http.Client{
			Timeout:   c.TotalTimeout,
			Transport: c.newTransport(),
		}
	}
	return c
}

// Insecure returns a copy of c that skips TLS certificate verification.
// The copy shares c's rate limit. A caller supplied *http.Client is reused
// as is.
func (c *Client) Insecure() *Client {
	cp := *c
	cp.InsecureSkipVerify = true
	if !c.custom {
		cp.HTTP = &http.Client{
			Timeout:   c.TotalTimeout,
			Transport: cp.newTransport(),
		}
	}
	return &cp
}

func (c *Client) newTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		DialContext: (&net.Dialer{
			Timeout:   c.ConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
		ResponseHeaderTimeout: c.ResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // opt-in per check
		},
	}
}

// Do sends a request and reads the whole response body. Non-2xx statuses are
// not treated as errors; callers inspect StatusCode.
func (c *Client) Do(ctx context.Context, method, url string, header http.Header, body []byte) (*Response, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.HTTP == nil {
		return nil, fmt.Errorf("http client is nil")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait for %s: %w", url, err)
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	var src io.Reader = resp.Body
	if c.MaxBodySize > 0 {
		src = io.LimitReader(resp.Body, c.MaxBodySize)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Read fetches url with GET and returns the body, failing on any status
// other than 200.
func (c *Client) Read(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// Post sends body to url with the given content type.
func (c *Client) Post(ctx context.Context, url, contentType string, body []byte) (*Response, error) {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return c.Do(ctx, http.MethodPost, url, header, body)
}
