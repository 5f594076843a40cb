package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"silant-servicebook-web/config"
	"silant-servicebook-web/internal/session"
)

// Client talks to the remote service-book API. A Client is safe for concurrent use;
// per-user clients are derived with WithCredentials.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers map[string]string
	creds   session.Credentials
	log     logrus.FieldLogger
	metrics *Metrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for upstream failures.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics instruments the transport with upstream request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the API rooted at cfg.BaseURL.
// Requests have no client-side timeout; cancellation comes from the request context.
func New(cfg config.APIConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", cfg.BaseURL)
	}

	c := &Client{
		base:    base,
		headers: cfg.Headers,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Transport: newTransport(cfg.HTTPProxy, c.log)}
	}
	if c.metrics != nil {
		transport := c.http.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		instrumented := *c.http
		instrumented.Transport = c.metrics.InstrumentRoundTripper(transport)
		c.http = &instrumented
	}
	return c, nil
}

func newTransport(proxy string, log logrus.FieldLogger) http.RoundTripper {
	if proxy == "" {
		return http.DefaultTransport
	}
	proxyURL, err := url.Parse(proxy)
	if err != nil {
		log.Warnf("invalid proxy URL %q: %v; api client will not use a proxy", proxy, err)
		return http.DefaultTransport
	}
	return &http.Transport{Proxy: http.ProxyURL(proxyURL)}
}

// WithCredentials returns a copy of c that authenticates as creds.
func (c *Client) WithCredentials(creds session.Credentials) *Client {
	bound := *c
	bound.creds = creds
	return &bound
}

// Credentials returns the snapshot the client is bound to.
func (c *Client) Credentials() session.Credentials {
	return c.creds
}

// resolve turns an endpoint path relative to the API root into an absolute URL.
func (c *Client) resolve(endpoint string, query url.Values) *url.URL {
	u := c.base.ResolveReference(&url.URL{Path: endpoint})
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u
}

// sameOrigin reports whether u points at the configured API host.
func (c *Client) sameOrigin(u *url.URL) bool {
	return u.Scheme == c.base.Scheme && u.Host == c.base.Host
}

type request struct {
	method string
	url    *url.URL
	body   any
	anon   bool
}

// do sends req and decodes a 2xx JSON body into out. Non-2xx responses become typed errors.
func (c *Client) do(ctx context.Context, req request, out any) error {
	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, req.url.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		httpReq.Header.Set(key, value)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if !req.anon && c.creds.Token != "" {
		httpReq.Header.Set("Authorization", "Token "+c.creds.Token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.WithFields(logrus.Fields{"method": req.method, "endpoint": req.url.Path}).WithError(err).Warn("api request failed")
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WithFields(logrus.Fields{
			"method":   req.method,
			"endpoint": req.url.Path,
			"status":   resp.StatusCode,
		}).Warn("api returned an error status")
		return classify(req.method, req.url.Path, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal api response from %s: %w", req.url.Path, err)
	}
	return nil
}
