// Package braiins is a typed client for the Braiins Pool (ex Slush
// Pool) REST API. It exposes the four read-only account/stats
// endpoints and maps their loosely-typed JSON into strongly-typed
// domain values; see PoolStats, UserProfile, DailyRewards and Workers.
package braiins

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the pool's production API origin.
	DefaultBaseURL = "https://pool.braiins.com"

	// DefaultAuthHeader carries the API key on every request.
	DefaultAuthHeader = "Pool-Auth-Token"

	// DefaultTimeout bounds every call unless overridden.
	DefaultTimeout = 60 * time.Second

	torCheckURL = "https://check.torproject.org/api/ip"
)

const (
	pathPoolStats    = "/stats/json/btc"
	pathUserProfile  = "/accounts/profile/json/btc"
	pathDailyRewards = "/accounts/rewards/json/btc"
	pathWorkers      = "/accounts/workers/json/btc"
)

// Client talks to the Braiins Pool REST API. The zero value is not
// usable; construct with New. A Client is safe for concurrent use: its
// only shared state is the underlying connection pool.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authHeader string
	apiKey     string
}

type options struct {
	timeout    time.Duration
	baseURL    string
	authHeader string
	proxyAddr  string
	httpClient *http.Client
}

// Option configures optional client behavior at construction time.
type Option func(*options)

// WithTimeout overrides the default 60 second request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithBaseURL points the client at a different origin (staging, tests).
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithAuthHeader overrides the auth header name. Older deployments
// still expect "SlushPool-Auth-Token".
func WithAuthHeader(name string) Option {
	return func(o *options) { o.authHeader = name }
}

// WithSOCKS5Proxy routes all outbound requests through a SOCKS5 proxy
// given as "host:port", typically a local Tor daemon.
func WithSOCKS5Proxy(addr string) Option {
	return func(o *options) { o.proxyAddr = addr }
}

// WithHTTPClient replaces the underlying HTTP client entirely. The
// timeout and proxy options are ignored when this is set; the caller
// owns transport configuration.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) { o.httpClient = httpClient }
}

// New builds a Client for the given API key.
//
// The key is required and must be a valid header value; it is attached
// to every request and treated as sensitive. It never appears in logs
// or error messages.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &ConfigError{Reason: "API key must not be empty"}
	}
	if !validHeaderValue(apiKey) {
		return nil, &ConfigError{Reason: "API key contains characters not allowed in a header value"}
	}

	o := options{
		timeout:    DefaultTimeout,
		baseURL:    DefaultBaseURL,
		authHeader: DefaultAuthHeader,
	}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(o.baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ConfigError{Reason: "invalid base URL: " + o.baseURL}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
		if o.proxyAddr != "" {
			if _, _, err := net.SplitHostPort(o.proxyAddr); err != nil {
				return nil, &ConfigError{Reason: "invalid proxy address: " + o.proxyAddr}
			}
			tr, err := newSOCKS5Transport(o.proxyAddr)
			if err != nil {
				return nil, &ConfigError{Reason: "invalid proxy address: " + o.proxyAddr}
			}
			httpClient.Transport = tr
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    u.String(),
		authHeader: o.authHeader,
		apiKey:     apiKey,
	}, nil
}

// validHeaderValue reports whether s can be sent as an HTTP header
// value: visible ASCII plus space and tab, per RFC 9110 field-value.
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 0x20 && c != '\t') || c == 0x7f {
			return false
		}
	}
	return true
}

// PoolStats fetches the pool-wide statistics snapshot.
func (c *Client) PoolStats(ctx context.Context) (*PoolStats, error) {
	body, err := c.get(ctx, c.baseURL+pathPoolStats, true)
	if err != nil {
		return nil, err
	}
	return decodePoolStats(body)
}

// UserProfile fetches the account snapshot for the key's account.
func (c *Client) UserProfile(ctx context.Context) (*UserProfile, error) {
	body, err := c.get(ctx, c.baseURL+pathUserProfile, true)
	if err != nil {
		return nil, err
	}
	return decodeUserProfile(body)
}

// DailyRewards fetches the per-day reward breakdown, in server order.
func (c *Client) DailyRewards(ctx context.Context) (DailyRewards, error) {
	body, err := c.get(ctx, c.baseURL+pathDailyRewards, true)
	if err != nil {
		return nil, err
	}
	return decodeDailyRewards(body)
}

// Workers fetches the per-worker snapshots, keyed by worker id.
func (c *Client) Workers(ctx context.Context) (Workers, error) {
	body, err := c.get(ctx, c.baseURL+pathWorkers, true)
	if err != nil {
		return nil, err
	}
	return decodeWorkers(body)
}

// CheckTorConnection reports whether outbound traffic currently exits
// through Tor, using the Tor Project's check endpoint. The request is
// sent unauthenticated so the API key never leaves the pool's origin.
func (c *Client) CheckTorConnection(ctx context.Context) (bool, error) {
	body, err := c.get(ctx, torCheckURL, false)
	if err != nil {
		return false, err
	}
	return decodeTorCheck(body)
}
