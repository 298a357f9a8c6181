package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/mekko/pkg/buildinfo"
	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/observability"
)

const (
	httpTimeout = 30 * time.Second

	// MaxBodySize caps a fetched dataset at 32 MiB.
	MaxBodySize = 32 << 20

	namespace = "dataset"
)

// Client fetches and caches remote datasets.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	retry   cache.RetryPolicy
	ttl     time.Duration
	headers map[string]string
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithKeyer sets the keyer used for response keys.
func WithKeyer(k cache.Keyer) Option {
	return func(c *Client) { c.keyer = k }
}

// WithRetry sets the retry policy.
func WithRetry(p cache.RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithTTL sets how long responses stay cached.
func WithTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// NewClient returns a client that caches into store (nil disables caching)
// and sends headers on every request.
func NewClient(store cache.Cache, headers map[string]string, opts ...Option) *Client {
	if store == nil {
		store = cache.NewNullCache()
	}
	c := &Client{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   store,
		keyer:   cache.NewDefaultKeyer(),
		retry:   cache.DefaultRetryPolicy,
		ttl:     cache.TTLHTTP,
		headers: headers,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the body at url, from cache unless refresh is set.
func (c *Client) Fetch(ctx context.Context, url string, refresh bool) ([]byte, error) {
	key := c.keyer.HTTPKey(namespace, url)
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			return data, nil
		}
	}

	var body []byte
	err := c.retry.Do(ctx, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	if len(data) > MaxBodySize {
		return nil, fmt.Errorf("dataset at %s exceeds %d bytes", url, MaxBodySize)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
