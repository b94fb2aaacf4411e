package pdbe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fakhrymubarak/pdbe-client/internal/config"
	"github.com/fakhrymubarak/pdbe-client/internal/metrics"
)

// Cache stores raw API response bodies.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Client talks to the PDBe REST API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	cache          Cache
	limiter        *rate.Limiter
	metrics        *metrics.Metrics
	logger         *zap.SugaredLogger
	maxConcurrency int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root. A trailing slash is added when missing.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		c.baseURL = u
	}
}

// WithHTTPClient replaces the default HTTP client. nil keeps the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCache stores successful response bodies in cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithRateLimiter paces outgoing requests. A nil limiter disables pacing.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithMetrics records upstream calls and cache lookups on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithLogger sets the client logger. nil keeps the config logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxConcurrency bounds the parallel requests of batch calls.
func WithMaxConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxConcurrency = n
		}
	}
}

// NewClient creates a client with settings from config, overridden by opts.
func NewClient(opts ...Option) *Client {
	r, burst := config.GetPDBeRateLimit()
	c := &Client{
		baseURL:        config.GetPDBeBaseURL(),
		httpClient:     &http.Client{Timeout: config.GetPDBeTimeout()},
		limiter:        rate.NewLimiter(rate.Limit(r), burst),
		logger:         config.GetLogger(),
		maxConcurrency: config.GetPDBeMaxConcurrency(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	endpoint    string
	method      string
	path        string
	query       url.Values
	body        string
	contentType string
}

func (r request) url(base string) string {
	u := base + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

func (r request) cacheKey(base string) string {
	key := "pdbe:" + r.method + ":" + r.url(base)
	if r.body != "" {
		sum := sha256.Sum256([]byte(r.body))
		key += "#" + hex.EncodeToString(sum[:8])
	}
	return key
}

// do performs req and decodes the JSON body into out. Any status other than
// 200 is logged and returned as *StatusError.
func (c *Client) do(ctx context.Context, req request, out any) error {
	target := req.url(c.baseURL)
	key := req.cacheKey(c.baseURL)

	if c.cache != nil {
		if b, err := c.cache.Get(ctx, key); err == nil {
			if err := json.Unmarshal(b, out); err == nil {
				c.metrics.ObserveCache(req.endpoint, true)
				return nil
			}
		}
		c.metrics.ObserveCache(req.endpoint, false)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var body io.Reader
	if req.body != "" {
		body = strings.NewReader(req.body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	c.logger.Debugw("PDBe request", "method", req.method, "url", target)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveUpstream(req.endpoint, 0)
		return fmt.Errorf("%w: %v", ErrExternalAPI, err)
	}
	defer resp.Body.Close()
	c.metrics.ObserveUpstream(req.endpoint, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrExternalAPI, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warnw("No data retrieved", "status", resp.StatusCode, "url", target, "body", string(raw))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw), URL: target}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", req.endpoint, err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, raw); err != nil {
			c.logger.Debugw("Cache write failed", "key", key, "error", err)
		}
	}
	return nil
}
