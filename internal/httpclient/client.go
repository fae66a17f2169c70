// Package httpclient implements the fault-tolerant transport shared by all
// source connectors.
//
// One Client carries the whole resilience policy: a realistic browser
// identity (several sources block unidentified traffic), per-host request
// rate limiting, a per-host circuit breaker, and exponential-backoff retries
// for rate-limit and server-side failures. Client errors other than 429 are
// never retried. After the retry budget is exhausted the failure surfaces as
// ErrSourceUnavailable; callers degrade to an empty record instead of
// propagating it.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"fiipulse/internal/config"
	"fiipulse/internal/infrastructure"
)

// ErrSourceUnavailable marks a source that could not produce a usable
// response within the retry budget.
var ErrSourceUnavailable = errors.New("source unavailable")

// StatusError carries the terminal HTTP status of a failed call.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// Client is the retrying HTTP transport. It is safe for concurrent use; the
// backoff loop blocks only the calling goroutine.
type Client struct {
	httpClient *http.Client
	cfg        config.HTTPConfig
	logger     *slog.Logger
	metrics    *infrastructure.Metrics

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	breakers map[string]*gobreaker.CircuitBreaker
}

// New creates a Client with the given policy. A nil logger falls back to
// slog.Default; metrics may be nil.
func New(cfg config.HTTPConfig, logger *slog.Logger, metrics *infrastructure.Metrics) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     infrastructure.WithComponent(logger, "httpclient"),
		metrics:    metrics,
		limiters:   make(map[string]*rate.Limiter),
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Get fetches rawURL with the configured retry policy and returns the
// response body. Extra headers are applied on top of the client identity.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	host, err := hostOf(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source url: %w", err)
	}

	breaker := c.breakerFor(host)
	backoff := c.cfg.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if err := c.limiterFor(host).Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		c.metrics.RecordFetchRequest(ctx, host)
		body, retryable, err := c.doOnce(ctx, breaker, rawURL, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !retryable {
			break
		}
		if attempt == c.cfg.MaxAttempts {
			break
		}

		c.metrics.RecordFetchRetry(ctx, host)
		c.logger.WarnContext(ctx, "transient source fault, backing off",
			slog.String("host", host),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * c.cfg.BackoffMultiplier)
		if backoff > c.cfg.MaxBackoff {
			backoff = c.cfg.MaxBackoff
		}
	}

	c.metrics.RecordFetchFailure(ctx, host)
	return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, lastErr)
}

// doOnce performs a single request through the circuit breaker. The second
// result reports whether the failure is worth retrying.
func (c *Client) doOnce(ctx context.Context, breaker *gobreaker.CircuitBreaker, rawURL string, headers map[string]string) ([]byte, bool, error) {
	result, err := breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", c.cfg.UserAgent)
		req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			// Drain so the connection can be reused.
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			return nil, &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		return body, nil
	})
	if err != nil {
		return nil, isRetryable(err), err
	}
	return result.([]byte), false, nil
}

// isRetryable classifies transient faults: network errors, 429 and 5xx
// retry; anything else fails fast. An open circuit breaker also fails fast,
// the breaker already owns the cool-down.
func isRetryable(err error) bool {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Transport-level failures (refused, reset, timeout) are transient.
	return true
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(c.cfg.RequestsPerSecond), c.cfg.Burst)
		c.limiters[host] = lim
	}
	return lim
}

func (c *Client) breakerFor(host string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	br, ok := c.breakers[host]
	if !ok {
		br = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    host,
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 10
			},
		})
		c.breakers[host] = br
	}
	return br
}

func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}
	return u.Host, nil
}
