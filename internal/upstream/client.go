// Roadwatch - Traffic Camera Aggregation and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roadwatch

// Package upstream provides the shared HTTP client used by every provider
// adapter to fetch agency feeds.
//
// The client wraps each call with a circuit breaker (sony/gobreaker) so a
// failing agency does not soak up timeouts on every request, and with a
// politeness rate limiter (golang.org/x/time/rate) bounding how fast any
// single provider hits its upstream host, independent of the raw-feed
// cache.
//
// DETERMINISM NOTE: the circuit breaker uses real time for its interval
// and timeout calculations. Tests should stub the transport or test the
// adapters against httptest servers rather than mocking the breaker.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/roadwatch/internal/config"
	"github.com/tomtom215/roadwatch/internal/logging"
	"github.com/tomtom215/roadwatch/internal/metrics"
)

// userAgent identifies Roadwatch to upstream agencies.
const userAgent = "Roadwatch/1.0 (+https://github.com/tomtom215/roadwatch)"

// maxBodyBytes caps a single feed payload. The largest Caltrans district
// file is a few MB; anything past this is a misbehaving upstream.
const maxBodyBytes = 32 << 20

// HTTPStatusError reports a non-2xx upstream response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("upstream returned HTTP %d for %s", e.StatusCode, e.URL)
}

// Client is a resilient JSON GET client for one provider's upstream host.
type Client struct {
	name       string
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
}

// NewClient creates a client named after its provider. The name labels the
// circuit breaker's log lines and metrics.
//
// Breaker policy: opens at a 60% failure ratio once at least 10 calls have
// been observed in a one-minute window, allows 3 probe requests after a
// two-minute cooldown.
func NewClient(name string, cfg config.UpstreamConfig) *Client {
	cbName := name + "-upstream"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(cbName string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().
				Str("breaker", cbName).
				Str("from", fromStr).
				Str("to", toStr).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(cbName).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(cbName, fromStr, toStr).Inc()
		},
	})

	limit := rate.Limit(cfg.RatePerSecond)
	if cfg.RatePerSecond <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		name:       name,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		cb:         cb,
	}
}

// GetJSON fetches url and decodes the response body into v. Any non-2xx
// status is an *HTTPStatusError. The call respects the context, the
// politeness limiter and the circuit breaker; when the breaker is open the
// call fails immediately without touching the network.
func (c *Client) GetJSON(ctx context.Context, url string, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.get(ctx, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "rejected").Inc()
			logging.Warn().Str("breaker", c.cb.Name()).Err(err).Msg("Upstream request rejected by circuit breaker")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "failure").Inc()
		}
		return err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(c.cb.Name(), "success").Inc()

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// get performs the raw HTTP GET and returns the response body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck // nothing useful to do with a close error here

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", url, err)
	}
	return body, nil
}

// stateToString converts a gobreaker state for logs and metric labels.
func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// stateToFloat converts a gobreaker state for the state gauge.
func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return -1
	}
}
