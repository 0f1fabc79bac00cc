// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP plumbing shared by listing sources.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay is the first backoff interval; it doubles on every
// attempt. Tests override it to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After so one source cannot
// stall a request for minutes.
var MaxRetryAfter = 30 * time.Second

const defaultMaxRetries = 3

// Retrier executes requests and retries responses that ask the client to
// come back later (HTTP 429 and 503).
type Retrier struct {
	Client     *http.Client
	MaxRetries int
	Logger     *zap.Logger
}

// Do sends req, retrying on 429 and 503. The wait honours a Retry-After
// header given in seconds and otherwise backs off exponentially from
// RetryBaseDelay. When MaxRetries is 0 the default (3) is used. If ctx is
// cancelled during a wait Do returns ctx.Err(). After exhausting retries
// the last response is returned for the caller to inspect.
func (r *Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := retryDelay(resp, attempt)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Debug("retrying request",
			zap.String("host", req.URL.Host),
			zap.Int("status", resp.StatusCode),
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// DoWithRetry is Do on a Retrier without logging.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	r := Retrier{Client: client, MaxRetries: maxRetries}
	return r.Do(ctx, req)
}

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable
}

func retryDelay(resp *http.Response, attempt int) time.Duration {
	if v := strings.TrimSpace(resp.Header.Get("Retry-After")); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			d := time.Duration(secs) * time.Second
			if d > MaxRetryAfter {
				d = MaxRetryAfter
			}
			return d
		}
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}
