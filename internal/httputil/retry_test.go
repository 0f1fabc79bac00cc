// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	RetryBaseDelay = 1 * time.Millisecond
}

// statusSequence answers with codes in order, repeating the last one.
func statusSequence(calls *int32, codes ...int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(atomic.AddInt32(calls, 1)) - 1
		if n >= len(codes) {
			n = len(codes) - 1
		}
		w.WriteHeader(codes[n])
	}))
}

func TestRetrierDo(t *testing.T) {
	tests := []struct {
		name       string
		codes      []int
		maxRetries int
		wantStatus int
		wantCalls  int32
	}{
		{"immediate success", []int{200}, 3, 200, 1},
		{"429 then success", []int{429, 429, 200}, 3, 200, 3},
		{"503 then success", []int{503, 200}, 3, 200, 2},
		{"exhausts retries", []int{429}, 2, 429, 3},
		{"default max retries", []int{503}, 0, 503, 4},
		{"500 is not retried", []int{500}, 3, 500, 1},
		{"404 is not retried", []int{404}, 3, 404, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := statusSequence(&calls, tt.codes...)
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			r := Retrier{Client: ts.Client(), MaxRetries: tt.maxRetries}
			resp, err := r.Do(context.Background(), req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestRetrierLogsRetries(t *testing.T) {
	var calls int32
	ts := statusSequence(&calls, 429, 200)
	defer ts.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	r := Retrier{Client: ts.Client(), Logger: zap.New(core)}
	resp, err := r.Do(context.Background(), req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := logs.FilterMessage("retrying request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(429), entries[0].ContextMap()["status"])
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	var calls int32
	ts := statusSequence(&calls, 429)
	defer ts.Close()

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryDelay(t *testing.T) {
	old := MaxRetryAfter
	MaxRetryAfter = 10 * time.Second
	defer func() { MaxRetryAfter = old }()

	tests := []struct {
		name       string
		retryAfter string
		attempt    int
		want       time.Duration
	}{
		{"exponential first attempt", "", 0, RetryBaseDelay},
		{"exponential third attempt", "", 2, 4 * RetryBaseDelay},
		{"retry-after seconds", "3", 0, 3 * time.Second},
		{"retry-after capped", "120", 0, 10 * time.Second},
		{"unparseable retry-after falls back", "Wed, 21 Oct 2026 07:28:00 GMT", 1, 2 * RetryBaseDelay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{Header: http.Header{}}
			if tt.retryAfter != "" {
				resp.Header.Set("Retry-After", tt.retryAfter)
			}
			assert.Equal(t, tt.want, retryDelay(resp, tt.attempt))
		})
	}
}
