// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/job-matcher/internal/cache"
	"github.com/pdiddy/job-matcher/internal/source"
	"github.com/pdiddy/job-matcher/pkg/types"
)

// CollectOptions configures Collect.
type CollectOptions struct {
	// Timeout bounds each source independently; 0 means no bound beyond ctx.
	Timeout time.Duration
	// Cache is consulted before fetching and filled after; nil disables it.
	Cache  cache.Cache
	Logger *zap.Logger
}

// Collect fetches q from every source concurrently and waits for all of
// them. Batches come back in the order of sources. A source that fails
// or exceeds its timeout yields an empty batch carrying its status and
// error; the others are unaffected.
func Collect(ctx context.Context, sources []source.Source, q source.Query, opts CollectOptions) []types.Batch {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	type indexed struct {
		idx   int
		batch types.Batch
	}

	ch := make(chan indexed, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src source.Source) {
			defer wg.Done()
			ch <- indexed{idx: i, batch: collectOne(ctx, src, q, opts, logger)}
		}(i, src)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	batches := make([]types.Batch, len(sources))
	for r := range ch {
		batches[r.idx] = r.batch
	}
	return batches
}

func collectOne(ctx context.Context, src source.Source, q source.Query, opts CollectOptions, logger *zap.Logger) types.Batch {
	name := src.Name()
	batch := types.Batch{Source: name, Query: q.String()}
	key := cache.Key(name, q.String())

	if opts.Cache != nil {
		listings, ok, err := opts.Cache.Get(ctx, key)
		switch {
		case err != nil:
			logger.Warn("cache read failed, fetching", zap.String("source", name), zap.Error(err))
		case ok:
			batch.Listings = listings
			batch.Status = types.StatusCached
			logger.Debug("cache hit", zap.String("source", name), zap.Int("listings", len(listings)))
			return batch
		}
	}

	fetchCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	type result struct {
		listings []types.Listing
		err      error
	}
	done := make(chan result, 1)
	start := time.Now()
	go func() {
		listings, err := src.Fetch(fetchCtx, q)
		done <- result{listings: listings, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-fetchCtx.Done():
		res.err = fetchCtx.Err()
	}

	if res.err != nil {
		batch.Status, batch.Err = failure(res.err, fetchCtx)
		logger.Warn("source failed",
			zap.String("source", name),
			zap.String("status", batch.Status),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(res.err),
		)
		return batch
	}

	batch.Listings = res.listings
	batch.Status = types.StatusOK
	logger.Debug("source fetched",
		zap.String("source", name),
		zap.Int("listings", len(res.listings)),
		zap.Duration("elapsed", time.Since(start)),
	)

	if opts.Cache != nil {
		if err := opts.Cache.Set(ctx, key, res.listings); err != nil {
			logger.Warn("cache write failed", zap.String("source", name), zap.Error(err))
		}
	}
	return batch
}

// failure maps a fetch error to a batch status and message.
func failure(err error, fetchCtx context.Context) (string, string) {
	var httpErr *source.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return fmt.Sprintf("http %d", httpErr.StatusCode), err.Error()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded):
		return types.StatusTimeout, "timed out"
	default:
		return types.StatusError, err.Error()
	}
}
