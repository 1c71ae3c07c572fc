// Package fetch resolves card attributes through the cache and loads roster
// updates from the catalog.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/rosterlab/internal/adapters/repository"
	"github.com/okian/rosterlab/internal/adapters/throttle"
	"github.com/okian/rosterlab/internal/domain/model"
	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// ItemSource returns the raw attribute payload of a card.
type ItemSource interface {
	Item(ctx context.Context, id string) ([]byte, error)
}

// Resolver turns card identifiers into attribute records, reading through a
// persistent cache.
type Resolver struct {
	store   repository.Store
	source  ItemSource
	limiter throttle.Limiter
	logger  logger.Logger
}

// NewResolver returns a resolver over store and source. Without WithLimiter
// batches do not wait between fetches.
func NewResolver(store repository.Store, source ItemSource, opts ...Option) *Resolver {
	r := &Resolver{
		store:   store,
		source:  source,
		limiter: throttle.None{},
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the record for id. A cached payload is parsed and
// returned. On a miss the payload is fetched, validated, cached and returned.
// Upstream failures come back as *catalog.UpstreamError; an empty upstream
// object is model.ErrEmptyPayload and is not cached.
func (r *Resolver) Resolve(ctx context.Context, id string) (model.AttributeRecord, error) {
	rec, _, err := r.resolve(ctx, id)
	return rec, err
}

// resolve also reports whether the network was touched.
func (r *Resolver) resolve(ctx context.Context, id string) (model.AttributeRecord, bool, error) {
	if id == "" {
		return model.AttributeRecord{}, false, ErrEmptyIdentifier
	}

	raw, err := r.store.Get(ctx, id)
	switch {
	case err == nil:
		metrics.RecordCacheHit()
		r.logger.Debug(ctx, "cache hit", logger.String("id", id))
		rec, err := model.ParseAttributeRecord(id, raw)
		return rec, false, err
	case !errors.Is(err, repository.ErrNotFound):
		return model.AttributeRecord{}, false, fmt.Errorf("cache lookup %s: %w", id, err)
	}

	metrics.RecordCacheMiss()
	r.logger.Debug(ctx, "cache miss", logger.String("id", id))
	raw, err = r.source.Item(ctx, id)
	if err != nil {
		return model.AttributeRecord{}, true, err
	}
	rec, err := model.ParseAttributeRecord(id, raw)
	if err != nil {
		return model.AttributeRecord{}, true, err
	}
	if err := r.store.Put(ctx, id, raw); err != nil {
		metrics.RecordCacheWriteError()
		r.logger.Warn(ctx, "cache write failed", logger.String("id", id), logger.Error(err))
	}
	return rec, true, nil
}

// BatchResult is the outcome of ResolveBatch.
type BatchResult struct {
	Records []model.AttributeRecord
	// Skipped holds the identifiers that failed, in input order.
	Skipped []string
	Fetched int
}

// ResolveBatch resolves ids in order. A failing identifier is logged and
// skipped. The limiter is waited on after every network fetch, successful
// or not, and never after a cache hit. Only context cancellation aborts
// the batch.
func (r *Resolver) ResolveBatch(ctx context.Context, ids []string) (BatchResult, error) {
	var res BatchResult
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		rec, fetched, err := r.resolve(ctx, id)
		if fetched {
			res.Fetched++
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			metrics.RecordSkippedIdentifier()
			r.logger.Warn(ctx, "skipping identifier", logger.String("id", id), logger.Error(err))
			res.Skipped = append(res.Skipped, id)
		} else {
			res.Records = append(res.Records, rec)
		}
		if fetched {
			if err := r.limiter.Wait(ctx); err != nil {
				return res, err
			}
		}
	}
	r.logger.Info(ctx, "attributes resolved",
		logger.Int("requested", len(ids)),
		logger.Int("resolved", len(res.Records)),
		logger.Int("fetched", res.Fetched),
		logger.Int("skipped", len(res.Skipped)))
	return res, nil
}
