// Package dedupe implements first-seen-wins deduplication of keyed rows.
package dedupe

import (
	"context"

	"github.com/okian/rosterlab/internal/domain/frame"
)

const defaultExpectedSize = 1024

// Deduper records seen keys so that only the first occurrence is kept.
type Deduper interface {
	// SeenAndRecord checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool
}

// Option applies a configuration option to the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithExpectedSize pre-sizes the seen set.
func WithExpectedSize(n int) Option {
	return func(d *inMemoryDeduper) {
		if n > 0 {
			d.expected = n
		}
	}
}

// inMemoryDeduper is an unbounded set. Eviction would let a duplicate slip
// through as "first", so there is no size cap. It is not safe for
// concurrent use.
type inMemoryDeduper struct {
	seen     map[string]struct{}
	expected int
}

// NewInMemoryDeduper creates an empty deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{expected: defaultExpectedSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{}, d.expected)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	if _, exists := d.seen[key]; exists {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Result is the outcome of deduplicating a frame.
type Result struct {
	Frame *frame.Frame
	// Dropped holds the source row positions that were removed.
	Dropped []int
}

// Frame keeps the first row for each distinct key over cols. Rows with a
// null key cell are not duplicates of anything and are always kept.
func Frame(ctx context.Context, f *frame.Frame, cols ...string) (Result, error) {
	if missing := f.Missing(cols...); len(missing) > 0 {
		_, err := f.Select(missing...)
		return Result{}, err
	}
	d := NewInMemoryDeduper(WithExpectedSize(f.Len()))
	var dropped []int
	kept := f.Filter(func(r frame.Record) bool {
		key, ok := frame.Key(r, cols...)
		if !ok {
			return true
		}
		if d.SeenAndRecord(ctx, key) {
			dropped = append(dropped, r.Index())
			return false
		}
		return true
	})
	return Result{Frame: kept, Dropped: dropped}, nil
}
