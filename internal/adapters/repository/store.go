// Package repository persists raw catalog attribute payloads keyed by card
// identifier.
package repository

import "context"

// Store holds raw attribute JSON verbatim. There is no expiry: an entry
// stays until something overwrites it.
type Store interface {
	// Get returns the stored payload for id, or ErrNotFound.
	Get(ctx context.Context, id string) ([]byte, error)
	// Put stores raw under id, replacing any previous payload.
	Put(ctx context.Context, id string, raw []byte) error
}
