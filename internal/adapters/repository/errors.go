package repository

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for cache errors.
var (
	ErrNotFound   = errors.New("attribute payload not cached")
	ErrInvalidKey = errors.New("invalid cache key")
)

func validateKey(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty identifier", ErrInvalidKey)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, id)
	}
	return nil
}
