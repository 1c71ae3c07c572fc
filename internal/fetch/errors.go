package fetch

import "errors"

// ErrEmptyIdentifier is returned for a blank card identifier.
var ErrEmptyIdentifier = errors.New("empty card identifier")
