package frame

import "errors"

// Sentinel kinds for frame errors.
var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrColumnCollision = errors.New("column present on both join sides")
	ErrRowWidth        = errors.New("row width does not match columns")
)
