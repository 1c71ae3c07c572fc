package extstats

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSchema is wrapped by every SchemaError.
var ErrSchema = errors.New("statistics table schema mismatch")

// SchemaError reports an external statistics file that lacks required columns.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing columns %s", e.Path, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }
