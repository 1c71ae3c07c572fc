package model

import (
	"errors"
	"fmt"
)

// ErrParse is wrapped by every ParseError.
var ErrParse = errors.New("parse failed")

// ParseError reports an upstream payload that does not fit the expected shape.
type ParseError struct {
	Source string
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: field %q: %s", e.Source, e.Field, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }
