package service

import (
	"errors"
	"fmt"
)

// Pipeline stage names.
const (
	StageRoster        = "roster"
	StageAttributes    = "attributes"
	StageSplit         = "split"
	StageMerge         = "merge"
	StageExternalStats = "external_stats"
	StageFeatures      = "features"
	StageMissing       = "missing"
	StageExport        = "export"
)

// ErrStatsNotConfigured means a statistics path was not set.
var ErrStatsNotConfigured = errors.New("external statistics paths not configured")

// StageError identifies the pipeline stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }
