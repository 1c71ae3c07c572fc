// Package service runs the dataset pipeline: roster changes and card
// attributes are fetched, split by role, merged, enriched with external
// statistics, turned into features and annotated for missing data.
package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rosterlab/internal/adapters/export"
	"github.com/okian/rosterlab/internal/domain/extstats"
	"github.com/okian/rosterlab/internal/domain/features"
	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/internal/domain/merge"
	"github.com/okian/rosterlab/internal/domain/missing"
	"github.com/okian/rosterlab/internal/domain/model"
	"github.com/okian/rosterlab/internal/domain/split"
	"github.com/okian/rosterlab/internal/fetch"
	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// AttributeResolver resolves card identifiers in bulk.
type AttributeResolver interface {
	ResolveBatch(ctx context.Context, ids []string) (fetch.BatchResult, error)
}

// RosterLoader loads one roster update.
type RosterLoader interface {
	Load(ctx context.Context, updateID int) ([]model.RosterChangeEvent, error)
}

// Pipeline builds the modeling tables for one roster update.
type Pipeline struct {
	resolver AttributeResolver
	loader   RosterLoader

	schema    extstats.Schema
	lhpPath   string
	rhpPath   string
	outputDir string

	logger logger.Logger
}

// Result is a finished run. Hitters carries external statistics, features
// and missing indicators; Pitchers is the merged attribute and roster table.
type Result struct {
	RunID    string
	UpdateID int
	Hitters  *frame.Frame
	Pitchers *frame.Frame
	Match    extstats.MatchReport
	// Skipped lists identifiers whose attributes could not be resolved.
	Skipped []string
}

// New constructs a Pipeline.
func New(resolver AttributeResolver, loader RosterLoader, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver: resolver,
		loader:   loader,
		schema:   extstats.DefaultSchema(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every stage for updateID. Any failure is returned as a
// *StageError; no partial result is returned with it.
func (p *Pipeline) Run(ctx context.Context, updateID int) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString(), UpdateID: updateID}
	log := p.logger.With(logger.String("run_id", res.RunID), logger.Int("update_id", updateID))
	log.Info(ctx, "pipeline started")

	combined, err := p.loadStats(ctx, log)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageExternalStats, err)
	}

	events, err := p.loader.Load(ctx, updateID)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageRoster, err)
	}
	roster, err := model.RosterFrame(events)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageRoster, err)
	}
	metrics.UpdateStageRows(StageRoster, roster.Len())

	batch, err := p.resolver.ResolveBatch(ctx, fetch.Identifiers(events))
	if err != nil {
		return Result{}, p.fail(ctx, log, StageAttributes, err)
	}
	res.Skipped = batch.Skipped
	attrs, err := model.AttributesFrame(batch.Records)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageAttributes, err)
	}
	metrics.UpdateStageRows(StageAttributes, attrs.Len())

	attrSplit, err := split.Attributes(attrs)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageSplit, err)
	}
	rosterSplit, err := split.RosterChanges(ctx, roster, attrs)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageSplit, err)
	}
	if n := attrSplit.Excluded + rosterSplit.Excluded; n > 0 {
		log.Warn(ctx, "rows without a role dropped",
			logger.Int("attributes", attrSplit.Excluded), logger.Int("roster_changes", rosterSplit.Excluded))
	}

	hitters, err := merge.AttributesWithRoster(ctx, attrSplit.Hitters, rosterSplit.Hitters, log)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageMerge, err)
	}
	pitchers, err := merge.AttributesWithRoster(ctx, attrSplit.Pitchers, rosterSplit.Pitchers, log)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageMerge, err)
	}
	metrics.UpdateStageRows(StageMerge, hitters.Frame.Len()+pitchers.Frame.Len())
	log.Info(ctx, "attributes merged with roster changes",
		logger.Int("hitters", hitters.Frame.Len()), logger.Int("pitchers", pitchers.Frame.Len()))

	enriched, match, err := extstats.Attach(ctx, hitters.Frame, combined, model.ColPlayerName, p.schema, log)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageExternalStats, err)
	}
	res.Match = match
	metrics.UpdateStageRows(StageExternalStats, enriched.Len())

	derived, err := features.Derive(enriched)
	if err != nil {
		return Result{}, p.fail(ctx, log, StageFeatures, err)
	}
	metrics.UpdateStageRows(StageFeatures, derived.Len())

	res.Hitters = missing.AnnotateAll(ctx, derived, log, extstats.LHPPrefix, extstats.RHPPrefix)
	res.Pitchers = pitchers.Frame
	metrics.UpdateStageRows(StageMissing, res.Hitters.Len())

	if p.outputDir != "" {
		if err := p.export(ctx, log, res); err != nil {
			return Result{}, p.fail(ctx, log, StageExport, err)
		}
	}

	log.Info(ctx, "pipeline finished",
		logger.Int("hitters", res.Hitters.Len()),
		logger.Int("pitchers", res.Pitchers.Len()),
		logger.Int("skipped", len(res.Skipped)),
		logger.Duration("elapsed", time.Since(start)))
	return res, nil
}

// loadStats runs first so a malformed statistics file fails before any
// network traffic.
func (p *Pipeline) loadStats(ctx context.Context, log logger.Logger) (*frame.Frame, error) {
	if p.lhpPath == "" || p.rhpPath == "" {
		return nil, ErrStatsNotConfigured
	}
	lhp, err := extstats.Load(p.lhpPath, p.schema)
	if err != nil {
		return nil, err
	}
	rhp, err := extstats.Load(p.rhpPath, p.schema)
	if err != nil {
		return nil, err
	}
	return extstats.CombineHandedness(ctx, lhp, rhp, p.schema, log)
}

func (p *Pipeline) export(ctx context.Context, log logger.Logger, res Result) error {
	hp := filepath.Join(p.outputDir, export.HittersFile)
	if err := export.WriteFile(hp, res.Hitters); err != nil {
		return err
	}
	pp := filepath.Join(p.outputDir, export.PitchersFile)
	if err := export.WriteFile(pp, res.Pitchers); err != nil {
		return err
	}
	log.Info(ctx, "tables written", logger.String("hitters", hp), logger.String("pitchers", pp))
	return nil
}

func (p *Pipeline) fail(ctx context.Context, log logger.Logger, stage string, err error) error {
	metrics.RecordStageError(stage)
	log.Error(ctx, "pipeline stage failed", logger.String("stage", stage), logger.Error(err))
	return &StageError{Stage: stage, Err: err}
}
