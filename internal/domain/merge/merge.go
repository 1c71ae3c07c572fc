// Package merge joins role-matched attribute and roster tables.
package merge

import (
	"context"

	"github.com/okian/rosterlab/internal/domain/dedupe"
	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/internal/domain/model"
	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// Result is the merged table plus how many duplicate identifiers each side
// lost before the join.
type Result struct {
	Frame             *frame.Frame
	AttributeDupes    int
	RosterChangeDupes int
}

// AttributesWithRoster deduplicates both inputs on player_id, first row
// wins, and inner-joins them. The roster side's name and role columns are
// dropped so the attribute side's copies survive.
func AttributesWithRoster(ctx context.Context, attrs, roster *frame.Frame, log logger.Logger) (Result, error) {
	a, err := dedupe.Frame(ctx, attrs, model.ColPlayerID)
	if err != nil {
		return Result{}, err
	}
	r, err := dedupe.Frame(ctx, roster.Drop(model.ColPlayerName, model.ColIsHitter), model.ColPlayerID)
	if err != nil {
		return Result{}, err
	}
	if n := len(a.Dropped); n > 0 {
		log.Warn(ctx, "duplicate attribute identifiers dropped", logger.Int("count", n))
		metrics.RecordDuplicatesDropped("merge_attributes", n)
	}
	if n := len(r.Dropped); n > 0 {
		log.Warn(ctx, "duplicate roster identifiers dropped", logger.Int("count", n))
		metrics.RecordDuplicatesDropped("merge_roster", n)
	}

	joined, err := frame.Join(a.Frame, r.Frame, frame.Inner, model.ColPlayerID)
	if err != nil {
		return Result{}, err
	}
	log.Debug(ctx, "attributes merged with roster changes",
		logger.Int("attributes", a.Frame.Len()),
		logger.Int("roster_changes", r.Frame.Len()),
		logger.Int("rows", joined.Len()))
	return Result{
		Frame:             joined,
		AttributeDupes:    len(a.Dropped),
		RosterChangeDupes: len(r.Dropped),
	}, nil
}
