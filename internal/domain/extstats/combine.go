package extstats

import (
	"context"

	"github.com/okian/rosterlab/internal/domain/dedupe"
	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// Handedness prefixes.
const (
	LHPPrefix = "lhp_"
	RHPPrefix = "rhp_"
)

// CombineHandedness outer-joins the vs-LHP and vs-RHP tables into one row per
// (name, id). Every non-key column is prefixed with its handedness, so a
// player seen in only one table has nulls for the other prefix. Repeated
// (name, id) rows within one table are dropped, first wins, so the join
// cannot fan out.
func CombineHandedness(ctx context.Context, lhp, rhp *frame.Frame, schema Schema, log logger.Logger) (*frame.Frame, error) {
	keys := []string{schema.NameColumn, schema.IDColumn}

	side := func(t *frame.Frame, prefix string) (*frame.Frame, error) {
		res, err := dedupe.Frame(ctx, t, keys...)
		if err != nil {
			return nil, err
		}
		if n := len(res.Dropped); n > 0 {
			log.Warn(ctx, "duplicate statistics rows dropped",
				logger.String("side", prefix), logger.Int("count", n))
			metrics.RecordDuplicatesDropped("combine_"+prefix[:len(prefix)-1], n)
		}
		return res.Frame.Prefix(prefix, keys...)
	}

	left, err := side(lhp, LHPPrefix)
	if err != nil {
		return nil, err
	}
	right, err := side(rhp, RHPPrefix)
	if err != nil {
		return nil, err
	}
	joined, err := frame.Join(left, right, frame.Outer, keys...)
	if err != nil {
		return nil, err
	}
	log.Debug(ctx, "handedness tables combined",
		logger.Int("lhp", left.Len()), logger.Int("rhp", right.Len()), logger.Int("rows", joined.Len()))
	return joined.Reorder(schema.IDColumn, schema.NameColumn)
}
