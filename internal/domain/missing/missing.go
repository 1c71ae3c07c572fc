// Package missing flags rows where a whole family of columns is absent.
package missing

import (
	"context"
	"strings"

	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/pkg/logger"
)

// IndicatorColumn returns the indicator name for prefix: "lhp_" gives
// "missing_lhp_stats".
func IndicatorColumn(prefix string) string {
	return "missing_" + strings.TrimSuffix(prefix, "_") + "_stats"
}

// Family returns the columns that start with prefix. Columns ending in
// "_missing" are indicators themselves and are not part of any family.
func Family(f *frame.Frame, prefix string) []string {
	var out []string
	for _, c := range f.WithPrefix(prefix) {
		if !strings.HasSuffix(c, "_missing") {
			out = append(out, c)
		}
	}
	return out
}

// Annotate adds IndicatorColumn(prefix), true iff every column of the
// prefix family is null in the row. With no matching columns the frame is
// returned unchanged and a warning is logged.
func Annotate(ctx context.Context, f *frame.Frame, prefix string, log logger.Logger) *frame.Frame {
	family := Family(f, prefix)
	if len(family) == 0 {
		log.Warn(ctx, "no columns match prefix; indicator not added", logger.String("prefix", prefix))
		return f
	}
	col := IndicatorColumn(prefix)
	out := f.WithColumn(col, func(r frame.Record) frame.Value {
		for _, c := range family {
			if !r.Get(c).IsNull() {
				return frame.Bool(false)
			}
		}
		return frame.Bool(true)
	})
	log.Debug(ctx, "missing indicator added",
		logger.String("column", col), logger.Int("family_size", len(family)))
	return out
}

// AnnotateAll applies Annotate for each prefix in order.
func AnnotateAll(ctx context.Context, f *frame.Frame, log logger.Logger, prefixes ...string) *frame.Frame {
	for _, p := range prefixes {
		f = Annotate(ctx, f, p, log)
	}
	return f
}
