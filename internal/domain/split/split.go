// Package split partitions attribute and roster tables by role.
package split

import (
	"context"
	"fmt"

	"github.com/okian/rosterlab/internal/domain/dedupe"
	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/internal/domain/model"
)

// Result holds the two role-homogeneous halves of a table and the number of
// rows that carried no usable role flag.
type Result struct {
	Hitters  *frame.Frame
	Pitchers *frame.Frame
	Excluded int
}

// ByRole partitions f on the boolean is_hitter column. Rows whose flag is
// null or not a bool land in neither half.
func ByRole(f *frame.Frame) (Result, error) {
	if !f.Has(model.ColIsHitter) {
		return Result{}, fmt.Errorf("%w: %q", frame.ErrUnknownColumn, model.ColIsHitter)
	}
	hitters := f.Filter(func(r frame.Record) bool {
		v, ok := r.Get(model.ColIsHitter).Flag()
		return ok && v
	})
	pitchers := f.Filter(func(r frame.Record) bool {
		v, ok := r.Get(model.ColIsHitter).Flag()
		return ok && !v
	})
	return Result{
		Hitters:  hitters,
		Pitchers: pitchers,
		Excluded: f.Len() - hitters.Len() - pitchers.Len(),
	}, nil
}

// Attributes splits an attribute table and drops the other role's columns
// from each half.
func Attributes(f *frame.Frame) (Result, error) {
	res, err := ByRole(f)
	if err != nil {
		return Result{}, err
	}
	res.Hitters = res.Hitters.Drop(model.PitchingColumns...)
	res.Pitchers = res.Pitchers.Drop(model.HittingColumns...)
	return res, nil
}

// RosterChanges imports the role flag from attrs by identifier and splits the
// roster table. Events whose identifier has no attribute record get a null
// role and are excluded.
func RosterChanges(ctx context.Context, roster, attrs *frame.Frame) (Result, error) {
	roles, err := attrs.Select(model.ColPlayerID, model.ColIsHitter)
	if err != nil {
		return Result{}, err
	}
	uniq, err := dedupe.Frame(ctx, roles, model.ColPlayerID)
	if err != nil {
		return Result{}, err
	}
	joined, err := frame.Join(roster.Drop(model.ColIsHitter), uniq.Frame, frame.Left, model.ColPlayerID)
	if err != nil {
		return Result{}, err
	}
	return ByRole(joined)
}
