// Package features derives model features from the enriched hitter table.
package features

import (
	"errors"
	"fmt"
	"strings"

	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/internal/domain/model"
)

// ErrMissingColumn is returned when an input column is absent.
var ErrMissingColumn = errors.New("feature input column missing")

// RatingScale is the divisor used to put ratings on a 0..1 scale.
const RatingScale = float64(model.MaxRating)

// Input statistic columns.
const (
	RHPAvg = "rhp_AVG"
	LHPAvg = "lhp_AVG"
	RHPSlg = "rhp_SLG"
	LHPSlg = "lhp_SLG"
	RHPBB  = "rhp_BB%"
	RHPK   = "rhp_K%"
)

// Derived columns.
const (
	ContactRightVsRHPAvg = "contact_right_vs_rhp_avg"
	ContactLeftVsLHPAvg  = "contact_left_vs_lhp_avg"
	PowerRightVsRHPSlg   = "power_right_vs_rhp_slg"
	PowerLeftVsLHPSlg    = "power_left_vs_lhp_slg"
	DisciplineVsBB       = "discipline_vs_bb"
	PlateDisciplineIndex = "plate_discipline_index"
	ContactRightXAvg     = "contact_right_x_avg"
	PowerRightXSlg       = "power_right_x_slg"
	DisciplineXBB        = "discipline_x_bb"
)

type derivation struct {
	out  string
	a, b string
	op   func(a, b frame.Value) frame.Value
}

func discrepancy(rating, stat frame.Value) frame.Value {
	return frame.Sub(frame.Scale(rating, RatingScale), stat)
}

var derivations = []derivation{
	{ContactRightVsRHPAvg, model.ColContactRight, RHPAvg, discrepancy},
	{ContactLeftVsLHPAvg, model.ColContactLeft, LHPAvg, discrepancy},
	{PowerRightVsRHPSlg, model.ColPowerRight, RHPSlg, discrepancy},
	{PowerLeftVsLHPSlg, model.ColPowerLeft, LHPSlg, discrepancy},
	{DisciplineVsBB, model.ColDiscipline, RHPBB, discrepancy},
	{PlateDisciplineIndex, RHPBB, RHPK, frame.Sub},
	{ContactRightXAvg, model.ColContactRight, RHPAvg, frame.Mul},
	{PowerRightXSlg, model.ColPowerRight, RHPSlg, frame.Mul},
	{DisciplineXBB, model.ColDiscipline, RHPBB, frame.Mul},
}

// Columns lists the derived columns in the order Derive appends them.
func Columns() []string {
	out := make([]string, len(derivations))
	for i, d := range derivations {
		out[i] = d.out
	}
	return out
}

// Inputs lists every column Derive reads.
func Inputs() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range derivations {
		for _, c := range []string{d.a, d.b} {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}

// Derive appends the discrepancy, index and interaction features. Ratings
// are divided by RatingScale only for the discrepancy features; the scaled
// values are not kept. A null or non-numeric operand makes the feature null.
func Derive(f *frame.Frame) (*frame.Frame, error) {
	if missing := f.Missing(Inputs()...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	out := f
	for _, d := range derivations {
		out = out.WithColumn(d.out, func(r frame.Record) frame.Value {
			return d.op(r.Get(d.a), r.Get(d.b))
		})
	}
	return out, nil
}
