// Package inspect computes sanity figures for a finished table.
package inspect

import (
	"math"
	"sort"

	"github.com/okian/rosterlab/internal/domain/frame"
)

// ColumnNulls is the null count of one column.
type ColumnNulls struct {
	Column string
	Nulls  int
}

// NumericStats describes the numeric cells of one column.
type NumericStats struct {
	Column string
	Count  int
	Mean   float64
	Min    float64
	Max    float64
}

// Summary is the result of Summarize.
type Summary struct {
	Rows    int
	Columns int
	// Nulls lists only columns with at least one null, most nulls first.
	Nulls          []ColumnNulls
	DuplicateIDs   int
	DuplicateNames int
	Numeric        []NumericStats
}

// Summarize inspects f. Duplicates count every repeat of a non-null value in
// idCol or nameCol after its first occurrence; an absent column counts zero.
func Summarize(f *frame.Frame, idCol, nameCol string) Summary {
	s := Summary{
		Rows:           f.Len(),
		Columns:        f.Width(),
		DuplicateIDs:   repeats(f, idCol),
		DuplicateNames: repeats(f, nameCol),
	}
	for _, c := range f.Columns() {
		vals, _ := f.Column(c)
		nulls := 0
		num := NumericStats{Column: c, Min: math.Inf(1), Max: math.Inf(-1)}
		var sum float64
		for _, v := range vals {
			if v.IsNull() {
				nulls++
				continue
			}
			if x, ok := v.Float(); ok {
				num.Count++
				sum += x
				num.Min = math.Min(num.Min, x)
				num.Max = math.Max(num.Max, x)
			}
		}
		if nulls > 0 {
			s.Nulls = append(s.Nulls, ColumnNulls{Column: c, Nulls: nulls})
		}
		if num.Count > 0 {
			num.Mean = sum / float64(num.Count)
			s.Numeric = append(s.Numeric, num)
		}
	}
	sort.SliceStable(s.Nulls, func(i, j int) bool { return s.Nulls[i].Nulls > s.Nulls[j].Nulls })
	return s
}

func repeats(f *frame.Frame, col string) int {
	if !f.Has(col) {
		return 0
	}
	seen := make(map[string]struct{}, f.Len())
	n := 0
	for _, r := range f.Records() {
		k, ok := frame.Key(r, col)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			n++
			continue
		}
		seen[k] = struct{}{}
	}
	return n
}
