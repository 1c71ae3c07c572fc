package frame

import (
	"fmt"
	"strings"
)

// JoinKind selects which unmatched rows survive a join.
type JoinKind int

const (
	// Inner keeps only rows whose key exists on both sides.
	Inner JoinKind = iota
	// Left keeps every left row; unmatched ones get null right columns.
	Left
	// Outer keeps every row from both sides.
	Outer
)

func (k JoinKind) String() string {
	switch k {
	case Inner:
		return "inner"
	case Left:
		return "left"
	case Outer:
		return "outer"
	default:
		return fmt.Sprintf("JoinKind(%d)", int(k))
	}
}

// Join combines left and right on the key columns in on. The result holds
// the left columns in order followed by the right non-key columns. Any other
// column name present on both sides is an ErrColumnCollision; callers drop
// it from one side first. A left row matching several right rows fans out
// into one row per match, in right order. For Outer, right-only rows are
// appended after the left rows with key columns taken from the right side.
func Join(left, right *Frame, kind JoinKind, on ...string) (*Frame, error) {
	if len(on) == 0 {
		return nil, fmt.Errorf("%w: no join keys", ErrUnknownColumn)
	}
	if missing := left.Missing(on...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: left side lacks %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}
	if missing := right.Missing(on...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: right side lacks %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}

	isKey := make(map[string]struct{}, len(on))
	for _, c := range on {
		isKey[c] = struct{}{}
	}
	var rightCols []string
	for _, c := range right.cols {
		if _, ok := isKey[c]; ok {
			continue
		}
		if left.Has(c) {
			return nil, fmt.Errorf("%w: %q", ErrColumnCollision, c)
		}
		rightCols = append(rightCols, c)
	}

	cols := append(append([]string(nil), left.cols...), rightCols...)
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}

	rightIdx := make([]int, len(rightCols))
	for i, c := range rightCols {
		rightIdx[i] = right.index[c]
	}
	matches := make(map[string][]int, right.Len())
	for i := range right.rows {
		if k, ok := Key(right.Row(i), on...); ok {
			matches[k] = append(matches[k], i)
		}
	}

	used := make([]bool, right.Len())
	for i, lrow := range left.rows {
		var hits []int
		if k, ok := Key(left.Row(i), on...); ok {
			hits = matches[k]
		}
		if len(hits) == 0 {
			if kind == Inner {
				continue
			}
			row := make([]Value, len(cols))
			copy(row, lrow)
			out.rows = append(out.rows, row)
			continue
		}
		for _, m := range hits {
			used[m] = true
			row := make([]Value, len(cols))
			copy(row, lrow)
			for k, j := range rightIdx {
				row[len(left.cols)+k] = right.rows[m][j]
			}
			out.rows = append(out.rows, row)
		}
	}

	if kind == Outer {
		for m, rrow := range right.rows {
			if used[m] {
				continue
			}
			row := make([]Value, len(cols))
			for _, c := range on {
				row[left.index[c]] = rrow[right.index[c]]
			}
			for k, j := range rightIdx {
				row[len(left.cols)+k] = rrow[j]
			}
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}
