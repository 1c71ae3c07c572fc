// Package frame implements the immutable tables passed between pipeline
// stages. A Frame is never modified after it is built: every operation
// returns a new Frame. Row storage may be shared between frames because no
// method writes to an existing row.
package frame

import (
	"fmt"
	"strings"
)

// Frame is an ordered set of named columns over rows of Values.
type Frame struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New returns an empty frame with the given columns.
func New(cols ...string) (*Frame, error) {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		index[c] = i
	}
	return &Frame{cols: append([]string(nil), cols...), index: index}, nil
}

// FromRows builds a frame from row-major values. Each row must have exactly
// len(cols) cells.
func FromRows(cols []string, rows [][]Value) (*Frame, error) {
	f, err := New(cols...)
	if err != nil {
		return nil, err
	}
	f.rows = make([][]Value, 0, len(rows))
	for i, r := range rows {
		if len(r) != len(cols) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, i, len(r), len(cols))
		}
		f.rows = append(f.rows, append([]Value(nil), r...))
	}
	return f, nil
}

// Builder accumulates rows for a new frame. The first error sticks and is
// returned by Frame.
type Builder struct {
	f   *Frame
	err error
}

// NewBuilder starts a frame with the given columns.
func NewBuilder(cols ...string) *Builder {
	f, err := New(cols...)
	return &Builder{f: f, err: err}
}

// Add appends one row given in column order.
func (b *Builder) Add(vals ...Value) *Builder {
	if b.err != nil {
		return b
	}
	if len(vals) != len(b.f.cols) {
		b.err = fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(vals), len(b.f.cols))
		return b
	}
	b.f.rows = append(b.f.rows, append([]Value(nil), vals...))
	return b
}

// AddMap appends one row given by column name. Absent columns are null.
func (b *Builder) AddMap(vals map[string]Value) *Builder {
	if b.err != nil {
		return b
	}
	row := make([]Value, len(b.f.cols))
	for k, v := range vals {
		i, ok := b.f.index[k]
		if !ok {
			b.err = fmt.Errorf("%w: %q", ErrUnknownColumn, k)
			return b
		}
		row[i] = v
	}
	b.f.rows = append(b.f.rows, row)
	return b
}

// Frame returns the built frame. The builder must not be used afterwards.
func (b *Builder) Frame() (*Frame, error) {
	if b.err != nil {
		return nil, b.err
	}
	f := b.f
	b.f = nil
	return f, nil
}

// Columns returns a copy of the column names in order.
func (f *Frame) Columns() []string { return append([]string(nil), f.cols...) }

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.rows) }

// Width returns the number of columns.
func (f *Frame) Width() int { return len(f.cols) }

// Has reports whether col exists.
func (f *Frame) Has(col string) bool {
	_, ok := f.index[col]
	return ok
}

// Missing returns the subset of cols that f does not have, in order.
func (f *Frame) Missing(cols ...string) []string {
	var out []string
	for _, c := range cols {
		if !f.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Get returns the cell at row i and column col, or null if col is absent.
func (f *Frame) Get(i int, col string) Value {
	j, ok := f.index[col]
	if !ok {
		return Null()
	}
	return f.rows[i][j]
}

// Row returns a read-only view of row i.
func (f *Frame) Row(i int) Record { return Record{f: f, i: i} }

// Records returns views of every row in order.
func (f *Frame) Records() []Record {
	out := make([]Record, len(f.rows))
	for i := range f.rows {
		out[i] = Record{f: f, i: i}
	}
	return out
}

// Column returns a copy of every cell of col.
func (f *Frame) Column(col string) ([]Value, error) {
	j, ok := f.index[col]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	out := make([]Value, len(f.rows))
	for i, r := range f.rows {
		out[i] = r[j]
	}
	return out, nil
}

// WithPrefix returns the columns starting with prefix, in order.
func (f *Frame) WithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.cols {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// Filter keeps the rows for which keep returns true.
func (f *Frame) Filter(keep func(Record) bool) *Frame {
	out := f.shell(f.cols)
	for i, r := range f.rows {
		if keep(Record{f: f, i: i}) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Drop removes cols. Columns that do not exist are ignored.
func (f *Frame) Drop(cols ...string) *Frame {
	drop := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		drop[c] = struct{}{}
	}
	keep := make([]string, 0, len(f.cols))
	for _, c := range f.cols {
		if _, ok := drop[c]; !ok {
			keep = append(keep, c)
		}
	}
	out, _ := f.Select(keep...)
	return out
}

// Select returns a frame with exactly cols, in the given order.
func (f *Frame) Select(cols ...string) (*Frame, error) {
	if missing := f.Missing(cols...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = f.index[c]
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.rows = make([][]Value, len(f.rows))
	for i, r := range f.rows {
		row := make([]Value, len(idx))
		for k, j := range idx {
			row[k] = r[j]
		}
		out.rows[i] = row
	}
	return out, nil
}

// Rename renames columns by mapping old -> new. Unknown old names are
// ignored; a rename that produces a duplicate column is an error.
func (f *Frame) Rename(mapping map[string]string) (*Frame, error) {
	cols := make([]string, len(f.cols))
	for i, c := range f.cols {
		if n, ok := mapping[c]; ok {
			cols[i] = n
		} else {
			cols[i] = c
		}
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.rows = f.rows
	return out, nil
}

// Prefix prepends prefix to every column name except the listed ones.
func (f *Frame) Prefix(prefix string, except ...string) (*Frame, error) {
	skip := make(map[string]struct{}, len(except))
	for _, c := range except {
		skip[c] = struct{}{}
	}
	mapping := make(map[string]string, len(f.cols))
	for _, c := range f.cols {
		if _, ok := skip[c]; !ok {
			mapping[c] = prefix + c
		}
	}
	return f.Rename(mapping)
}

// Reorder moves lead to the front in the given order; the remaining columns
// keep their relative order.
func (f *Frame) Reorder(lead ...string) (*Frame, error) {
	if missing := f.Missing(lead...); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, strings.Join(missing, ", "))
	}
	seen := make(map[string]struct{}, len(lead))
	cols := make([]string, 0, len(f.cols))
	for _, c := range lead {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	for _, c := range f.cols {
		if _, ok := seen[c]; !ok {
			cols = append(cols, c)
		}
	}
	return f.Select(cols...)
}

// WithColumn returns f with col set to fn(row) for every row. An existing
// column is replaced in place; a new one is appended.
func (f *Frame) WithColumn(col string, fn func(Record) Value) *Frame {
	j, exists := f.index[col]
	cols := f.cols
	if !exists {
		cols = append(append([]string(nil), f.cols...), col)
		j = len(f.cols)
	}
	out := f.shell(cols)
	out.rows = make([][]Value, len(f.rows))
	for i, r := range f.rows {
		row := make([]Value, len(cols))
		copy(row, r)
		row[j] = fn(Record{f: f, i: i})
		out.rows[i] = row
	}
	return out
}

// shell returns an empty frame sharing no row storage with f.
func (f *Frame) shell(cols []string) *Frame {
	index := make(map[string]int, len(cols))
	for i, c := range cols {
		index[c] = i
	}
	return &Frame{cols: append([]string(nil), cols...), index: index}
}

// Record is a read-only view of one row.
type Record struct {
	f *Frame
	i int
}

// Index returns the row position in its frame.
func (r Record) Index() int { return r.i }

// Get returns the cell in col, or null if the column is absent.
func (r Record) Get(col string) Value { return r.f.Get(r.i, col) }

// Map copies the row into a map keyed by column name.
func (r Record) Map() map[string]Value {
	out := make(map[string]Value, len(r.f.cols))
	for j, c := range r.f.cols {
		out[c] = r.f.rows[r.i][j]
	}
	return out
}

// Key returns a composite join key over cols. ok is false when any key cell
// is null; null keys never match anything.
func Key(r Record, cols ...string) (key string, ok bool) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		v := r.Get(c)
		if v.IsNull() {
			return "", false
		}
		parts[i] = v.key()
	}
	return strings.Join(parts, "\x1f"), true
}
