// Package extstats loads handedness-split batting statistics and attaches
// them to the modeling table by normalized player name.
package extstats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/rosterlab/internal/domain/frame"
)

// Stat columns consumed downstream.
const (
	StatAVG = "AVG"
	StatSLG = "SLG"
	StatBB  = "BB%"
	StatK   = "K%"
)

// DefaultDropColumns are removed from every statistics table on load.
var DefaultDropColumns = []string{"PA", "wOBA", "wRC+", "OPS", "ISO", "BABIP"}

// Schema names the key columns of a statistics table and the columns to
// drop on load.
type Schema struct {
	NameColumn string
	IDColumn   string
	Drop       []string
}

// DefaultSchema matches the usual export layout.
func DefaultSchema() Schema {
	return Schema{NameColumn: "Name", IDColumn: "playerId", Drop: DefaultDropColumns}
}

// Required returns the columns a table must carry after the drop list is
// applied.
func (s Schema) Required() []string {
	return []string{s.NameColumn, s.IDColumn, StatAVG, StatSLG, StatBB, StatK}
}

// Load reads a statistics CSV from path.
func Load(path string, schema Schema) (*frame.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statistics %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, path, schema)
}

// Read parses a statistics CSV. The first row is the header. Cells are
// typed by parseCell; the schema's drop list is applied before the required
// columns are checked. The id column is always kept as text.
func Read(r io.Reader, path string, schema Schema) (*frame.Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Path: path, Missing: schema.Required()}
	}
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	b := frame.NewBuilder(header...)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		row := make([]frame.Value, len(rec))
		for i, cell := range rec {
			if header[i] == schema.IDColumn || header[i] == schema.NameColumn {
				row[i] = textCell(cell)
				continue
			}
			row[i] = parseCell(cell)
		}
		b.Add(row...)
	}
	t, err := b.Frame()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}

	t = t.Drop(schema.Drop...)
	if missing := t.Missing(schema.Required()...); len(missing) > 0 {
		return nil, &SchemaError{Path: path, Missing: missing}
	}
	return t, nil
}

func textCell(s string) frame.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return frame.Null()
	}
	return frame.Text(s)
}

// parseCell maps "" to null, "12.5%" to 0.125, numbers to numbers and
// anything else to text.
func parseCell(s string) frame.Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return frame.Null()
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64); err == nil {
			return frame.Number(v / 100)
		}
		return frame.Text(s)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return frame.Number(v)
	}
	return frame.Text(s)
}
