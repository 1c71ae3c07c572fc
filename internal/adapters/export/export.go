// Package export writes frames to flat files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/okian/rosterlab/internal/domain/frame"
)

// Default output file names.
const (
	HittersFile  = "hitters.csv"
	PitchersFile = "pitchers.csv"
)

// WriteCSV writes f with a header row. Nulls are empty cells.
func WriteCSV(w io.Writer, f *frame.Frame) error {
	cw := csv.NewWriter(w)
	cols := f.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	rec := make([]string, len(cols))
	for _, r := range f.Records() {
		for i, c := range cols {
			rec[i] = r.Get(c).String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes f to path, creating parent directories.
func WriteFile(path string, f *frame.Frame) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := WriteCSV(out, f); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
