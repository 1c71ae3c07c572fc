// Package report renders pipeline diagnostics as console tables.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/okian/rosterlab/internal/domain/extstats"
	"github.com/okian/rosterlab/internal/domain/inspect"
)

func newTable(w io.Writer, title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}

// Match renders the attach counts and the unmatched names with their
// closest statistics names.
func Match(w io.Writer, r extstats.MatchReport) {
	t := newTable(w, "External statistics match")
	t.AppendHeader(table.Row{"Total", "Matched", "Unmatched", "Merged stat rows", "Dropped stat dupes"})
	t.AppendRow(table.Row{r.Total, r.Matched, r.Unmatched, r.StatsMerged, r.StatsDupes})
	t.Render()

	if len(r.UnmatchedNames) == 0 {
		return
	}
	closest := make(map[string]extstats.Suggestion, len(r.Suggestions))
	for _, s := range r.Suggestions {
		closest[s.Name] = s
	}
	u := newTable(w, "Unmatched players")
	u.AppendHeader(table.Row{"Player", "Closest statistics name", "Similarity"})
	for _, name := range r.UnmatchedNames {
		s, ok := closest[name]
		if !ok {
			u.AppendRow(table.Row{name, "-", "-"})
			continue
		}
		u.AppendRow(table.Row{name, s.Closest, fmt.Sprintf("%.3f", s.Score)})
	}
	u.Render()
}

// Summary renders an inspection summary under title.
func Summary(w io.Writer, title string, s inspect.Summary) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"Rows", "Columns", "Duplicate ids", "Duplicate names"})
	t.AppendRow(table.Row{s.Rows, s.Columns, s.DuplicateIDs, s.DuplicateNames})
	t.Render()

	if len(s.Nulls) > 0 {
		n := newTable(w, "Missing values")
		n.AppendHeader(table.Row{"Column", "Nulls"})
		for _, c := range s.Nulls {
			n.AppendRow(table.Row{c.Column, c.Nulls})
		}
		n.Render()
	}

	if len(s.Numeric) > 0 {
		n := newTable(w, "Numeric columns")
		n.AppendHeader(table.Row{"Column", "Count", "Mean", "Min", "Max"})
		for _, c := range s.Numeric {
			n.AppendRow(table.Row{c.Column, c.Count,
				fmt.Sprintf("%.4g", c.Mean), fmt.Sprintf("%.4g", c.Min), fmt.Sprintf("%.4g", c.Max)})
		}
		n.Render()
	}
}
