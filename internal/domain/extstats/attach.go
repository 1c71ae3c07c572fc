package extstats

import (
	"context"
	"sort"

	"github.com/antzucaro/matchr"

	"github.com/okian/rosterlab/internal/domain/frame"
	"github.com/okian/rosterlab/pkg/logger"
	"github.com/okian/rosterlab/pkg/metrics"
)

// StatsIDColumn holds the statistics table's own player id after attach.
const StatsIDColumn = "stats_player_id"

const (
	nameKeyColumn = "_name_key"
	matchedColumn = "_stats_matched"
)

// Suggestion pairs an unmatched name with the closest statistics name.
type Suggestion struct {
	Name    string
	Closest string
	Score   float64
}

// MatchReport summarizes an attach. Unmatched rows are kept in the output.
type MatchReport struct {
	Total          int
	Matched        int
	Unmatched      int
	UnmatchedNames []string
	Suggestions    []Suggestion
	// StatsMerged is the number of statistics rows folded into an earlier
	// row with the same normalized name and a compatible id.
	StatsMerged int
	// StatsDupes is the number of statistics rows dropped because their
	// normalized name repeated under a different id.
	StatsDupes int
}

// Attach left-joins combined onto main by normalized name. mainName is the
// name column of main. The statistics name column is dropped and its id
// column becomes StatsIDColumn. Statistics rows sharing a normalized name are
// reduced to one so main never gains rows: rows whose ids agree or are null
// are merged cell by cell, first non-null wins; a row with a different id is
// dropped.
func Attach(ctx context.Context, main, combined *frame.Frame, mainName string, schema Schema, log logger.Logger) (*frame.Frame, MatchReport, error) {
	left, err := withNameKey(main, mainName)
	if err != nil {
		return nil, MatchReport{}, err
	}
	right, err := withNameKey(combined, schema.NameColumn)
	if err != nil {
		return nil, MatchReport{}, err
	}
	uniq, merged, dropped, err := collapseByName(right, schema.IDColumn)
	if err != nil {
		return nil, MatchReport{}, err
	}
	if merged > 0 {
		log.Debug(ctx, "statistics rows merged by normalized name", logger.Int("count", merged))
	}
	if dropped > 0 {
		log.Warn(ctx, "statistics rows share a normalized name under different ids; keeping the first",
			logger.Int("count", dropped))
		metrics.RecordDuplicatesDropped("attach", dropped)
	}

	right, err = uniq.Drop(schema.NameColumn).Rename(map[string]string{schema.IDColumn: StatsIDColumn})
	if err != nil {
		return nil, MatchReport{}, err
	}
	right = right.WithColumn(matchedColumn, func(frame.Record) frame.Value { return frame.Bool(true) })

	joined, err := frame.Join(left, right, frame.Left, nameKeyColumn)
	if err != nil {
		return nil, MatchReport{}, err
	}

	report := MatchReport{Total: joined.Len(), StatsMerged: merged, StatsDupes: dropped}
	for _, r := range joined.Records() {
		if !r.Get(matchedColumn).IsNull() {
			report.Matched++
			continue
		}
		report.Unmatched++
		report.UnmatchedNames = append(report.UnmatchedNames, r.Get(mainName).String())
	}
	report.Suggestions = suggest(report.UnmatchedNames, uniq, schema.NameColumn)

	metrics.RecordNameMatches(report.Matched, report.Unmatched)
	log.Info(ctx, "external statistics attached",
		logger.Int("total", report.Total),
		logger.Int("matched", report.Matched),
		logger.Int("unmatched", report.Unmatched))
	if report.Unmatched > 0 {
		log.Warn(ctx, "players without external statistics", logger.Strings("names", report.UnmatchedNames))
	}
	return joined.Drop(nameKeyColumn, matchedColumn), report, nil
}

func withNameKey(f *frame.Frame, col string) (*frame.Frame, error) {
	if !f.Has(col) {
		_, err := f.Select(col)
		return nil, err
	}
	return f.WithColumn(nameKeyColumn, func(r frame.Record) frame.Value {
		s, ok := r.Get(col).Str()
		if !ok {
			return frame.Null()
		}
		return frame.Text(NormalizeName(s))
	}), nil
}

// collapseByName folds rows of f that share nameKeyColumn into the first such
// row. A later row whose idCol is null, or equal to the kept id, fills the
// kept row's null cells. A later row with a different non-null id is dropped.
// Rows with a null name key are kept as is.
func collapseByName(f *frame.Frame, idCol string) (out *frame.Frame, merged, dropped int, err error) {
	cols := f.Columns()
	at := make(map[string]int, f.Len())
	rows := make([][]frame.Value, 0, f.Len())
	ids := make([]frame.Value, 0, f.Len())
	for _, r := range f.Records() {
		row := make([]frame.Value, len(cols))
		for j, c := range cols {
			row[j] = r.Get(c)
		}
		id := r.Get(idCol)

		key, ok := frame.Key(r, nameKeyColumn)
		if !ok {
			rows = append(rows, row)
			ids = append(ids, id)
			continue
		}
		i, seen := at[key]
		if !seen {
			at[key] = len(rows)
			rows = append(rows, row)
			ids = append(ids, id)
			continue
		}
		if !id.IsNull() && !ids[i].IsNull() && !id.Equal(ids[i]) {
			dropped++
			continue
		}
		kept := rows[i]
		for j := range kept {
			if kept[j].IsNull() {
				kept[j] = row[j]
			}
		}
		if ids[i].IsNull() {
			ids[i] = id
		}
		merged++
	}
	out, err = frame.FromRows(cols, rows)
	return out, merged, dropped, err
}

// suggest finds, for each unmatched name, the statistics name with the
// highest Jaro-Winkler similarity after normalization.
func suggest(unmatched []string, stats *frame.Frame, nameCol string) []Suggestion {
	if len(unmatched) == 0 {
		return nil
	}
	type candidate struct{ raw, key string }
	var pool []candidate
	for _, r := range stats.Records() {
		if s, ok := r.Get(nameCol).Str(); ok {
			pool = append(pool, candidate{raw: s, key: NormalizeName(s)})
		}
	}
	if len(pool) == 0 {
		return nil
	}

	out := make([]Suggestion, 0, len(unmatched))
	for _, name := range unmatched {
		key := NormalizeName(name)
		best := Suggestion{Name: name}
		for _, c := range pool {
			if sim := matchr.JaroWinkler(key, c.key, false); sim > best.Score {
				best.Score = sim
				best.Closest = c.raw
			}
		}
		if best.Score > 0 {
			out = append(out, best)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
