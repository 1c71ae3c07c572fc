package fetch

import (
	"context"

	"github.com/okian/rosterlab/internal/domain/model"
	"github.com/okian/rosterlab/pkg/logger"
)

// RosterSource returns the raw payload of a roster update.
type RosterSource interface {
	RosterUpdate(ctx context.Context, updateID int) ([]byte, error)
}

// Loader reads roster updates. It does not cache.
type Loader struct {
	source RosterSource
	logger logger.Logger
}

// NewLoader returns a loader over source.
func NewLoader(source RosterSource, log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{source: source, logger: log}
}

// Load fetches and parses one roster update.
func (l *Loader) Load(ctx context.Context, updateID int) ([]model.RosterChangeEvent, error) {
	raw, err := l.source.RosterUpdate(ctx, updateID)
	if err != nil {
		return nil, err
	}
	events, err := model.ParseRosterUpdate(updateID, raw)
	if err != nil {
		return nil, err
	}
	l.logger.Info(ctx, "roster update loaded",
		logger.Int("update_id", updateID), logger.Int("events", len(events)))
	return events, nil
}

// Identifiers returns the distinct non-empty card identifiers of events in
// first-seen order.
func Identifiers(events []model.RosterChangeEvent) []string {
	seen := make(map[string]struct{}, len(events))
	var out []string
	for _, e := range events {
		if !e.HasID() {
			continue
		}
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		out = append(out, e.ID)
	}
	return out
}
