// Package model contains the typed records parsed from the catalog API and
// the column names used when they become frames.
package model

// Role discriminates which attribute set applies to a card.
type Role uint8

const (
	// RoleUnknown means the source did not say. Such cards are dropped by
	// the splitter.
	RoleUnknown Role = iota
	RoleHitter
	RolePitcher
)

func (r Role) String() string {
	switch r {
	case RoleHitter:
		return "hitter"
	case RolePitcher:
		return "pitcher"
	default:
		return "unknown"
	}
}

// MaxRating is the highest attribute rating a card can carry.
const MaxRating = 115

// HittingAttributes are the batting ratings, each on a 0..MaxRating scale.
type HittingAttributes struct {
	ContactLeft     int
	ContactRight    int
	PowerLeft       int
	PowerRight      int
	PlateVision     int
	PlateDiscipline int
}

// PitchingAttributes are per-batter-faced rates.
type PitchingAttributes struct {
	HitsPerBF float64
	KPerBF    float64
	BBPerBF   float64
	HRPerBF   float64
}

// AttributeRecord is one card's attributes. Exactly one of Hitting and
// Pitching is set for a known role; both are nil for RoleUnknown.
type AttributeRecord struct {
	ID       string
	Name     string
	Overall  int
	Position string
	Role     Role
	Hitting  *HittingAttributes
	Pitching *PitchingAttributes
}

// RosterChangeEvent is one player's rating change in a roster update.
// ID is empty when the source omitted the nested item.
type RosterChangeEvent struct {
	ID        string
	Name      string
	OldRating int
	NewRating int
}

// UpgradeLabel is 1 iff the new rating is strictly greater than the old one.
// Unchanged ratings are labeled 0 together with downgrades.
func UpgradeLabel(oldRating, newRating int) int {
	if newRating > oldRating {
		return 1
	}
	return 0
}

// Label returns the event's upgrade label.
func (e RosterChangeEvent) Label() int { return UpgradeLabel(e.OldRating, e.NewRating) }

// HasID reports whether the event carries a card identifier.
func (e RosterChangeEvent) HasID() bool { return e.ID != "" }
