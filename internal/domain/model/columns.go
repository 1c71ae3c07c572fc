package model

// Shared column names.
const (
	ColPlayerID   = "player_id"
	ColPlayerName = "player_name"
	ColIsHitter   = "is_hitter"
)

// Attribute table columns.
const (
	ColOverall      = "overall_rating"
	ColPosition     = "position"
	ColContactLeft  = "contact_left"
	ColContactRight = "contact_right"
	ColPowerLeft    = "power_left"
	ColPowerRight   = "power_right"
	ColVision       = "vision"
	ColDiscipline   = "discipline"
	ColHitsPerBF    = "hits_per_bf"
	ColKPerBF       = "k_per_bf"
	ColBBPerBF      = "bb_per_bf"
	ColHRPerBF      = "hr_per_bf"
)

// Roster change table columns.
const (
	ColOldOverall   = "old_overall"
	ColNewOverall   = "new_overall"
	ColUpgradeLabel = "upgrade_label"
)

// HittingColumns are only meaningful for hitters.
var HittingColumns = []string{
	ColContactLeft, ColContactRight, ColPowerLeft, ColPowerRight, ColVision, ColDiscipline,
}

// PitchingColumns are only meaningful for pitchers.
var PitchingColumns = []string{
	ColHitsPerBF, ColKPerBF, ColBBPerBF, ColHRPerBF,
}

// AttributeColumns is the column order of an unsplit attribute table.
var AttributeColumns = append(append([]string{
	ColPlayerName, ColPlayerID, ColOverall, ColPosition, ColIsHitter,
}, HittingColumns...), PitchingColumns...)

// RosterColumns is the column order of a roster change table.
var RosterColumns = []string{
	ColPlayerName, ColPlayerID, ColOldOverall, ColNewOverall, ColUpgradeLabel,
}
