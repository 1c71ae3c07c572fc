package model

import "github.com/okian/rosterlab/internal/domain/frame"

// AttributesFrame lays records out in AttributeColumns order. The attribute
// set of the other role and the role flag of RoleUnknown cards are null.
func AttributesFrame(records []AttributeRecord) (*frame.Frame, error) {
	b := frame.NewBuilder(AttributeColumns...)
	for _, r := range records {
		row := map[string]frame.Value{
			ColPlayerName: frame.Text(r.Name),
			ColPlayerID:   frame.Text(r.ID),
			ColOverall:    frame.Int(r.Overall),
		}
		if r.Position != "" {
			row[ColPosition] = frame.Text(r.Position)
		}
		switch r.Role {
		case RoleHitter:
			row[ColIsHitter] = frame.Bool(true)
		case RolePitcher:
			row[ColIsHitter] = frame.Bool(false)
		}
		if h := r.Hitting; h != nil {
			row[ColContactLeft] = frame.Int(h.ContactLeft)
			row[ColContactRight] = frame.Int(h.ContactRight)
			row[ColPowerLeft] = frame.Int(h.PowerLeft)
			row[ColPowerRight] = frame.Int(h.PowerRight)
			row[ColVision] = frame.Int(h.PlateVision)
			row[ColDiscipline] = frame.Int(h.PlateDiscipline)
		}
		if p := r.Pitching; p != nil {
			row[ColHitsPerBF] = frame.Number(p.HitsPerBF)
			row[ColKPerBF] = frame.Number(p.KPerBF)
			row[ColBBPerBF] = frame.Number(p.BBPerBF)
			row[ColHRPerBF] = frame.Number(p.HRPerBF)
		}
		b.AddMap(row)
	}
	return b.Frame()
}

// RosterFrame lays events out in RosterColumns order. An absent identifier
// is null, and the label is always recomputed from the two ratings.
func RosterFrame(events []RosterChangeEvent) (*frame.Frame, error) {
	b := frame.NewBuilder(RosterColumns...)
	for _, e := range events {
		id := frame.Null()
		if e.HasID() {
			id = frame.Text(e.ID)
		}
		b.Add(
			frame.Text(e.Name),
			id,
			frame.Int(e.OldRating),
			frame.Int(e.NewRating),
			frame.Int(e.Label()),
		)
	}
	return b.Frame()
}
