package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyPayload marks an upstream attribute object with no usable content.
var ErrEmptyPayload = errors.New("empty attribute payload")

type itemPayload struct {
	Name            *string  `json:"name"`
	Overall         *float64 `json:"ovr"`
	DisplayPosition string   `json:"display_position"`
	IsHitter        *bool    `json:"is_hitter"`

	ContactLeft     *float64 `json:"contact_left"`
	ContactRight    *float64 `json:"contact_right"`
	PowerLeft       *float64 `json:"power_left"`
	PowerRight      *float64 `json:"power_right"`
	PlateVision     *float64 `json:"plate_vision"`
	PlateDiscipline *float64 `json:"plate_discipline"`

	HitsPerBF *float64 `json:"hits_per_bf"`
	KPerBF    *float64 `json:"k_per_bf"`
	BBPerBF   *float64 `json:"bb_per_bf"`
	HRPerBF   *float64 `json:"hr_per_bf"`
}

// ParseAttributeRecord validates a raw catalog item and returns its typed
// record. A payload with no name, rating, or role is ErrEmptyPayload. A
// missing role flag yields RoleUnknown with no attribute set.
func ParseAttributeRecord(id string, raw []byte) (AttributeRecord, error) {
	src := "item " + id
	var p itemPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return AttributeRecord{}, &ParseError{Source: src, Reason: err.Error()}
	}
	if p.Name == nil && p.Overall == nil && p.IsHitter == nil {
		return AttributeRecord{}, fmt.Errorf("%s: %w", src, ErrEmptyPayload)
	}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		return AttributeRecord{}, &ParseError{Source: src, Field: "name", Reason: "missing"}
	}
	ovr, err := wholeNumber(src, "ovr", p.Overall)
	if err != nil {
		return AttributeRecord{}, err
	}

	rec := AttributeRecord{
		ID:       id,
		Name:     *p.Name,
		Overall:  ovr,
		Position: p.DisplayPosition,
	}
	if p.IsHitter == nil {
		return rec, nil
	}

	if *p.IsHitter {
		rec.Role = RoleHitter
		h, err := p.hitting(src)
		if err != nil {
			return AttributeRecord{}, err
		}
		rec.Hitting = &h
		return rec, nil
	}

	rec.Role = RolePitcher
	pt, err := p.pitching(src)
	if err != nil {
		return AttributeRecord{}, err
	}
	rec.Pitching = &pt
	return rec, nil
}

func (p itemPayload) hitting(src string) (HittingAttributes, error) {
	var h HittingAttributes
	fields := []struct {
		name string
		val  *float64
		dst  *int
	}{
		{"contact_left", p.ContactLeft, &h.ContactLeft},
		{"contact_right", p.ContactRight, &h.ContactRight},
		{"power_left", p.PowerLeft, &h.PowerLeft},
		{"power_right", p.PowerRight, &h.PowerRight},
		{"plate_vision", p.PlateVision, &h.PlateVision},
		{"plate_discipline", p.PlateDiscipline, &h.PlateDiscipline},
	}
	for _, f := range fields {
		v, err := wholeNumber(src, f.name, f.val)
		if err != nil {
			return HittingAttributes{}, err
		}
		if v < 0 || v > MaxRating {
			return HittingAttributes{}, &ParseError{Source: src, Field: f.name, Reason: fmt.Sprintf("rating %d outside 0..%d", v, MaxRating)}
		}
		*f.dst = v
	}
	return h, nil
}

func (p itemPayload) pitching(src string) (PitchingAttributes, error) {
	var pt PitchingAttributes
	fields := []struct {
		name string
		val  *float64
		dst  *float64
	}{
		{"hits_per_bf", p.HitsPerBF, &pt.HitsPerBF},
		{"k_per_bf", p.KPerBF, &pt.KPerBF},
		{"bb_per_bf", p.BBPerBF, &pt.BBPerBF},
		{"hr_per_bf", p.HRPerBF, &pt.HRPerBF},
	}
	for _, f := range fields {
		if f.val == nil {
			return PitchingAttributes{}, &ParseError{Source: src, Field: f.name, Reason: "missing"}
		}
		if *f.val < 0 {
			return PitchingAttributes{}, &ParseError{Source: src, Field: f.name, Reason: "negative rate"}
		}
		*f.dst = *f.val
	}
	return pt, nil
}

type rosterPayload struct {
	AttributeChanges []struct {
		Name        string   `json:"name"`
		OldRank     *float64 `json:"old_rank"`
		CurrentRank *float64 `json:"current_rank"`
		Item        *struct {
			UUID string `json:"uuid"`
		} `json:"item"`
	} `json:"attribute_changes"`
}

// ParseRosterUpdate validates a raw roster update and returns one event per
// attribute change, in payload order. A missing nested item leaves the
// event's ID empty.
func ParseRosterUpdate(updateID int, raw []byte) ([]RosterChangeEvent, error) {
	src := fmt.Sprintf("roster update %d", updateID)
	var p rosterPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &ParseError{Source: src, Reason: err.Error()}
	}

	events := make([]RosterChangeEvent, 0, len(p.AttributeChanges))
	for i, c := range p.AttributeChanges {
		at := fmt.Sprintf("%s change %d", src, i)
		oldRating, err := wholeNumber(at, "old_rank", c.OldRank)
		if err != nil {
			return nil, err
		}
		newRating, err := wholeNumber(at, "current_rank", c.CurrentRank)
		if err != nil {
			return nil, err
		}
		ev := RosterChangeEvent{
			Name:      c.Name,
			OldRating: oldRating,
			NewRating: newRating,
		}
		if c.Item != nil {
			ev.ID = c.Item.UUID
		}
		events = append(events, ev)
	}
	return events, nil
}

func wholeNumber(src, field string, v *float64) (int, error) {
	if v == nil {
		return 0, &ParseError{Source: src, Field: field, Reason: "missing"}
	}
	if *v != math.Trunc(*v) {
		return 0, &ParseError{Source: src, Field: field, Reason: fmt.Sprintf("%v is not a whole number", *v)}
	}
	return int(*v), nil
}
