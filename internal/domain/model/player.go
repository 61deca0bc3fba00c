// Package model contains the typed records of the squad document.
package model

import "strings"

// Field positions.
const (
	PositionGoalkeeper = "Gardien"
	PositionDefender   = "Défenseur"
	PositionMidfielder = "Milieu"
	PositionForward    = "Attaquant"
)

// Positions lists field positions in their canonical order.
var Positions = []string{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward} //nolint:gochecknoglobals // read-only table

// Rating bounds shared by skill ratings, match sub-ratings and attendance scores.
const (
	MinRating  = 1
	MaxRating  = 5
	MaxMinutes = 90
)

// Player is a roster entry. BaseRatings is sparse: a missing skill has not
// been assessed yet, which is different from a low rating.
type Player struct {
	ID                int            `json:"id" validate:"gte=1"`
	Name              string         `json:"name" validate:"required"`
	BirthYear         int            `json:"birth_year" validate:"omitempty,gte=1900,lte=2100"`
	PreferredPosition *string        `json:"preferred_position"`
	Foot              *string        `json:"foot" validate:"omitempty,oneof=Droit Gauche Ambidextre"`
	BaseRatings       map[string]int `json:"base_ratings" validate:"dive,keys,required,endkeys,min=1,max=5"`
}

// Identifier returns the player id.
func (p Player) Identifier() int { return p.ID }

// Validate checks the rating ranges and required fields.
func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return wrapInvalid("player name must not be empty")
	}
	return validateStruct(p)
}

// Preferred returns the declared preferred position or "".
func (p Player) Preferred() string {
	if p.PreferredPosition == nil {
		return ""
	}
	return *p.PreferredPosition
}

// StrongFoot returns the declared foot or "".
func (p Player) StrongFoot() string {
	if p.Foot == nil {
		return ""
	}
	return *p.Foot
}

// Clone returns a deep copy.
func (p Player) Clone() Player {
	out := p
	if p.PreferredPosition != nil {
		v := *p.PreferredPosition
		out.PreferredPosition = &v
	}
	if p.Foot != nil {
		v := *p.Foot
		out.Foot = &v
	}
	if p.BaseRatings != nil {
		out.BaseRatings = make(map[string]int, len(p.BaseRatings))
		for k, v := range p.BaseRatings {
			out.BaseRatings[k] = v
		}
	}
	return out
}

// OptionalString returns nil for blank input, otherwise a pointer to the
// trimmed value.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
