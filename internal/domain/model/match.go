package model

import "strings"

// Match is a fixture with the performances recorded for it, in entry order.
type Match struct {
	ID           int           `json:"id" validate:"gte=1"`
	Date         Date          `json:"date"`
	Opponent     string        `json:"opponent" validate:"required"`
	Competition  string        `json:"competition"`
	Performances []Performance `json:"performances" validate:"dive"`
}

// Identifier returns the match id.
func (m Match) Identifier() int { return m.ID }

// Validate checks the match header and every performance.
func (m Match) Validate() error {
	if m.Date.IsZero() {
		return wrapInvalid("match date must be set")
	}
	if strings.TrimSpace(m.Opponent) == "" {
		return wrapInvalid("match opponent must not be empty")
	}
	return validateStruct(m)
}

// Label is the display label used by match pickers.
func (m Match) Label() string {
	return m.Date.String() + " – " + m.Opponent + " (" + m.Competition + ")"
}

// Clone returns a deep copy.
func (m Match) Clone() Match {
	out := m
	out.Performances = append([]Performance(nil), m.Performances...)
	return out
}

// Performance is one player's sheet for one match. PlayerID is a weak
// reference: the player may no longer be on the roster.
type Performance struct {
	PlayerID int    `json:"player_id" validate:"gte=1"`
	Position string `json:"position" validate:"required"`
	Minutes  int    `json:"minutes" validate:"gte=0,lte=90"`
	Tech     int    `json:"tech" validate:"min=1,max=5"`
	Phys     int    `json:"phys" validate:"min=1,max=5"`
	Tact     int    `json:"tact" validate:"min=1,max=5"`
	Mental   int    `json:"mental" validate:"min=1,max=5"`
	Goals    int    `json:"goals" validate:"gte=0"`
	Assists  int    `json:"assists" validate:"gte=0"`
	Comment  string `json:"comment"`
}

// Validate checks minutes and sub-rating ranges.
func (p Performance) Validate() error {
	return validateStruct(p)
}

// Overall is the unweighted mean of the four sub-ratings.
func (p Performance) Overall() float64 {
	return float64(p.Tech+p.Phys+p.Tact+p.Mental) / 4
}
