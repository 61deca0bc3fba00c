package model

import (
	"fmt"
	"slices"
	"strings"
)

// Training session types.
const (
	TrainingTechnique    = "Technique"
	TrainingPhysical     = "Physique"
	TrainingGame         = "Match / Jeu"
	TrainingCoordination = "Coordination / Motricité"
	TrainingOther        = "Autre"
)

// TrainingTypes lists the accepted session types.
var TrainingTypes = []string{TrainingTechnique, TrainingPhysical, TrainingGame, TrainingCoordination, TrainingOther} //nolint:gochecknoglobals // read-only table

// Training is a session with its attendance sheet.
type Training struct {
	ID          int          `json:"id" validate:"gte=1"`
	Date        Date         `json:"date"`
	Theme       string       `json:"theme" validate:"required"`
	Type        string       `json:"type"`
	Notes       string       `json:"notes"`
	Attendances []Attendance `json:"attendances" validate:"dive"`
}

// Identifier returns the training id.
func (t Training) Identifier() int { return t.ID }

// Validate checks the session header and the attendance sheet.
func (t Training) Validate() error {
	if t.Date.IsZero() {
		return wrapInvalid("training date must be set")
	}
	if strings.TrimSpace(t.Theme) == "" {
		return wrapInvalid("training theme must not be empty")
	}
	if !slices.Contains(TrainingTypes, t.Type) {
		return wrapInvalid(fmt.Sprintf("unknown training type %q", t.Type))
	}
	return validateStruct(t)
}

// Label is the display label used by session pickers.
func (t Training) Label() string {
	return t.Date.String() + " – " + t.Theme + " (" + t.Type + ")"
}

// Clone returns a deep copy.
func (t Training) Clone() Training {
	out := t
	out.Attendances = append([]Attendance(nil), t.Attendances...)
	return out
}

// Attendance is one player's line on a training sheet.
type Attendance struct {
	PlayerID int    `json:"player_id" validate:"gte=1"`
	Present  bool   `json:"present"`
	Effort   int    `json:"effort" validate:"min=1,max=5"`
	Focus    int    `json:"focus" validate:"min=1,max=5"`
	Comment  string `json:"comment"`
}

// Validate checks effort and focus ranges.
func (a Attendance) Validate() error {
	return validateStruct(a)
}
