package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/pitchside/internal/domain/model"
)

// Skill names.
const (
	SkillBallCarrying = "Conduite de balle"
	SkillDribbling    = "Dribble"
	SkillShortPassing = "Passes courtes"
	SkillLongPassing  = "Passes longues"
	SkillFirstTouch   = "Contrôle"
	SkillShooting     = "Frappe"
	SkillSpeed        = "Vitesse"
	SkillStamina      = "Endurance"
	SkillCoordination = "Coordination"
	SkillPositioning  = "Placement"
	SkillGameReading  = "Lecture du jeu"
	SkillTracking     = "Replacement défensif"
	SkillFocus        = "Concentration"
	SkillFighting     = "Combativité"
	SkillTeamSpirit   = "Esprit d'équipe"
	SkillShotStopping = "Arrêts"
	SkillDistribution = "Jeu au pied"
)

// DefaultSkills returns the canonical skill order used by report cards.
func DefaultSkills() []string {
	return []string{
		SkillBallCarrying, SkillDribbling, SkillShortPassing, SkillLongPassing, SkillFirstTouch, SkillShooting,
		SkillSpeed, SkillStamina, SkillCoordination,
		SkillPositioning, SkillGameReading, SkillTracking,
		SkillFocus, SkillFighting, SkillTeamSpirit,
		SkillShotStopping, SkillDistribution,
	}
}

// PositionWeights is the skill weight table of one position.
type PositionWeights struct {
	Position string
	Skills   map[string]float64
}

// Weights is an immutable, ordered position -> skill -> weight table. The
// order of positions is the tie-break order of BestPosition.
type Weights struct {
	positions []PositionWeights
}

// NewWeights validates and copies the given tables. Weights must be
// non-negative and positions unique and non-empty.
func NewWeights(tables ...PositionWeights) (Weights, error) {
	seen := make(map[string]struct{}, len(tables))
	out := make([]PositionWeights, 0, len(tables))
	for _, t := range tables {
		pos := strings.TrimSpace(t.Position)
		if pos == "" {
			return Weights{}, fmt.Errorf("%w: empty position name", ErrInvalidWeights)
		}
		if _, dup := seen[pos]; dup {
			return Weights{}, fmt.Errorf("%w: duplicate position %q", ErrInvalidWeights, pos)
		}
		seen[pos] = struct{}{}

		skills := make(map[string]float64, len(t.Skills))
		for skill, w := range t.Skills {
			if w < 0 {
				return Weights{}, fmt.Errorf("%w: negative weight for %s/%s", ErrInvalidWeights, pos, skill)
			}
			skills[skill] = w
		}
		out = append(out, PositionWeights{Position: pos, Skills: skills})
	}
	return Weights{positions: out}, nil
}

// WeightsFromTable builds Weights from an unordered table, using order for
// the listed positions and appending any others alphabetically.
func WeightsFromTable(order []string, table map[string]map[string]float64) (Weights, error) {
	listed := make(map[string]struct{}, len(order))
	tables := make([]PositionWeights, 0, len(table))
	for _, pos := range order {
		skills, ok := table[pos]
		if !ok {
			return Weights{}, fmt.Errorf("%w: no weights for position %q", ErrInvalidWeights, pos)
		}
		listed[pos] = struct{}{}
		tables = append(tables, PositionWeights{Position: pos, Skills: skills})
	}
	extra := make([]string, 0)
	for pos := range table {
		if _, ok := listed[pos]; !ok {
			extra = append(extra, pos)
		}
	}
	sort.Strings(extra)
	for _, pos := range extra {
		tables = append(tables, PositionWeights{Position: pos, Skills: table[pos]})
	}
	return NewWeights(tables...)
}

// DefaultWeights returns the built-in U9 weight table.
func DefaultWeights() Weights {
	w, err := WeightsFromTable(model.Positions, DefaultTable())
	if err != nil {
		panic(err) // static table
	}
	return w
}

// DefaultTable returns the built-in weights as a plain table, the shape used
// by configuration files.
func DefaultTable() map[string]map[string]float64 {
	return map[string]map[string]float64{
		model.PositionGoalkeeper: {
			SkillShotStopping: 3,
			SkillDistribution: 2,
			SkillPositioning:  2,
			SkillFocus:        2,
			SkillCoordination: 2,
			SkillShortPassing: 1,
			SkillLongPassing:  1,
			SkillStamina:      0,
		},
		model.PositionDefender: {
			SkillTracking:     3,
			SkillPositioning:  2,
			SkillGameReading:  2,
			SkillFighting:     2,
			SkillSpeed:        1,
			SkillShortPassing: 1,
			SkillLongPassing:  1,
			SkillStamina:      1,
			SkillFirstTouch:   1,
		},
		model.PositionMidfielder: {
			SkillShortPassing: 2,
			SkillLongPassing:  2,
			SkillFirstTouch:   2,
			SkillGameReading:  2,
			SkillStamina:      1,
			SkillBallCarrying: 1,
			SkillTeamSpirit:   1,
		},
		model.PositionForward: {
			SkillShooting:     3,
			SkillDribbling:    2,
			SkillBallCarrying: 2,
			SkillSpeed:        2,
			SkillFirstTouch:   1,
			SkillFighting:     1,
		},
	}
}

// Positions returns the positions in tie-break order.
func (w Weights) Positions() []string {
	out := make([]string, len(w.positions))
	for i, p := range w.positions {
		out[i] = p.Position
	}
	return out
}

// Skills returns a copy of the weight map of pos.
func (w Weights) Skills(pos string) (map[string]float64, bool) {
	for _, p := range w.positions {
		if p.Position == pos {
			out := make(map[string]float64, len(p.Skills))
			for k, v := range p.Skills {
				out[k] = v
			}
			return out, true
		}
	}
	return nil, false
}

// Len returns the number of positions.
func (w Weights) Len() int { return len(w.positions) }
