// Package analytics derives the coach-facing tables from a squad document:
// flattened performances, progress trends, workload, match rankings,
// position profiles and report cards.
//
// Every function here is pure. Inputs are never mutated, the wall clock is
// never read and no I/O happens; callers pass "today" explicitly.
package analytics

import (
	"cmp"
	"strings"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
)

// UnknownPlayer is displayed for performances and attendances whose player
// id is not on the roster.
const UnknownPlayer = "Inconnu"

// Source is read access to a squad document. *model.Data implements it.
type Source interface {
	Roster() []model.Player
	MatchHistory() []model.Match
	Sessions() []model.Training
	FindPlayer(id int) (model.Player, bool)
}

var _ Source = (*model.Data)(nil)

func round2(x float64) float64 { return scoring.Round(x, 2) }

func round1(x float64) float64 { return scoring.Round(x, 1) }

// roster indexes players by id.
func roster(src Source) map[int]model.Player {
	players := src.Roster()
	out := make(map[int]model.Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}

// nameOf returns the roster name of id or UnknownPlayer.
func nameOf(players map[int]model.Player, id int) string {
	if p, ok := players[id]; ok {
		return p.Name
	}
	return UnknownPlayer
}

// byName orders by display name, then by id so homonyms stay distinct.
func byName(aName string, aID int, bName string, bID int) int {
	if c := strings.Compare(aName, bName); c != 0 {
		return c
	}
	return cmp.Compare(aID, bID)
}

// mean divides sum by n, or returns 0 when n is zero.
func mean(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
