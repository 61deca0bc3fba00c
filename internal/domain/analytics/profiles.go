package analytics

import "github.com/okian/pitchside/internal/domain/scoring"

// ProfileRow is a roster player's declared and recommended position along
// with every position score.
type ProfileRow struct {
	PlayerID    int            `json:"player_id"`
	Player      string         `json:"player"`
	Preferred   string         `json:"preferred"`
	Recommended string         `json:"recommended"`
	Scores      scoring.Scores `json:"scores"`
}

// BuildProfileRows scores every roster player, in roster order. Preferred
// and Recommended are empty when unknown.
func BuildProfileRows(src Source, m *scoring.Model) []ProfileRow {
	players := src.Roster()
	out := make([]ProfileRow, 0, len(players))
	for _, p := range players {
		scores, best, _ := m.Recommend(p.BaseRatings)
		out = append(out, ProfileRow{
			PlayerID:    p.ID,
			Player:      p.Name,
			Preferred:   p.Preferred(),
			Recommended: best,
			Scores:      scores,
		})
	}
	return out
}
