package analytics

import "github.com/okian/pitchside/internal/domain/model"

// PerformanceRow is one performance joined with its match and player.
type PerformanceRow struct {
	PlayerID    int        `json:"player_id"`
	Player      string     `json:"player"`
	Date        model.Date `json:"date"`
	MatchID     int        `json:"match_id"`
	Opponent    string     `json:"opponent"`
	Competition string     `json:"competition"`
	Position    string     `json:"position"`
	Minutes     int        `json:"minutes"`
	Tech        int        `json:"tech"`
	Phys        int        `json:"phys"`
	Tact        int        `json:"tact"`
	Mental      int        `json:"mental"`
	Goals       int        `json:"goals"`
	Assists     int        `json:"assists"`
	Overall     float64    `json:"overall"`
}

// FlattenPerformances returns one row per performance, in match order then
// sheet order. Performances of players missing from the roster are dropped.
// The result is never nil.
func FlattenPerformances(src Source) []PerformanceRow {
	players := roster(src)
	rows := make([]PerformanceRow, 0)
	for _, m := range src.MatchHistory() {
		for _, perf := range m.Performances {
			p, ok := players[perf.PlayerID]
			if !ok {
				continue
			}
			rows = append(rows, PerformanceRow{
				PlayerID:    p.ID,
				Player:      p.Name,
				Date:        m.Date,
				MatchID:     m.ID,
				Opponent:    m.Opponent,
				Competition: m.Competition,
				Position:    perf.Position,
				Minutes:     perf.Minutes,
				Tech:        perf.Tech,
				Phys:        perf.Phys,
				Tact:        perf.Tact,
				Mental:      perf.Mental,
				Goals:       perf.Goals,
				Assists:     perf.Assists,
				Overall:     perf.Overall(),
			})
		}
	}
	return rows
}
