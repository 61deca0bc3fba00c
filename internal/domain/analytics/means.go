package analytics

import "slices"

// MatchMeans is a player's average match sub-ratings and attacking totals.
type MatchMeans struct {
	PlayerID int     `json:"player_id"`
	Player   string  `json:"player"`
	Matches  int     `json:"matches"`
	Tech     float64 `json:"tech"`
	Phys     float64 `json:"phys"`
	Tact     float64 `json:"tact"`
	Mental   float64 `json:"mental"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
}

type meansAcc struct {
	MatchMeans
	tech, phys, tact, mental int
}

func (a *meansAcc) add(r PerformanceRow) {
	a.Matches++
	a.tech += r.Tech
	a.phys += r.Phys
	a.tact += r.Tact
	a.mental += r.Mental
	a.Goals += r.Goals
	a.Assists += r.Assists
}

func (a *meansAcc) result() MatchMeans {
	out := a.MatchMeans
	out.Tech = round2(mean(float64(a.tech), a.Matches))
	out.Phys = round2(mean(float64(a.phys), a.Matches))
	out.Tact = round2(mean(float64(a.tact), a.Matches))
	out.Mental = round2(mean(float64(a.mental), a.Matches))
	return out
}

// AggregateMatchMeans averages each player's tech, phys, tact and mental
// ratings over every match sheet (2 decimals) and sums goals and assists.
// Players are grouped by name; PlayerID is the first id seen for that name.
// Rows are ordered by player name; dangling references are dropped.
func AggregateMatchMeans(src Source) []MatchMeans {
	accs := map[string]*meansAcc{}
	for _, r := range FlattenPerformances(src) {
		acc, ok := accs[r.Player]
		if !ok {
			acc = &meansAcc{MatchMeans: MatchMeans{PlayerID: r.PlayerID, Player: r.Player}}
			accs[r.Player] = acc
		}
		acc.add(r)
	}
	out := make([]MatchMeans, 0, len(accs))
	for _, acc := range accs {
		out = append(out, acc.result())
	}
	slices.SortFunc(out, func(a, b MatchMeans) int {
		return byName(a.Player, a.PlayerID, b.Player, b.PlayerID)
	})
	return out
}
