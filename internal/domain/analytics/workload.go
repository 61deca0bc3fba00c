package analytics

import (
	"cmp"
	"slices"
)

// Workload is a player's match count and minutes.
type Workload struct {
	PlayerID        int     `json:"player_id"`
	Player          string  `json:"player"`
	Matches         int     `json:"matches"`
	TotalMinutes    int     `json:"total_minutes"`
	MinutesPerMatch float64 `json:"minutes_per_match"`
}

// Workloads is a list of Workload rows.
type Workloads []Workload

// AggregateMinutes sums minutes per player name; PlayerID is the first id
// seen for that name. Rows are ordered by player name.
func AggregateMinutes(rows []PerformanceRow) Workloads {
	index := map[string]int{}
	out := make(Workloads, 0)
	for _, r := range rows {
		i, ok := index[r.Player]
		if !ok {
			i = len(out)
			index[r.Player] = i
			out = append(out, Workload{PlayerID: r.PlayerID, Player: r.Player})
		}
		out[i].Matches++
		out[i].TotalMinutes += r.Minutes
	}
	for i := range out {
		out[i].MinutesPerMatch = round1(mean(float64(out[i].TotalMinutes), out[i].Matches))
	}
	slices.SortFunc(out, func(a, b Workload) int {
		return byName(a.Player, a.PlayerID, b.Player, b.PlayerID)
	})
	return out
}

// ByTotalMinutes returns a copy ordered by total minutes, most played first.
func (w Workloads) ByTotalMinutes() Workloads {
	out := slices.Clone(w)
	slices.SortStableFunc(out, func(a, b Workload) int {
		return cmp.Compare(b.TotalMinutes, a.TotalMinutes)
	})
	return out
}
