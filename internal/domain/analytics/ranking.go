package analytics

import (
	"cmp"
	"slices"
)

// TopPerMatch is the size of the match podium.
const TopPerMatch = 3

// MatchRanking is one player's line in a match ranking.
type MatchRanking struct {
	PlayerID int     `json:"player_id"`
	Player   string  `json:"player"`
	Rating   float64 `json:"rating"`
	Minutes  int     `json:"minutes"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
}

// TopThreeForMatch returns the three best rated players of a match.
func TopThreeForMatch(rows []PerformanceRow, matchID int) []MatchRanking {
	return TopForMatch(rows, matchID, TopPerMatch)
}

// TopForMatch ranks the performances of matchID by overall rating, rounded
// to 2 decimals, and keeps the first n. Equal ratings keep sheet order. An
// unknown match yields an empty list.
func TopForMatch(rows []PerformanceRow, matchID, n int) []MatchRanking {
	out := make([]MatchRanking, 0)
	for _, r := range rows {
		if r.MatchID != matchID {
			continue
		}
		out = append(out, MatchRanking{
			PlayerID: r.PlayerID,
			Player:   r.Player,
			Rating:   round2(r.Overall),
			Minutes:  r.Minutes,
			Goals:    r.Goals,
			Assists:  r.Assists,
		})
	}
	slices.SortStableFunc(out, func(a, b MatchRanking) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
