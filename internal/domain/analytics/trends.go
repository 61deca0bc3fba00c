package analytics

import (
	"cmp"
	"slices"

	"github.com/okian/pitchside/internal/domain/model"
)

// Trend window defaults.
const (
	DefaultWindowDays = 30
	DefaultTopN       = 5
)

// PlayerTrend compares a player's mean overall rating between the recent
// and the prior window.
type PlayerTrend struct {
	PlayerID int     `json:"player_id"`
	Player   string  `json:"player"`
	Recent   float64 `json:"recent"`
	Prior    float64 `json:"prior"`
	Delta    float64 `json:"delta"`
}

// Progress is the output of ComputeProgressDeltas.
type Progress struct {
	All        []PlayerTrend `json:"all"`
	Improving  []PlayerTrend `json:"improving"`
	Struggling []PlayerTrend `json:"struggling"`
}

// TrendOption configures ComputeProgressDeltas.
type TrendOption func(*trendConfig)

type trendConfig struct {
	windowDays int
	topN       int
}

// WithWindowDays sets the length of each window in days.
func WithWindowDays(n int) TrendOption {
	return func(c *trendConfig) {
		if n > 0 {
			c.windowDays = n
		}
	}
}

// WithTopN sets how many players the Improving and Struggling lists keep.
func WithTopN(n int) TrendOption {
	return func(c *trendConfig) {
		if n > 0 {
			c.topN = n
		}
	}
}

type accumulator struct {
	id    int
	sum   float64
	count int
}

// ComputeProgressDeltas compares each player's mean overall rating over
// [today-w, today] against [today-2w, today-w), w being the window length.
// Rows dated after today are ignored. Players are grouped by name, so
// homonyms share one trend; PlayerID is the first id seen in the recent
// window. Only names present in both windows are reported. When either
// window is empty every list is empty.
//
// All is ordered by player name. Improving and Struggling hold the top N by
// delta, descending and ascending; equal deltas keep name order.
func ComputeProgressDeltas(rows []PerformanceRow, today model.Date, opts ...TrendOption) Progress {
	cfg := trendConfig{windowDays: DefaultWindowDays, topN: DefaultTopN}
	for _, opt := range opts {
		opt(&cfg)
	}
	recentStart := today.AddDays(-cfg.windowDays)
	priorStart := today.AddDays(-2 * cfg.windowDays)

	recent := map[string]*accumulator{}
	prior := map[string]*accumulator{}
	for _, r := range rows {
		var bucket map[string]*accumulator
		switch {
		case r.Date.After(today):
			continue
		case !r.Date.Before(recentStart):
			bucket = recent
		case !r.Date.Before(priorStart):
			bucket = prior
		default:
			continue
		}
		acc, ok := bucket[r.Player]
		if !ok {
			acc = &accumulator{id: r.PlayerID}
			bucket[r.Player] = acc
		}
		acc.sum += r.Overall
		acc.count++
	}

	out := Progress{All: []PlayerTrend{}, Improving: []PlayerTrend{}, Struggling: []PlayerTrend{}}
	if len(recent) == 0 || len(prior) == 0 {
		return out
	}

	for name, r := range recent {
		p, ok := prior[name]
		if !ok {
			continue
		}
		rm := mean(r.sum, r.count)
		pm := mean(p.sum, p.count)
		out.All = append(out.All, PlayerTrend{
			PlayerID: r.id,
			Player:   name,
			Recent:   round2(rm),
			Prior:    round2(pm),
			Delta:    round2(rm - pm),
		})
	}
	slices.SortFunc(out.All, func(a, b PlayerTrend) int {
		return byName(a.Player, a.PlayerID, b.Player, b.PlayerID)
	})

	out.Improving = topTrends(out.All, cfg.topN, func(a, b PlayerTrend) int { return cmp.Compare(b.Delta, a.Delta) })
	out.Struggling = topTrends(out.All, cfg.topN, func(a, b PlayerTrend) int { return cmp.Compare(a.Delta, b.Delta) })
	return out
}

func topTrends(all []PlayerTrend, n int, order func(a, b PlayerTrend) int) []PlayerTrend {
	sorted := slices.Clone(all)
	slices.SortStableFunc(sorted, order)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
