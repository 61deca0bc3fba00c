// Package scoring maps a player's sparse skill ratings to per-position
// fitness scores and picks a recommended position.
package scoring

import (
	"bytes"
	"encoding/json"
	"math"
)

// scorePrecision is the number of decimals kept on position scores.
const scorePrecision = 2

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithWeights sets the position weight table.
func WithWeights(w Weights) Option {
	return func(m *Model) {
		if w.Len() > 0 {
			m.weights = w
		}
	}
}

// Model computes position fitness scores from a fixed weight table.
type Model struct {
	weights Weights
}

// New creates a Model. Without options it uses DefaultWeights.
func New(opts ...Option) *Model {
	m := &Model{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Weights returns the table the model scores with.
func (m *Model) Weights() Weights { return m.weights }

// PositionScores computes one score per position, in table order.
//
// A position's score is the weighted mean of the ratings of skills that are
// both rated and weighted above zero, rounded to 2 decimals. When no such
// skill exists the score is nil.
func (m *Model) PositionScores(ratings map[string]int) Scores {
	out := make(Scores, 0, len(m.weights.positions))
	for _, p := range m.weights.positions {
		var num, den float64
		for skill, w := range p.Skills {
			r, ok := ratings[skill]
			if !ok || w <= 0 {
				continue
			}
			num += float64(r) * w
			den += w
		}
		ps := PositionScore{Position: p.Position}
		if den > 0 {
			v := Round(num/den, scorePrecision)
			ps.Score = &v
		}
		out = append(out, ps)
	}
	return out
}

// Recommend returns the scores and the best position for ratings.
func (m *Model) Recommend(ratings map[string]int) (Scores, string, bool) {
	scores := m.PositionScores(ratings)
	best, ok := BestPosition(scores)
	return scores, best, ok
}

// BestPosition returns the position with the highest score. Equal maxima
// resolve to the position listed first. ok is false when no position has a
// score.
func BestPosition(scores Scores) (string, bool) {
	best := ""
	bestScore := math.Inf(-1)
	found := false
	for _, s := range scores {
		if s.Score == nil {
			continue
		}
		if !found || *s.Score > bestScore {
			best, bestScore, found = s.Position, *s.Score, true
		}
	}
	return best, found
}

// PositionScore is the fitness score of one position; Score is nil when the
// player has no rated skill relevant to that position.
type PositionScore struct {
	Position string   `json:"position"`
	Score    *float64 `json:"score"`
}

// Scores holds position scores in table order.
type Scores []PositionScore

// Get returns the score of pos; ok is false when absent or unscored.
func (s Scores) Get(pos string) (float64, bool) {
	for _, ps := range s {
		if ps.Position == pos && ps.Score != nil {
			return *ps.Score, true
		}
	}
	return 0, false
}

// Scored reports whether at least one position has a score.
func (s Scores) Scored() bool {
	_, ok := BestPosition(s)
	return ok
}

// MarshalJSON encodes scores as an object keyed by position, preserving
// table order; unscored positions are null.
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ps := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ps.Position)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if ps.Score == nil {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(*ps.Score)
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Round rounds x half to even to places decimals.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.RoundToEven(x*p) / p
}

// Float returns a pointer to v; handy for building Scores literals.
func Float(v float64) *float64 { return &v }
