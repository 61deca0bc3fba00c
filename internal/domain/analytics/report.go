package analytics

import (
	"slices"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
)

// SkillRating is one rated skill on a report card.
type SkillRating struct {
	Skill  string `json:"skill"`
	Rating int    `json:"rating"`
}

// Report is a player's report card.
type Report struct {
	PlayerID    int               `json:"player_id"`
	Player      string            `json:"player"`
	BirthYear   int               `json:"birth_year,omitempty"`
	Preferred   string            `json:"preferred"`
	Foot        string            `json:"foot"`
	Ratings     []SkillRating     `json:"ratings"`
	Scores      scoring.Scores    `json:"scores"`
	Recommended string            `json:"recommended"`
	Attendance  AttendanceSummary `json:"attendance"`
	Matches     MatchSummary      `json:"matches"`
}

// BuildReport assembles the report card of playerID. Ratings follow the
// order of skills; rated skills outside that list follow alphabetically.
// ok is false when the player is not on the roster.
func BuildReport(src Source, m *scoring.Model, skills []string, playerID int) (Report, bool) {
	p, ok := src.FindPlayer(playerID)
	if !ok {
		return Report{}, false
	}
	scores, best, _ := m.Recommend(p.BaseRatings)
	return Report{
		PlayerID:    p.ID,
		Player:      p.Name,
		BirthYear:   p.BirthYear,
		Preferred:   p.Preferred(),
		Foot:        p.StrongFoot(),
		Ratings:     orderedRatings(p, skills),
		Scores:      scores,
		Recommended: best,
		Attendance:  SummarizeAttendance(src, playerID),
		Matches:     SummarizeMatches(src, playerID),
	}, true
}

func orderedRatings(p model.Player, skills []string) []SkillRating {
	out := make([]SkillRating, 0, len(p.BaseRatings))
	listed := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		listed[s] = struct{}{}
		if r, ok := p.BaseRatings[s]; ok {
			out = append(out, SkillRating{Skill: s, Rating: r})
		}
	}
	extra := make([]string, 0)
	for s := range p.BaseRatings {
		if _, ok := listed[s]; !ok {
			extra = append(extra, s)
		}
	}
	slices.Sort(extra)
	for _, s := range extra {
		out = append(out, SkillRating{Skill: s, Rating: p.BaseRatings[s]})
	}
	return out
}
