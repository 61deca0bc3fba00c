package analytics

// AttendanceSummary condenses a player's training record.
type AttendanceSummary struct {
	Sessions int     `json:"sessions"`
	Present  int     `json:"present"`
	Effort   float64 `json:"effort"`
	Focus    float64 `json:"focus"`
}

// Rate is the share of recorded sessions attended, in [0,1].
func (s AttendanceSummary) Rate() float64 {
	return round2(mean(float64(s.Present), s.Sessions))
}

// SummarizeAttendance counts the sessions recorded for playerID and averages
// effort and focus over all of them, present or not.
func SummarizeAttendance(src Source, playerID int) AttendanceSummary {
	var out AttendanceSummary
	var effort, focus int
	for _, t := range src.Sessions() {
		for _, a := range t.Attendances {
			if a.PlayerID != playerID {
				continue
			}
			out.Sessions++
			if a.Present {
				out.Present++
			}
			effort += a.Effort
			focus += a.Focus
		}
	}
	out.Effort = round2(mean(float64(effort), out.Sessions))
	out.Focus = round2(mean(float64(focus), out.Sessions))
	return out
}

// MatchSummary condenses a player's match sheets.
type MatchSummary struct {
	Matches int     `json:"matches"`
	Minutes int     `json:"minutes"`
	Tech    float64 `json:"tech"`
	Phys    float64 `json:"phys"`
	Tact    float64 `json:"tact"`
	Mental  float64 `json:"mental"`
	Goals   int     `json:"goals"`
	Assists int     `json:"assists"`
}

// SummarizeMatches averages the sub-ratings of every sheet of playerID.
func SummarizeMatches(src Source, playerID int) MatchSummary {
	var acc meansAcc
	var out MatchSummary
	for _, m := range src.MatchHistory() {
		for _, p := range m.Performances {
			if p.PlayerID != playerID {
				continue
			}
			out.Minutes += p.Minutes
			acc.add(PerformanceRow{
				Tech: p.Tech, Phys: p.Phys, Tact: p.Tact, Mental: p.Mental,
				Goals: p.Goals, Assists: p.Assists,
			})
		}
	}
	means := acc.result()
	out.Matches = means.Matches
	out.Tech, out.Phys, out.Tact, out.Mental = means.Tech, means.Phys, means.Tact, means.Mental
	out.Goals, out.Assists = means.Goals, means.Assists
	return out
}
