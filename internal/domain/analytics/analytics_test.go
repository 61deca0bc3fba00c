package analytics_test

import (
	"testing"
	"time"

	"github.com/okian/pitchside/internal/domain/analytics"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func day(y int, m time.Month, d int) model.Date { return model.NewDate(y, m, d) }

// perf builds a midfield sheet.
func perf(playerID, minutes int, tech, phys, tact, mental int) model.Performance {
	return model.Performance{
		PlayerID: playerID, Position: model.PositionMidfielder, Minutes: minutes,
		Tech: tech, Phys: phys, Tact: tact, Mental: mental,
	}
}

func squad() *model.Data {
	return &model.Data{
		Players: []model.Player{
			{ID: 1, Name: "Zoé", PreferredPosition: model.OptionalString(model.PositionForward), BaseRatings: map[string]int{"Frappe": 5, "Dribble": 4}},
			{ID: 2, Name: "Adam", BaseRatings: map[string]int{"Passes courtes": 4, "Passes longues": 3, "Endurance": 5}},
			{ID: 3, Name: "Louis", BaseRatings: map[string]int{}},
		},
		Matches: []model.Match{
			{ID: 1, Date: day(2024, time.May, 4), Opponent: "Rennes", Competition: "Plateau", Performances: []model.Performance{
				perf(1, 30, 4, 4, 4, 4),
				perf(2, 45, 3, 3, 3, 3),
				perf(99, 20, 5, 5, 5, 5),
			}},
			{ID: 2, Date: day(2024, time.June, 1), Opponent: "Brest", Competition: "Amical", Performances: []model.Performance{
				perf(1, 45, 5, 4, 3, 5),
				perf(3, 40, 2, 2, 2, 2),
			}},
		},
		Trainings: []model.Training{
			{ID: 1, Date: day(2024, time.May, 2), Theme: "Passes", Type: model.TrainingTechnique, Attendances: []model.Attendance{
				{PlayerID: 1, Present: true, Effort: 4, Focus: 3},
				{PlayerID: 2, Present: false, Effort: 1, Focus: 1},
				{PlayerID: 42, Present: true, Effort: 5, Focus: 5},
			}},
			{ID: 2, Date: day(2024, time.May, 9), Theme: "Vitesse", Type: model.TrainingPhysical, Attendances: []model.Attendance{
				{PlayerID: 1, Present: true, Effort: 5, Focus: 4},
			}},
		},
	}
}

func TestFlattenPerformances(t *testing.T) {
	Convey("Given a squad with a dangling performance", t, func() {
		data := squad()

		Convey("When flattening", func() {
			rows := analytics.FlattenPerformances(data)

			Convey("Then the unknown player is dropped", func() {
				So(len(rows), ShouldEqual, 4)
				for _, r := range rows {
					So(r.PlayerID, ShouldNotEqual, 99)
				}
			})

			Convey("And rows follow match then sheet order", func() {
				So(rows[0].MatchID, ShouldEqual, 1)
				So(rows[0].Player, ShouldEqual, "Zoé")
				So(rows[1].Player, ShouldEqual, "Adam")
				So(rows[2].MatchID, ShouldEqual, 2)
				So(rows[2].Opponent, ShouldEqual, "Brest")
			})

			Convey("And overall is the unrounded mean", func() {
				So(rows[2].Overall, ShouldEqual, 4.25)
			})

			Convey("And flattening again yields the same rows", func() {
				So(analytics.FlattenPerformances(data), ShouldResemble, rows)
			})

			Convey("And the document is untouched", func() {
				So(len(data.Matches[0].Performances), ShouldEqual, 3)
			})
		})

		Convey("When the document is empty", func() {
			rows := analytics.FlattenPerformances(model.NewData())

			Convey("Then the result is empty, not nil", func() {
				So(rows, ShouldNotBeNil)
				So(len(rows), ShouldEqual, 0)
			})
		})
	})
}

func trendRows() []analytics.PerformanceRow {
	row := func(id int, name string, d model.Date, overall float64) analytics.PerformanceRow {
		return analytics.PerformanceRow{PlayerID: id, Player: name, Date: d, Overall: overall}
	}
	return []analytics.PerformanceRow{
		// Zoé: prior 3.0, recent mean(4.0, 3.5) = 3.75
		row(1, "Zoé", day(2024, time.May, 10), 3.0),
		row(1, "Zoé", day(2024, time.June, 10), 4.0),
		row(1, "Zoé", day(2024, time.June, 25), 3.5),
		// Adam: prior 4.0, recent 3.0
		row(2, "Adam", day(2024, time.May, 20), 4.0),
		row(2, "Adam", day(2024, time.June, 15), 3.0),
		// Louis: recent only
		row(3, "Louis", day(2024, time.June, 20), 5.0),
		// Emma: prior only, plus a future row
		row(4, "Emma", day(2024, time.May, 5), 2.0),
		row(4, "Emma", day(2024, time.July, 5), 5.0),
		// Too old for either window.
		row(2, "Adam", day(2024, time.January, 5), 1.0),
	}
}

func TestComputeProgressDeltas(t *testing.T) {
	Convey("Given rows spread over two windows", t, func() {
		today := day(2024, time.June, 30)
		rows := trendRows()

		Convey("When computing progress", func() {
			p := analytics.ComputeProgressDeltas(rows, today)

			Convey("Then only players in both windows appear, ordered by name", func() {
				So(len(p.All), ShouldEqual, 2)
				So(p.All[0].Player, ShouldEqual, "Adam")
				So(p.All[1].Player, ShouldEqual, "Zoé")
			})

			Convey("And deltas are recent minus prior rounded to 2 decimals", func() {
				So(p.All[0].Delta, ShouldEqual, -1.0)
				So(p.All[1].Recent, ShouldEqual, 3.75)
				So(p.All[1].Prior, ShouldEqual, 3.0)
				So(p.All[1].Delta, ShouldEqual, 0.75)
			})

			Convey("And improving and struggling are sorted by delta", func() {
				So(p.Improving[0].Player, ShouldEqual, "Zoé")
				So(p.Struggling[0].Player, ShouldEqual, "Adam")
			})
		})

		Convey("When a future-dated row would fall in the recent window", func() {
			p := analytics.ComputeProgressDeltas(rows, today)

			Convey("Then it is ignored", func() {
				for _, tr := range p.All {
					So(tr.Player, ShouldNotEqual, "Emma")
				}
			})
		})

		Convey("When the recent window is empty", func() {
			p := analytics.ComputeProgressDeltas(rows, day(2025, time.June, 30))

			Convey("Then every list is empty", func() {
				So(p.All, ShouldBeEmpty)
				So(p.Improving, ShouldBeEmpty)
				So(p.Struggling, ShouldBeEmpty)
			})
		})

		Convey("When both windows hold rows but nobody is in both", func() {
			p := analytics.ComputeProgressDeltas(rows[5:8], today)
			So(p.All, ShouldBeEmpty)
		})

		Convey("When limiting the movers lists", func() {
			p := analytics.ComputeProgressDeltas(rows, today, analytics.WithTopN(1))

			Convey("Then each list keeps N entries", func() {
				So(len(p.All), ShouldEqual, 2)
				So(len(p.Improving), ShouldEqual, 1)
				So(len(p.Struggling), ShouldEqual, 1)
			})
		})

		Convey("When shortening the windows", func() {
			p := analytics.ComputeProgressDeltas(rows, today, analytics.WithWindowDays(10))

			Convey("Then only rows in the narrower windows count", func() {
				// Recent [06-20, 06-30], prior [06-10, 06-20).
				So(len(p.All), ShouldEqual, 1)
				So(p.All[0].Player, ShouldEqual, "Zoé")
				So(p.All[0].Delta, ShouldEqual, -0.5)
			})
		})
	})

	Convey("Given players with equal deltas", t, func() {
		today := day(2024, time.June, 30)
		var rows []analytics.PerformanceRow
		for i, name := range []string{"Chloé", "Bruno", "Alice"} {
			rows = append(rows,
				analytics.PerformanceRow{PlayerID: i + 1, Player: name, Date: day(2024, time.May, 15), Overall: 3},
				analytics.PerformanceRow{PlayerID: i + 1, Player: name, Date: day(2024, time.June, 15), Overall: 4},
			)
		}

		Convey("Then ties keep name order in both lists", func() {
			p := analytics.ComputeProgressDeltas(rows, today)
			names := func(ts []analytics.PlayerTrend) []string {
				out := make([]string, 0, len(ts))
				for _, tr := range ts {
					out = append(out, tr.Player)
				}
				return out
			}
			So(names(p.Improving), ShouldResemble, []string{"Alice", "Bruno", "Chloé"})
			So(names(p.Struggling), ShouldResemble, []string{"Alice", "Bruno", "Chloé"})
		})
	})

	Convey("Given two roster players sharing a name", t, func() {
		today := day(2024, time.June, 30)
		rows := []analytics.PerformanceRow{
			{PlayerID: 1, Player: "Léo", Date: day(2024, time.May, 15), Overall: 3},
			{PlayerID: 2, Player: "Léo", Date: day(2024, time.June, 15), Overall: 4},
		}

		Convey("Then their windows are joined on the name", func() {
			p := analytics.ComputeProgressDeltas(rows, today)
			So(len(p.All), ShouldEqual, 1)
			So(p.All[0].Player, ShouldEqual, "Léo")
			So(p.All[0].PlayerID, ShouldEqual, 2)
			So(p.All[0].Delta, ShouldEqual, 1.0)
		})
	})

	Convey("Given rows on the window boundaries", t, func() {
		today := day(2024, time.June, 30)
		row := func(d model.Date, overall float64) analytics.PerformanceRow {
			return analytics.PerformanceRow{PlayerID: 1, Player: "Zoé", Date: d, Overall: overall}
		}
		rows := []analytics.PerformanceRow{
			row(today, 4),              // recent, last day
			row(today.AddDays(-30), 4), // recent, first day
			row(today.AddDays(-31), 2), // prior, last day
			row(today.AddDays(-60), 2), // prior, first day
			row(today.AddDays(-61), 1), // too old
		}

		Convey("Then both ends of the recent window and the start of the prior one count", func() {
			p := analytics.ComputeProgressDeltas(rows, today)
			So(len(p.All), ShouldEqual, 1)
			So(p.All[0].Recent, ShouldEqual, 4.0)
			So(p.All[0].Prior, ShouldEqual, 2.0)
			So(p.All[0].Delta, ShouldEqual, 2.0)
		})
	})
}

func TestAggregateMinutes(t *testing.T) {
	Convey("Given a player with two matches", t, func() {
		rows := []analytics.PerformanceRow{
			{PlayerID: 2, Player: "Bruno", Minutes: 30},
			{PlayerID: 1, Player: "Alice", Minutes: 20},
			{PlayerID: 2, Player: "Bruno", Minutes: 45},
		}

		Convey("When aggregating minutes", func() {
			w := analytics.AggregateMinutes(rows)

			Convey("Then counts, totals and averages are reported per player", func() {
				So(len(w), ShouldEqual, 2)
				So(w[1].Player, ShouldEqual, "Bruno")
				So(w[1].Matches, ShouldEqual, 2)
				So(w[1].TotalMinutes, ShouldEqual, 75)
				So(w[1].MinutesPerMatch, ShouldEqual, 37.5)
			})

			Convey("And rows are ordered by name", func() {
				So(w[0].Player, ShouldEqual, "Alice")
			})

			Convey("And the dashboard order puts the most played first", func() {
				sorted := w.ByTotalMinutes()
				So(sorted[0].Player, ShouldEqual, "Bruno")
				So(w[0].Player, ShouldEqual, "Alice")
			})
		})

		Convey("When there are no rows", func() {
			So(analytics.AggregateMinutes(nil), ShouldBeEmpty)
		})
	})

	Convey("Given two roster players sharing a name", t, func() {
		w := analytics.AggregateMinutes([]analytics.PerformanceRow{
			{PlayerID: 1, Player: "Léo", Minutes: 30},
			{PlayerID: 2, Player: "Léo", Minutes: 20},
		})

		Convey("Then their minutes are summed under the name", func() {
			So(len(w), ShouldEqual, 1)
			So(w[0].PlayerID, ShouldEqual, 1)
			So(w[0].Matches, ShouldEqual, 2)
			So(w[0].TotalMinutes, ShouldEqual, 50)
			So(w[0].MinutesPerMatch, ShouldEqual, 25.0)
		})
	})
}

func TestTopThreeForMatch(t *testing.T) {
	Convey("Given a match with five performances", t, func() {
		mk := func(id int, name string, overall float64) analytics.PerformanceRow {
			return analytics.PerformanceRow{MatchID: 7, PlayerID: id, Player: name, Overall: overall, Minutes: 40}
		}
		rows := []analytics.PerformanceRow{
			mk(1, "A", 3.0),
			mk(2, "B", 4.25),
			mk(3, "C", 3.5),
			mk(4, "D", 4.25),
			mk(5, "E", 2.0),
			{MatchID: 8, PlayerID: 6, Player: "F", Overall: 5},
		}

		Convey("When ranking", func() {
			top := analytics.TopThreeForMatch(rows, 7)

			Convey("Then exactly three entries come back in descending order", func() {
				So(len(top), ShouldEqual, 3)
				So(top[0].Rating, ShouldBeGreaterThanOrEqualTo, top[1].Rating)
				So(top[1].Rating, ShouldBeGreaterThanOrEqualTo, top[2].Rating)
			})

			Convey("And ties keep sheet order", func() {
				So(top[0].Player, ShouldEqual, "B")
				So(top[1].Player, ShouldEqual, "D")
				So(top[2].Player, ShouldEqual, "C")
			})

			Convey("And other matches are not mixed in", func() {
				for _, r := range top {
					So(r.Player, ShouldNotEqual, "F")
				}
			})
		})

		Convey("When the match has no performances", func() {
			So(analytics.TopThreeForMatch(rows, 99), ShouldBeEmpty)
		})

		Convey("When asking for more than exist", func() {
			So(len(analytics.TopForMatch(rows, 8, 3)), ShouldEqual, 1)
		})
	})
}

func TestBuildProfileRows(t *testing.T) {
	Convey("Given the default model and a squad", t, func() {
		rows := analytics.BuildProfileRows(squad(), scoring.New())

		Convey("Then there is one row per roster player in roster order", func() {
			So(len(rows), ShouldEqual, 3)
			So(rows[0].Player, ShouldEqual, "Zoé")
			So(rows[2].Player, ShouldEqual, "Louis")
		})

		Convey("And declared and recommended positions are filled", func() {
			So(rows[0].Preferred, ShouldEqual, model.PositionForward)
			So(rows[0].Recommended, ShouldEqual, model.PositionForward)
			So(rows[1].Preferred, ShouldEqual, "")
			v, ok := rows[1].Scores.Get(model.PositionMidfielder)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 3.8)
		})

		Convey("And a player with no ratings has no recommendation", func() {
			So(rows[2].Recommended, ShouldEqual, "")
			So(rows[2].Scores.Scored(), ShouldBeFalse)
		})
	})
}

func TestAggregateMatchMeans(t *testing.T) {
	Convey("Given a squad", t, func() {
		means := analytics.AggregateMatchMeans(squad())

		Convey("Then players are ordered by name and dangling sheets ignored", func() {
			So(len(means), ShouldEqual, 3)
			So(means[0].Player, ShouldEqual, "Adam")
			So(means[1].Player, ShouldEqual, "Louis")
			So(means[2].Player, ShouldEqual, "Zoé")
		})

		Convey("And sub-ratings are averaged", func() {
			z := means[2]
			So(z.Matches, ShouldEqual, 2)
			So(z.Tech, ShouldEqual, 4.5)
			So(z.Phys, ShouldEqual, 4.0)
			So(z.Tact, ShouldEqual, 3.5)
			So(z.Mental, ShouldEqual, 4.5)
		})
	})

	Convey("Given two roster players sharing a name", t, func() {
		data := &model.Data{
			Players: []model.Player{{ID: 1, Name: "Léo"}, {ID: 2, Name: "Léo"}},
			Matches: []model.Match{{ID: 1, Date: day(2024, time.May, 4), Opponent: "Rennes", Performances: []model.Performance{
				perf(1, 30, 4, 4, 4, 4),
				perf(2, 30, 3, 2, 3, 2),
			}}},
		}
		means := analytics.AggregateMatchMeans(data)

		Convey("Then their sheets are averaged together", func() {
			So(len(means), ShouldEqual, 1)
			So(means[0].Matches, ShouldEqual, 2)
			So(means[0].Tech, ShouldEqual, 3.5)
			So(means[0].Phys, ShouldEqual, 3.0)
		})
	})
}

func TestReport(t *testing.T) {
	Convey("Given a squad", t, func() {
		data := squad()

		Convey("When summarizing attendance", func() {
			a := analytics.SummarizeAttendance(data, 1)

			Convey("Then sessions, presence and means are reported", func() {
				So(a.Sessions, ShouldEqual, 2)
				So(a.Present, ShouldEqual, 2)
				So(a.Effort, ShouldEqual, 4.5)
				So(a.Focus, ShouldEqual, 3.5)
				So(a.Rate(), ShouldEqual, 1.0)
			})

			Convey("And absences still count towards the means", func() {
				b := analytics.SummarizeAttendance(data, 2)
				So(b.Sessions, ShouldEqual, 1)
				So(b.Present, ShouldEqual, 0)
				So(b.Effort, ShouldEqual, 1.0)
			})

			Convey("And a player without sessions gets zeros", func() {
				c := analytics.SummarizeAttendance(data, 3)
				So(c.Sessions, ShouldEqual, 0)
				So(c.Rate(), ShouldEqual, 0.0)
			})
		})

		Convey("When building a report card", func() {
			r, ok := analytics.BuildReport(data, scoring.New(), scoring.DefaultSkills(), 1)

			Convey("Then ratings follow the canonical skill order", func() {
				So(ok, ShouldBeTrue)
				So(r.Ratings, ShouldResemble, []analytics.SkillRating{{Skill: "Dribble", Rating: 4}, {Skill: "Frappe", Rating: 5}})
			})

			Convey("And match and attendance summaries are included", func() {
				So(r.Matches.Matches, ShouldEqual, 2)
				So(r.Matches.Minutes, ShouldEqual, 75)
				So(r.Attendance.Sessions, ShouldEqual, 2)
				So(r.Recommended, ShouldEqual, model.PositionForward)
			})
		})

		Convey("When the player is unknown", func() {
			_, ok := analytics.BuildReport(data, scoring.New(), scoring.DefaultSkills(), 99)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSheets(t *testing.T) {
	Convey("Given a squad with dangling references", t, func() {
		data := squad()

		Convey("When rendering a match sheet", func() {
			sheet, ok := analytics.MatchSheetFor(data, 1)

			Convey("Then unknown players are shown as Inconnu", func() {
				So(ok, ShouldBeTrue)
				So(len(sheet.Lines), ShouldEqual, 3)
				So(sheet.Lines[2].Player, ShouldEqual, analytics.UnknownPlayer)
				So(sheet.Label, ShouldEqual, "2024-05-04 – Rennes (Plateau)")
			})
		})

		Convey("When rendering a training sheet", func() {
			sheet, ok := analytics.TrainingSheetFor(data, 1)

			Convey("Then presence is counted and unknowns are named", func() {
				So(ok, ShouldBeTrue)
				So(sheet.Present, ShouldEqual, 2)
				So(sheet.Lines[2].Player, ShouldEqual, analytics.UnknownPlayer)
			})
		})

		Convey("When the record does not exist", func() {
			_, ok := analytics.MatchSheetFor(data, 50)
			So(ok, ShouldBeFalse)
			_, ok = analytics.TrainingSheetFor(data, 50)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSearchPlayers(t *testing.T) {
	Convey("Given a squad", t, func() {
		data := squad()

		Convey("When the query is a near miss", func() {
			hits := analytics.SearchPlayers(data, "Luis", analytics.DefaultSearchThreshold)

			Convey("Then the closest name is found", func() {
				So(len(hits), ShouldEqual, 1)
				So(hits[0].Player, ShouldEqual, "Louis")
			})
		})

		Convey("When the query drops accents", func() {
			hits := analytics.SearchPlayers(data, "zoe", analytics.DefaultSearchThreshold)
			So(len(hits), ShouldEqual, 1)
			So(hits[0].Similarity, ShouldEqual, 1.0)
		})

		Convey("When nothing is close", func() {
			So(analytics.SearchPlayers(data, "Maximilien", analytics.DefaultSearchThreshold), ShouldBeEmpty)
			So(analytics.SearchPlayers(data, "  ", analytics.DefaultSearchThreshold), ShouldBeEmpty)
		})
	})

	Convey("Given names with accents outside French", t, func() {
		data := &model.Data{Players: []model.Player{
			{ID: 1, Name: "Núria Peña"},
			{ID: 2, Name: "Ángel"},
			{ID: 3, Name: "Zoé"},
		}}

		Convey("When the query drops them", func() {
			hits := analytics.SearchPlayers(data, "nuria pena", analytics.DefaultSearchThreshold)

			Convey("Then the name still contains the query", func() {
				So(len(hits), ShouldEqual, 1)
				So(hits[0].PlayerID, ShouldEqual, 1)
				So(hits[0].Similarity, ShouldEqual, 1.0)
			})
		})

		Convey("When the query is upper case", func() {
			hits := analytics.SearchPlayers(data, "ANGEL", analytics.DefaultSearchThreshold)
			So(len(hits), ShouldEqual, 1)
			So(hits[0].Player, ShouldEqual, "Ángel")
		})
	})
}
