package service_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/pitchside/internal/adapters/repository"
	service "github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service backed by a file store", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "squad.json")
		clock := func() time.Time { return time.Date(2024, time.June, 30, 18, 0, 0, 0, time.UTC) }
		newService := func() *service.Service {
			return service.New(
				service.WithStore(repository.NewFileStore(path, repository.WithBackupDir(filepath.Join(dir, "backups")))),
				service.WithClock(clock),
				service.WithTopPerMatch(2),
			)
		}
		svc := newService()
		defer svc.Stop()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		So(svc.Start(ctx), ShouldBeNil)

		lea, err := svc.AddPlayer(ctx, model.Player{
			Name: "Léa", BirthYear: 2016,
			PreferredPosition: model.OptionalString(model.PositionForward),
			BaseRatings:       map[string]int{"Frappe": 5, "Dribble": 4},
		})
		So(err, ShouldBeNil)
		hugo, err := svc.AddPlayer(ctx, model.Player{Name: "Hugo"})
		So(err, ShouldBeNil)

		may, err := svc.AddMatch(ctx, model.Match{Date: model.NewDate(2024, time.May, 20), Opponent: "Lorient", Competition: "Plateau"})
		So(err, ShouldBeNil)
		june, err := svc.AddMatch(ctx, model.Match{Date: model.NewDate(2024, time.June, 20), Opponent: "Vannes", Competition: "Coupe"})
		So(err, ShouldBeNil)

		sheet := func(id, minutes, r int) model.Performance {
			return model.Performance{PlayerID: id, Position: model.PositionForward, Minutes: minutes, Tech: r, Phys: r, Tact: r, Mental: r}
		}
		for _, step := range []struct {
			match int
			perf  model.Performance
		}{
			{may.ID, sheet(lea.ID, 20, 3)},
			{june.ID, sheet(lea.ID, 30, 4)},
			{june.ID, sheet(hugo.ID, 40, 5)},
		} {
			_, err := svc.AddPerformance(ctx, step.match, step.perf)
			So(err, ShouldBeNil)
		}

		tr, err := svc.AddTraining(ctx, model.Training{Date: model.NewDate(2024, time.June, 18), Theme: "Frappes", Type: model.TrainingTechnique})
		So(err, ShouldBeNil)
		_, err = svc.RecordAttendance(ctx, tr.ID, []model.Attendance{
			{PlayerID: lea.ID, Present: true, Effort: 4, Focus: 5},
			{PlayerID: hugo.ID, Present: false, Effort: 3, Focus: 3},
		})
		So(err, ShouldBeNil)

		Convey("When reading the position profiles", func() {
			rows, err := svc.Profiles(ctx)
			So(err, ShouldBeNil)

			Convey("Then the rated player gets a recommendation", func() {
				So(len(rows), ShouldEqual, 2)
				So(rows[0].Player, ShouldEqual, "Léa")
				So(rows[0].Recommended, ShouldEqual, model.PositionForward)
				v, ok := rows[0].Scores.Get(model.PositionForward)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 4.6)
				So(rows[1].Recommended, ShouldEqual, "")
			})
		})

		Convey("When computing progress for the clock's today", func() {
			progress, err := svc.Progress(ctx, model.Date{})
			So(err, ShouldBeNil)

			Convey("Then only players seen in both windows appear", func() {
				So(len(progress.All), ShouldEqual, 1)
				So(progress.All[0].PlayerID, ShouldEqual, lea.ID)
				So(progress.All[0].Delta, ShouldEqual, 1.0)
				So(len(progress.Improving), ShouldEqual, 1)
			})
		})

		Convey("When reading workload by minutes", func() {
			w, err := svc.Workload(ctx, service.SortByMinutes)
			So(err, ShouldBeNil)
			So(w[0].Player, ShouldEqual, "Léa")
			So(w[0].TotalMinutes, ShouldEqual, 50)
			So(w[0].MinutesPerMatch, ShouldEqual, 25.0)
		})

		Convey("When ranking a match", func() {
			top, err := svc.MatchTop(ctx, june.ID)
			So(err, ShouldBeNil)
			So(len(top), ShouldEqual, 2)
			So(top[0].Player, ShouldEqual, "Hugo")
			So(top[0].Rating, ShouldEqual, 5.0)
		})

		Convey("When building a report card", func() {
			r, err := svc.Report(ctx, lea.ID)
			So(err, ShouldBeNil)
			So(r.Ratings[0].Skill, ShouldEqual, "Dribble")
			So(r.Attendance.Present, ShouldEqual, 1)
			So(r.Matches.Matches, ShouldEqual, 2)
		})

		Convey("When searching by a misspelled name", func() {
			hits, err := svc.SearchPlayers(ctx, "lea")
			So(err, ShouldBeNil)
			So(len(hits), ShouldEqual, 1)
			So(hits[0].PlayerID, ShouldEqual, lea.ID)
		})

		Convey("When exporting and backing up", func() {
			b, err := svc.Export(ctx)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"Léa"`)

			backup, err := svc.Backup(ctx)
			So(err, ShouldBeNil)
			So(strings.HasSuffix(backup, ".bak"), ShouldBeTrue)
		})

		Convey("When a fresh service reloads the file", func() {
			reloaded := newService()
			So(reloaded.Start(ctx), ShouldBeNil)
			defer reloaded.Stop()

			Convey("Then every record survived", func() {
				stats := reloaded.GetStats()
				So(stats["players"], ShouldEqual, 2)
				So(stats["matches"], ShouldEqual, 2)
				So(stats["trainings"], ShouldEqual, 1)
				ts, err := reloaded.TrainingSheet(ctx, tr.ID)
				So(err, ShouldBeNil)
				So(len(ts.Lines), ShouldEqual, 2)
			})
		})
	})
}
