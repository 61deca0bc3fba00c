package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DataFile, convey.ShouldEqual, "data/squad.json")
			convey.So(cfg.WindowDays, convey.ShouldEqual, 30)
			convey.So(cfg.TopMovers, convey.ShouldEqual, 5)
			convey.So(cfg.TopPerMatch, convey.ShouldEqual, 3)
			convey.So(cfg.SearchThreshold, convey.ShouldEqual, 0.7)
			convey.So(cfg.GaugeInterval, convey.ShouldEqual, time.Minute)
			convey.So(cfg.Positions, convey.ShouldResemble, model.Positions)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the weights build the default table", func() {
			w, err := cfg.Weights()
			convey.So(err, convey.ShouldBeNil)
			convey.So(w.Positions(), convey.ShouldResemble, model.Positions)
		})

		convey.Convey("When the positions slice is mutated", func() {
			cfg.Positions[0] = "Libéro"

			convey.Convey("Then the model table is untouched", func() {
				convey.So(model.Positions[0], convey.ShouldEqual, model.PositionGoalkeeper)
			})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		cases := []struct {
			name   string
			mutate func()
		}{
			{"empty addr", func() { cfg.Addr = " " }},
			{"empty data file", func() { cfg.DataFile = "" }},
			{"zero window", func() { cfg.WindowDays = 0 }},
			{"negative movers", func() { cfg.TopMovers = -1 }},
			{"zero podium", func() { cfg.TopPerMatch = 0 }},
			{"threshold above 1", func() { cfg.SearchThreshold = 1.5 }},
			{"zero threshold", func() { cfg.SearchThreshold = 0 }},
			{"unknown format", func() { cfg.LogFormat = "xml" }},
			{"no skills", func() { cfg.Skills = nil }},
			{"zero gauge period", func() { cfg.GaugeInterval = 0 }},
			{"unweighted position", func() { cfg.Positions = append(cfg.Positions, "Libéro") }},
			{"negative weight", func() { cfg.PositionWeights[model.PositionForward]["Frappe"] = -2 }},
		}
		for _, tc := range cases {
			convey.Convey("When "+tc.name, func() {
				tc.mutate()

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
