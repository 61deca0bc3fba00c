package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.WindowDays, convey.ShouldEqual, 30)
				convey.So(cfg.Positions, convey.ShouldResemble, model.Positions)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITCHSIDE_ADDR", ":8080")
			_ = os.Setenv("PITCHSIDE_DATA_FILE", "/var/lib/pitchside/squad.json")
			_ = os.Setenv("PITCHSIDE_WINDOW_DAYS", "14")
			_ = os.Setenv("PITCHSIDE_SEARCH_THRESHOLD", "0.85")
			_ = os.Setenv("PITCHSIDE_GAUGE_INTERVAL", "30s")
			_ = os.Setenv("PITCHSIDE_MCP_ENABLED", "false")
			_ = os.Setenv("PITCHSIDE_SKILLS", "Dribble, Frappe,,Vitesse")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataFile, convey.ShouldEqual, "/var/lib/pitchside/squad.json")
				convey.So(cfg.WindowDays, convey.ShouldEqual, 14)
				convey.So(cfg.SearchThreshold, convey.ShouldEqual, 0.85)
				convey.So(cfg.GaugeInterval, convey.ShouldEqual, 30*time.Second)
				convey.So(cfg.MCPEnabled, convey.ShouldBeFalse)
				convey.So(cfg.Skills, convey.ShouldResemble, []string{"Dribble", "Frappe", "Vitesse"})
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeFile(t, "config.yaml", `
addr: ":7070"
top_movers: 3
positions: ["Milieu", "Gardien"]
position_weights:
  Milieu:
    Dribble: 2
  Gardien:
    "Arrêts": 3
`)
			_ = os.Setenv("PITCHSIDE_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.TopMovers, convey.ShouldEqual, 3)
			})

			convey.Convey("Then a shorter list replaces the default entirely", func() {
				convey.So(cfg.Positions, convey.ShouldResemble, []string{"Milieu", "Gardien"})
			})

			convey.Convey("Then weights replace the defaults per position", func() {
				convey.So(cfg.PositionWeights["Milieu"], convey.ShouldResemble, map[string]float64{"Dribble": 2})
				w, err := cfg.Weights()
				convey.So(err, convey.ShouldBeNil)
				convey.So(w.Positions()[0], convey.ShouldEqual, "Milieu")
			})

			convey.Convey("Then missing fields keep their defaults", func() {
				convey.So(cfg.WindowDays, convey.ShouldEqual, 30)
				convey.So(cfg.DataFile, convey.ShouldEqual, "data/squad.json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeFile(t, "config.yaml", "addr: \":7070\"\ntop_movers: 3\n")
			_ = os.Setenv("PITCHSIDE_CONFIG", path)
			_ = os.Setenv("PITCHSIDE_ADDR", ":6060")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.TopMovers, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading a .env file", func() {
			path := writeFile(t, "test.env", "PITCHSIDE_ADDR=:5050\nPITCHSIDE_TOP_PER_MATCH=5\n")
			_ = os.Setenv("PITCHSIDE_ENV_FILE", path)
			_ = os.Setenv("PITCHSIDE_TOP_PER_MATCH", "4")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it fills unset variables only", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":5050")
				convey.So(cfg.TopPerMatch, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the explicit .env file is missing", func() {
			_ = os.Setenv("PITCHSIDE_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := writeFile(t, "bad.yaml", "addr: [unterminated\n")
			_ = os.Setenv("PITCHSIDE_CONFIG", path)
			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PITCHSIDE_CONFIG", "/nonexistent/config.yaml")
			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PITCHSIDE_ADDR", "")
			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PITCHSIDE_WINDOW_DAYS", "a-month")
			_, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := config.Load(cctx)
			convey.So(errors.Is(err, context.Canceled), convey.ShouldBeTrue)
		})
	})
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// clearConfigEnvVars removes every PITCHSIDE_ variable, including those a
// .env file may have set.
func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, config.EnvPrefix) {
			_ = os.Unsetenv(key)
		}
	}
}
