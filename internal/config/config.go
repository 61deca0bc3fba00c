// Package config defines service configuration and its layered loading.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/pitchside/internal/domain/analytics"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// MCPEnabled mounts the MCP tool server on /mcp.
	MCPEnabled bool `koanf:"mcp_enabled"`

	// DataFile is the squad document path.
	DataFile string `koanf:"data_file"`

	// BackupDir receives timestamped copies of the document. Empty disables backups.
	BackupDir string `koanf:"backup_dir"`

	// BackupCron is the crontab line of the backup job.
	BackupCron string `koanf:"backup_cron"`

	// GaugeInterval is how often store gauges are refreshed.
	GaugeInterval time.Duration `koanf:"gauge_interval"`

	// WindowDays is the length of each progress window.
	WindowDays int `koanf:"window_days"`

	// TopMovers caps the improving and struggling lists.
	TopMovers int `koanf:"top_movers"`

	// TopPerMatch is the size of a match podium.
	TopPerMatch int `koanf:"top_per_match"`

	// SearchThreshold is the minimum name similarity of player search, in (0,1].
	SearchThreshold float64 `koanf:"search_threshold"`

	// Positions fixes the position order, which is also the tie-break order.
	Positions []string `koanf:"positions"`

	// PositionWeights maps position -> skill -> weight. Entries replace the
	// defaults per position.
	PositionWeights map[string]map[string]float64 `koanf:"position_weights"`

	// Skills is the canonical skill order of report cards.
	Skills []string `koanf:"skills"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		ShutdownTimeout: 10 * time.Second,
		MCPEnabled:      true,
		DataFile:        "data/squad.json",
		BackupDir:       "data/backups",
		BackupCron:      "0 3 * * *",
		GaugeInterval:   time.Minute,
		WindowDays:      analytics.DefaultWindowDays,
		TopMovers:       analytics.DefaultTopN,
		TopPerMatch:     analytics.TopPerMatch,
		SearchThreshold: analytics.DefaultSearchThreshold,
		Positions:       append([]string(nil), model.Positions...),
		PositionWeights: scoring.DefaultTable(),
		Skills:          scoring.DefaultSkills(),
	}
}

// Weights builds the scoring table from Positions and PositionWeights.
func (c *Config) Weights() (scoring.Weights, error) {
	return scoring.WeightsFromTable(c.Positions, c.PositionWeights)
}

// Validate checks the values Load cannot type-check.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalid("addr must not be empty")
	case strings.TrimSpace(c.DataFile) == "":
		return invalid("data_file must not be empty")
	case c.WindowDays <= 0:
		return invalid("window_days must be positive")
	case c.TopMovers <= 0:
		return invalid("top_movers must be positive")
	case c.TopPerMatch <= 0:
		return invalid("top_per_match must be positive")
	case c.SearchThreshold <= 0 || c.SearchThreshold > 1:
		return invalid("search_threshold must be in (0,1]")
	case c.GaugeInterval <= 0:
		return invalid("gauge_interval must be positive")
	case len(c.Skills) == 0:
		return invalid("skills must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return invalid(fmt.Sprintf("unknown log_format %q", c.LogFormat))
	}
	if _, err := c.Weights(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}
