package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/config"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/seed"
	"github.com/okian/pitchside/pkg/logger"
)

func main() {
	var (
		out       = flag.String("out", "", "Squad document to write (default: data_file from config)")
		players   = flag.Int("players", seed.DefaultPlayers, "Number of players")
		matches   = flag.Int("matches", seed.DefaultMatches, "Number of weekly matches")
		trainings = flag.Int("trainings", seed.DefaultTrainings, "Number of training sessions")
		start     = flag.String("start", "", "Date of the first match, YYYY-MM-DD (default: so the last match is this week)")
		force     = flag.Bool("force", false, "Overwrite an existing document")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *out, *players, *matches, *trainings, *start, *force); err != nil {
		os.Stderr.WriteString("seed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, out string, players, matches, trainings int, start string, force bool) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Named("seed")

	if out == "" {
		out = cfg.DataFile
	}
	if !force {
		if _, err := os.Stat(out); err == nil {
			return fmt.Errorf("%s already exists, use -force to overwrite", out)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	first, err := firstMatch(start, matches, time.Now())
	if err != nil {
		return err
	}

	weights, err := cfg.Weights()
	if err != nil {
		return fmt.Errorf("failed to build scoring table: %w", err)
	}

	d, err := seed.New(seed.WithLogger(log)).Generate(ctx, seed.Config{
		Players:   players,
		Matches:   matches,
		Trainings: trainings,
		Start:     first,
		Skills:    cfg.Skills,
		Positions: weights.Positions(),
	})
	if err != nil {
		return err
	}

	if err := repository.NewFileStore(out, repository.WithLogger(log)).Save(ctx, d); err != nil {
		return err
	}
	log.Info(ctx, "squad document written", logger.String("path", out), logger.String("first_match", first.String()))
	return nil
}

// firstMatch parses start, or places the season so its last match falls
// within the week of now.
func firstMatch(start string, matches int, now time.Time) (model.Date, error) {
	if start != "" {
		return model.ParseDate(start)
	}
	weeks := max(matches-1, 0)
	return model.DateOf(now).AddDays(-7 * weeks), nil
}
