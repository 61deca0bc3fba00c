// Package service holds the loaded squad document and exposes the
// mutations and analytics used by the HTTP API, the MCP tools and the
// scheduler.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/domain/analytics"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/scoring"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// Service serialises mutations of the squad document and serves read-only
// snapshots to the analytics.
//
// The held document is copy-on-write: a mutation works on a clone, persists
// it and only then swaps it in, so readers holding the previous pointer
// never observe a partial change and a failed save leaves nothing behind.
type Service struct {
	mu sync.RWMutex

	store repository.Store
	data  *model.Data

	scorer *scoring.Model
	skills []string

	windowDays      int
	topMovers       int
	topPerMatch     int
	searchThreshold float64
	now             func() time.Time

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the document store. An in-memory store is used otherwise.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWeights replaces the position weights table.
func WithWeights(w scoring.Weights) Option {
	return func(s *Service) {
		if w.Len() > 0 {
			s.scorer = scoring.New(scoring.WithWeights(w))
		}
	}
}

// WithSkills sets the canonical skill order used by report cards.
func WithSkills(skills []string) Option {
	return func(s *Service) {
		if len(skills) > 0 {
			s.skills = slices.Clone(skills)
		}
	}
}

// WithWindowDays sets the width of the trend windows.
func WithWindowDays(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.windowDays = n
		}
	}
}

// WithTopMovers sets how many players the improving and struggling lists keep.
func WithTopMovers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topMovers = n
		}
	}
}

// WithTopPerMatch sets the length of the per-match ranking.
func WithTopPerMatch(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topPerMatch = n
		}
	}
}

// WithSearchThreshold sets the minimum similarity for player search.
func WithSearchThreshold(t float64) Option {
	return func(s *Service) {
		if t > 0 && t <= 1 {
			s.searchThreshold = t
		}
	}
}

// WithClock overrides the wall clock used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:          scoring.New(),
		skills:          scoring.DefaultSkills(),
		windowDays:      analytics.DefaultWindowDays,
		topMovers:       analytics.DefaultTopN,
		topPerMatch:     analytics.TopPerMatch,
		searchThreshold: analytics.DefaultSearchThreshold,
		now:             time.Now,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(nil)
	}
	return s
}

// Start loads the document from the store.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting squad service...")
	d, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load squad document: %w", err)
	}
	s.data = d
	s.started = true
	s.updateCounts()

	s.logger.Info(ctx, "squad service started",
		logger.Int("players", len(d.Players)),
		logger.Int("matches", len(d.Matches)),
		logger.Int("trainings", len(d.Trainings)),
		logger.Int("positions", s.scorer.Weights().Len()),
	)
	return nil
}

// Stop releases the document. Later calls fail with ErrNotStarted until
// Start is called again.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.data = nil
	s.started = false
	s.logger.Info(context.Background(), "squad service stopped")
}

// Today returns the current civil date.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

// Skills returns the canonical skill order.
func (s *Service) Skills() []string {
	return slices.Clone(s.skills)
}

// Positions returns the scored positions in table order.
func (s *Service) Positions() []string {
	return s.scorer.Weights().Positions()
}

// Snapshot returns a deep copy of the current document.
func (s *Service) Snapshot(ctx context.Context) (*model.Data, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return d.Clone(), nil
}

// Export returns the document as indented JSON.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	d, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return repository.Encode(d)
}

// Backup asks the store to copy the persisted document aside.
func (s *Service) Backup(ctx context.Context) (string, error) {
	b, ok := s.store.(repository.Backuper)
	if !ok {
		return "", ErrNoBackupTarget
	}
	return b.Backup(ctx)
}

// RefreshGauges republishes the record count gauges.
func (s *Service) RefreshGauges() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.updateCounts()
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"positions":       s.scorer.Weights().Positions(),
		"windowDays":      s.windowDays,
		"topMovers":       s.topMovers,
		"topPerMatch":     s.topPerMatch,
		"searchThreshold": s.searchThreshold,
	}
	if s.started {
		stats["players"] = len(s.data.Players)
		stats["matches"] = len(s.data.Matches)
		stats["trainings"] = len(s.data.Trainings)
		s.updateCounts()
	}
	return stats
}

// current returns the held document. Callers must treat it as read-only.
func (s *Service) current(ctx context.Context) (*model.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.data, nil
}

// mutate applies fn to a clone of the document, persists the clone and
// swaps it in. Nothing changes when fn or the save fails.
func (s *Service) mutate(ctx context.Context, kind string, fn func(d *model.Data) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	next := s.data.Clone()
	if err := fn(next); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			metrics.RecordValidationError()
		}
		s.logger.Warn(ctx, "mutation rejected", logger.String("kind", kind), logger.Error(err))
		return err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("persist %s: %w", kind, err)
	}
	s.data = next
	metrics.RecordMutation(kind)
	s.updateCounts()
	s.logger.Debug(ctx, "mutation applied", logger.String("kind", kind))
	return nil
}

// updateCounts must be called with mu held.
func (s *Service) updateCounts() {
	if s.data == nil {
		return
	}
	metrics.UpdateRecordCounts(len(s.data.Players), len(s.data.Matches), len(s.data.Trainings))
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func notFound(kind string, id int) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
}
