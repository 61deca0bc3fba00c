// Package scheduler runs the background jobs: document backups on a cron
// schedule and a periodic refresh of the process and squad gauges.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// Job names.
const (
	JobBackup = "backup"
	JobGauges = "gauges"
)

const (
	defaultGaugeInterval = time.Minute
	backupTimeout        = 2 * time.Minute
)

// ErrNoBackupJob is returned by RunBackupNow when no backup is scheduled.
var ErrNoBackupJob = errors.New("no backup job scheduled")

// Backuper copies the squad document aside.
type Backuper interface {
	Backup(ctx context.Context) (string, error)
}

// GaugeRefresher republishes the squad gauges.
type GaugeRefresher interface {
	RefreshGauges()
}

// Scheduler owns the gocron scheduler and its jobs.
type Scheduler struct {
	s        gocron.Scheduler
	backup   Backuper
	gauges   GaugeRefresher
	cron     string
	interval time.Duration
	location *time.Location
	log      logger.Logger

	backupJob gocron.Job
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithBackupCron sets the five-field crontab of the backup job. Empty
// disables backups.
func WithBackupCron(expr string) Option {
	return func(s *Scheduler) { s.cron = expr }
}

// WithGaugeInterval sets how often gauges are refreshed.
func WithGaugeInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLocation sets the time zone the crontab is read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a scheduler. backup may be nil when the store keeps no
// copies; gauges may be nil to only publish process gauges.
func New(backup Backuper, gauges GaugeRefresher, opts ...Option) (*Scheduler, error) {
	s := &Scheduler{
		backup:   backup,
		gauges:   gauges,
		interval: defaultGaugeInterval,
		location: time.Local,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	gs, err := gocron.NewScheduler(gocron.WithLocation(s.location))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	s.s = gs
	return s, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	if s.backup != nil && s.cron != "" {
		job, err := s.s.NewJob(
			gocron.CronJob(s.cron, false),
			gocron.NewTask(s.runBackup),
			gocron.WithName(JobBackup),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create backup job %q: %w", s.cron, err)
		}
		s.backupJob = job
	}

	if _, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.refreshGauges),
		gocron.WithName(JobGauges),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	); err != nil {
		return fmt.Errorf("failed to create gauges job: %w", err)
	}

	s.s.Start()
	s.log.Info(context.Background(), "scheduler started",
		logger.String("backup_cron", s.cron),
		logger.Duration("gauge_interval", s.interval),
	)
	return nil
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// RunBackupNow triggers the backup job outside its schedule.
func (s *Scheduler) RunBackupNow() error {
	if s.backupJob == nil {
		return ErrNoBackupJob
	}
	return s.backupJob.RunNow()
}

func (s *Scheduler) runBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
	defer cancel()

	path, err := s.backup.Backup(ctx)
	switch {
	case errors.Is(err, repository.ErrNoDocument):
		s.log.Info(ctx, "nothing to back up yet")
	case err != nil:
		s.log.Error(ctx, "backup failed", logger.Error(err))
	default:
		s.log.Info(ctx, "backup written", logger.String("path", path))
	}
}

func (s *Scheduler) refreshGauges() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if s.gauges != nil {
		s.gauges.RefreshGauges()
	}
}
