package repository

import (
	"os"
	"time"

	"github.com/okian/pitchside/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithBackupDir sets where Backup writes copies of the document.
func WithBackupDir(dir string) Option {
	return func(s *FileStore) {
		s.backupDir = dir
	}
}

// WithFileMode sets the permissions of written files.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		if mode != 0 {
			s.mode = mode
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the clock used to name backups.
func WithClock(now func() time.Time) Option {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}
