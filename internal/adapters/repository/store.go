// Package repository persists the squad document as a single JSON file.
//
// The file is the source of truth. Writes replace it atomically through a
// temporary file; concurrent writers are not coordinated and the last save
// wins.
package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// Store loads and saves the squad document.
type Store interface {
	// Load reads the document. A missing file yields an empty document.
	Load(ctx context.Context) (*model.Data, error)
	// Save replaces the document on disk.
	Save(ctx context.Context, d *model.Data) error
}

// Backuper copies the current document aside.
type Backuper interface {
	// Backup returns the path of the written copy.
	Backup(ctx context.Context) (string, error)
}

const defaultFileMode os.FileMode = 0o644

// FileStore is a Store backed by one JSON file.
type FileStore struct {
	path      string
	backupDir string
	mode      os.FileMode
	log       logger.Logger
	now       func() time.Time
}

var (
	_ Store    = (*FileStore)(nil)
	_ Backuper = (*FileStore)(nil)
)

// NewFileStore creates a store for the document at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path: path,
		mode: defaultFileMode,
		log:  logger.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document location.
func (s *FileStore) Path() string { return s.path }

// Load reads and validates the document. Unreadable files, malformed JSON
// and documents that fail validation are reported as ErrLoad.
func (s *FileStore) Load(ctx context.Context) (*model.Data, error) {
	start := time.Now()
	d, err := s.load(ctx)
	metrics.RecordStoreOperation("load", time.Since(start), err)
	return d, err
}

func (s *FileStore) load(ctx context.Context) (*model.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info(ctx, "no squad document yet, starting empty", logger.String("path", s.path))
		return model.NewData(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	d, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, s.path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, s.path, err)
	}
	metrics.UpdateDocumentBytes(len(b))
	s.log.Debug(ctx, "squad document loaded",
		logger.String("path", s.path),
		logger.Int("players", len(d.Players)),
		logger.Int("matches", len(d.Matches)),
		logger.Int("trainings", len(d.Trainings)),
	)
	return d, nil
}

// Save writes the document, creating parent directories as needed.
func (s *FileStore) Save(ctx context.Context, d *model.Data) error {
	start := time.Now()
	err := s.save(ctx, d)
	metrics.RecordStoreOperation("save", time.Since(start), err)
	if err != nil {
		s.log.Error(ctx, "save failed", logger.String("path", s.path), logger.Error(err))
	}
	return err
}

func (s *FileStore) save(ctx context.Context, d *model.Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d == nil {
		return fmt.Errorf("%w: nil document", ErrSave)
	}
	b, err := Encode(d)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := writeFileAtomic(s.path, b, s.mode); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	metrics.UpdateDocumentBytes(len(b))
	return nil
}

// Backup copies the document on disk to the backup directory under a
// timestamped, collision-free name.
func (s *FileStore) Backup(ctx context.Context) (string, error) {
	start := time.Now()
	at := s.now()
	dst, err := s.backup(ctx, at)
	metrics.RecordStoreOperation("backup", time.Since(start), err)
	metrics.RecordBackup(at, err)
	if err != nil {
		return "", err
	}
	s.log.Info(ctx, "squad document backed up", logger.String("backup", dst))
	return dst, nil
}

func (s *FileStore) backup(ctx context.Context, at time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.backupDir == "" {
		return "", fmt.Errorf("%w: no backup directory configured", ErrBackup)
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoDocument
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	base := filepath.Base(s.path)
	name := fmt.Sprintf("%s.%s.%s.bak",
		base[:len(base)-len(filepath.Ext(base))],
		at.UTC().Format("20060102T150405Z"),
		uuid.NewString()[:8],
	)
	dst := filepath.Join(s.backupDir, name)
	if err := writeFileAtomic(dst, b, s.mode); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackup, err)
	}
	return dst, nil
}

// writeFileAtomic writes b to a temporary sibling of path and renames it.
func writeFileAtomic(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error wins
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck,gosec // sync error wins
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, mode); err != nil {
		return err
	}
	return os.Rename(name, path)
}
