package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/pitchside/internal/domain/model"
)

// MemoryStore keeps the encoded document in memory. Saves go through the
// same codec as FileStore so both stores accept the same documents.
type MemoryStore struct {
	mu   sync.Mutex
	doc  []byte
	save int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with d; nil starts empty.
func NewMemoryStore(d *model.Data) *MemoryStore {
	s := &MemoryStore{}
	if d != nil {
		if b, err := Encode(d); err == nil {
			s.doc = b
		}
	}
	return s
}

// Load decodes the held document.
func (s *MemoryStore) Load(ctx context.Context) (*model.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return model.NewData(), nil
	}
	d, err := Decode(s.doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return d, nil
}

// Save replaces the held document.
func (s *MemoryStore) Save(ctx context.Context, d *model.Data) error {
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
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = b
	s.save++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save
}
