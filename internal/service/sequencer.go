package service

import (
	"context"
	"sync"

	"github.com/GTDGit/paydii_api/internal/repository"
)

// Sequencer runs mutating operations one at a time, so the validate, stage
// and commit steps of one operation never interleave with another's. Every
// registry sharing a store must share one Sequencer.
type Sequencer struct {
	mu sync.Mutex
}

// NewSequencer constructs a Sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Do runs fn while holding the write lock. Reads made through the context
// passed to fn bypass any cache in front of the store.
func (s *Sequencer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(repository.WithSourceReads(ctx))
}
