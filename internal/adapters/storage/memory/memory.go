// Package memory provides an in-process DurableStorage. Slots live for the
// lifetime of the process; it backs tests and the "memory" storage backend.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

var _ ports.DurableStorage = (*Storage)(nil)

// Storage is a map-backed slot store. Values are copied on the way in and on
// the way out so callers never share a backing array with the store.
type Storage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{slots: map[string][]byte{}}
}

func (s *Storage) GetItem(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	value, ok := s.slots[key]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", key, domain.ErrNotFound)
	}
	return bytes.Clone(value), nil
}

func (s *Storage) SetItem(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.slots[key] = bytes.Clone(value)
	s.mu.Unlock()
	return nil
}

func (s *Storage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()
	return nil
}

// Name implements ports.HealthChecker.
func (s *Storage) Name() string {
	return "storage.memory"
}

// HealthCheck implements ports.HealthChecker. Memory storage is always healthy.
func (s *Storage) HealthCheck(_ context.Context) error {
	return nil
}

// Len returns the number of slots currently held.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
