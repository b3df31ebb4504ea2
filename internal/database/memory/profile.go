// Package memory keeps profiles in process memory. It backs the memory
// storage backend and doubles as a fake in service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/satchel/internal/domain"
)

// ProfileRepository is a mutex-guarded in-memory profile store
type ProfileRepository struct {
	mu    sync.RWMutex
	saves map[string][]byte
	order map[string]int64
	seq   int64
}

// NewProfileRepository creates an empty store
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		saves: make(map[string][]byte),
		order: make(map[string]int64),
	}
}

// CreateProfile stores the initial save for a new profile
func (r *ProfileRepository) CreateProfile(_ context.Context, profileID string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.saves[profileID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrProfileExists, profileID)
	}
	r.put(profileID, data)
	return nil
}

// GetSave returns a copy of the stored save payload
func (r *ProfileRepository) GetSave(_ context.Context, profileID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.saves[profileID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	return append([]byte(nil), data...), nil
}

// UpdateSave replaces the stored save payload
func (r *ProfileRepository) UpdateSave(_ context.Context, profileID string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.saves[profileID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	r.put(profileID, data)
	return nil
}

// DeleteProfile removes a profile and its save
func (r *ProfileRepository) DeleteProfile(_ context.Context, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.saves[profileID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, profileID)
	}
	delete(r.saves, profileID)
	delete(r.order, profileID)
	return nil
}

// ListProfiles returns every profile id, most recently updated first
func (r *ProfileRepository) ListProfiles(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.saves))
	for id := range r.saves {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.order[ids[i]] > r.order[ids[j]]
	})
	return ids, nil
}

// Ping always succeeds
func (r *ProfileRepository) Ping(context.Context) error {
	return nil
}

func (r *ProfileRepository) put(profileID string, data []byte) {
	r.seq++
	r.saves[profileID] = append([]byte(nil), data...)
	r.order[profileID] = r.seq
}
