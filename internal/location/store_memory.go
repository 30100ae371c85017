// Copyright (c) 2026 SkillHub. All rights reserved.

package location

import (
	"context"
	"sync"
)

// MemorySelectionStore implements [SelectionStore] in process memory.
//
// Used in tests and in local development without Redis.
type MemorySelectionStore struct {
	mu         sync.RWMutex
	selections map[string]Location
}

// NewMemorySelectionStore creates an empty in-memory selection store.
func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{selections: make(map[string]Location)}
}

// Get loads the selection for a browser, or [ErrNoSelection].
func (store *MemorySelectionStore) Get(ctx context.Context, sid string) (*Location, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	location, ok := store.selections[sid]
	if !ok {
		return nil, ErrNoSelection
	}

	copied := location
	return &copied, nil
}

// Save overwrites the selection for a browser.
func (store *MemorySelectionStore) Save(ctx context.Context, sid string, location *Location) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.selections[sid] = *location
	return nil
}
