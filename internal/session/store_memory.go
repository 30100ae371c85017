// Copyright (c) 2026 SkillHub. All rights reserved.

package session

import (
	"context"
	"sync"
)

// MemoryStore implements [Store] in process memory.
//
// It backs tests and local development without a Redis instance. Records are
// deep-copied on the way in and out so callers cannot alias store state.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Session)}
}

// Get loads the session record for a browser, or [ErrNotFound].
func (store *MemoryStore) Get(_ context.Context, sid string) (*Session, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	record, ok := store.records[sid]
	if !ok {
		return nil, ErrNotFound
	}
	copied := record
	return &copied, nil
}

// Save overwrites the session record unconditionally.
func (store *MemoryStore) Save(_ context.Context, sess *Session) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.records[sess.SID] = *sess
	return nil
}

// Delete removes the session record.
func (store *MemoryStore) Delete(_ context.Context, sid string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.records, sid)
	return nil
}
