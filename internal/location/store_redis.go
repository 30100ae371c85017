// Copyright (c) 2026 SkillHub. All rights reserved.

package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/skillhub/web/internal/platform/constants"
)

// RedisSelectionStore implements [SelectionStore] on the shared Redis client.
//
// Selections are written without a TTL, matching the session record.
type RedisSelectionStore struct {
	client *redis.Client
}

// NewRedisSelectionStore creates a Redis-backed selection store.
func NewRedisSelectionStore(client *redis.Client) *RedisSelectionStore {
	return &RedisSelectionStore{client: client}
}

func (store *RedisSelectionStore) key(sid string) string {
	return constants.RedisPrefixLocationSelection + sid
}

// Get loads the selection for a browser, or [ErrNoSelection].
func (store *RedisSelectionStore) Get(ctx context.Context, sid string) (*Location, error) {
	raw, err := store.client.Get(ctx, store.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSelection
		}
		return nil, fmt.Errorf("selection_store_get_failed: %w", err)
	}

	var location Location
	if err := json.Unmarshal([]byte(raw), &location); err != nil {
		return nil, fmt.Errorf("selection_store_decode_failed: %w", err)
	}
	return &location, nil
}

// Save overwrites the selection for a browser.
func (store *RedisSelectionStore) Save(ctx context.Context, sid string, location *Location) error {
	raw, err := json.Marshal(location)
	if err != nil {
		return fmt.Errorf("selection_store_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, store.key(sid), raw, 0).Err(); err != nil {
		return fmt.Errorf("selection_store_save_failed: %w", err)
	}
	return nil
}
