// Copyright (c) 2026 SkillHub. All rights reserved.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/skillhub/web/internal/platform/constants"
)

// RedisStore implements [Store] on the shared Redis client.
//
// Records are written without a TTL: the browser session has no client-side
// expiry, matching the durable-storage contract of the front end.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (store *RedisStore) key(sid string) string {
	return constants.RedisPrefixBrowserSession + sid
}

// Get loads the session record for a browser, or [ErrNotFound].
func (store *RedisStore) Get(ctx context.Context, sid string) (*Session, error) {
	raw, err := store.client.Get(ctx, store.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session_store_get_failed: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, fmt.Errorf("session_store_decode_failed: %w", err)
	}
	return &sess, nil
}

// Save overwrites the session record unconditionally.
func (store *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session_store_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, store.key(sess.SID), raw, 0).Err(); err != nil {
		return fmt.Errorf("session_store_save_failed: %w", err)
	}
	return nil
}

// Delete removes the session record.
func (store *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := store.client.Del(ctx, store.key(sid)).Err(); err != nil {
		return fmt.Errorf("session_store_delete_failed: %w", err)
	}
	return nil
}
