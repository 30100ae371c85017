// Copyright (c) 2026 SkillHub. All rights reserved.

package session

import (
	"context"

	"github.com/skillhub/web/internal/platform/apperr"
)

// ErrNotFound is returned when no record exists for a browser session ID.
var ErrNotFound = apperr.NotFound("Session")

// Store persists browser session records.
//
// Implementations must treat Save as an unconditional overwrite: login always
// wins, and logout must never be blocked by stale state.
type Store interface {
	Get(ctx context.Context, sid string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, sid string) error
}
