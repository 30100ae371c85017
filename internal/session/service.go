// Copyright (c) 2026 SkillHub. All rights reserved.

package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/skillhub/web/internal/gateway"
)

// Service owns the session state transitions.
//
// All writes to the durable record funnel through here: Login, Logout, and
// Invalidate (the gateway's auth-failure hook). Reads happen on every request
// via the session-loader middleware.
type Service struct {
	store    Store
	upstream *upstreamAuth
	log      *slog.Logger
}

// NewService creates the session service.
func NewService(store Store, client *gateway.Client, log *slog.Logger) *Service {
	return &Service{
		store:    store,
		upstream: &upstreamAuth{client: client},
		log:      log,
	}
}

// Begin returns the session for the given browser ID, minting a fresh
// anonymous record when none exists yet.
func (service *Service) Begin(ctx context.Context, sid string) (*Session, error) {
	sess, err := service.store.Get(ctx, sid)
	if err == nil {
		return sess, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	fresh := &Session{SID: sid, CreatedAt: now, UpdatedAt: now}
	if err := service.store.Save(ctx, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Login unconditionally persists the issued credential and flips the session
// to the logged-in state. Any non-empty token is accepted; the role claim is
// stored as reported by the backend.
func (service *Service) Login(ctx context.Context, sess *Session, token string, role Role, userID int64, displayName string) error {
	sess.Token = token
	sess.Role = role
	sess.UserID = userID
	sess.DisplayName = displayName
	sess.UpdatedAt = time.Now().UTC()

	if err := service.store.Save(ctx, sess); err != nil {
		return err
	}

	service.log.InfoContext(ctx, "session_login",
		slog.String("sid", sess.SID),
		slog.String("role", string(role)),
	)
	return nil
}

// Logout revokes the token upstream on a best-effort basis, then clears the
// local login state no matter what the revocation returned.
//
// The revocation is at-most-once and fire-and-forget: a server error, a
// timeout, or an unreachable backend must never block or revert the local
// logout.
func (service *Service) Logout(ctx context.Context, sess *Session) error {
	if sess.IsActive() {
		if err := service.upstream.revoke(ctx); err != nil {
			service.log.WarnContext(ctx, "logout_revocation_failed",
				slog.String("sid", sess.SID),
				slog.String("error", err.Error()),
			)
		} else {
			service.log.InfoContext(ctx, "logout_token_revoked", slog.String("sid", sess.SID))
		}
	}

	sess.clearAuth()
	return service.store.Save(ctx, sess)
}

// Invalidate clears the login state without an upstream call. It is the
// gateway's auth-failure hook: the upstream already rejected the token, so
// there is nothing left to revoke.
func (service *Service) Invalidate(ctx context.Context, sess *Session) {
	if sess == nil || !sess.IsActive() {
		return
	}

	sess.clearAuth()
	if err := service.store.Save(ctx, sess); err != nil {
		service.log.ErrorContext(ctx, "session_invalidate_failed",
			slog.String("sid", sess.SID),
			slog.String("error", err.Error()),
		)
		return
	}
	service.log.InfoContext(ctx, "session_invalidated", slog.String("sid", sess.SID))
}
