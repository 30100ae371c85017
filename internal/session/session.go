// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package session implements the browser session layer of the web front end.

A Session is the client's belief about who is currently authenticated and in
what role. It holds the opaque bearer token issued by the marketplace backend,
the role claim, and the display name. The record is persisted durably per
browser and carries no client-side expiry: staleness is only ever discovered
when the upstream rejects the token.

# Architecture

The entity is storage-agnostic; [Store] implementations persist it. The
[Service] owns the login/logout state transitions, and http.go exposes the
login, signup, and logout actions of the site.
*/
package session

import (
	"context"
	"time"

	"github.com/skillhub/web/internal/platform/ctxkey"
)

// # Roles

// Role is the role claim attached to an authenticated session.
type Role string

const (
	// RoleCustomer browses services and places bookings.
	RoleCustomer Role = "customer"

	// RoleProvider completes a profile and works incoming orders.
	RoleProvider Role = "provider"
)

// Valid reports whether the role is one of the known claims.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleProvider
}

// # Domain Entity

// Session is the durable per-browser record.
//
// Token absence defines the logged-out state; Role, UserID, and DisplayName
// are meaningful only while Token is present.
type Session struct {
	SID         string    `json:"sid"`
	Token       string    `json:"token,omitempty"`
	Role        Role      `json:"role,omitempty"`
	UserID      int64     `json:"user_id,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsActive reports whether a login is in effect.
func (s *Session) IsActive() bool {
	return s != nil && s.Token != ""
}

// Name returns the display name, falling back to a default when unset.
func (s *Session) Name() string {
	if s == nil || s.DisplayName == "" {
		return "User"
	}
	return s.DisplayName
}

// clearAuth wipes the login state while keeping the browser identity.
func (s *Session) clearAuth() {
	s.Token = ""
	s.Role = ""
	s.UserID = 0
	s.DisplayName = ""
	s.UpdatedAt = time.Now().UTC()
}

// # Context Plumbing

// NewContext returns a context carrying the session loaded for this request.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, ctxkey.KeySession, sess)
}

// FromContext retrieves the current browser session, or nil when the
// request bypassed the session loader.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(ctxkey.KeySession).(*Session)
	return sess
}

// TokenFromContext returns the bearer token of the current session, or the
// empty string for anonymous requests. It is the gateway's token source.
func TokenFromContext(ctx context.Context) string {
	if sess := FromContext(ctx); sess != nil {
		return sess.Token
	}
	return ""
}

// # Field Identifiers

// Global field names for validation in the auth flows.
const (
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPasswordConfirmation = "password_confirmation"
	FieldFullName             = "full_name"
	FieldRole                 = "role"
)
