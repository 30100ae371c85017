// Copyright (c) 2026 SkillHub. All rights reserved.

// Package ctxkey defines the typed keys used to store values in [context.Context].
//
// # Why a dedicated package?
//
// Keeping the keys in one dependency-free package prevents import cycles between
// the middleware chain and the packages that read the values downstream.
package ctxkey

// Key is a private type to avoid collisions with context keys defined elsewhere.
type Key int

const (
	// KeyRequestID stores the per-request correlation ID.
	KeyRequestID Key = iota

	// KeyLogger stores the request-scoped *slog.Logger.
	KeyLogger

	// KeySession stores the *session.Session loaded for the current browser.
	KeySession
)
