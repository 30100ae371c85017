// Copyright (c) 2026 SkillHub. All rights reserved.

package location

import (
	"context"

	"github.com/skillhub/web/internal/platform/apperr"
)

// ErrNoSelection reports that a browser has no persisted location selection.
var ErrNoSelection = apperr.NotFound("Location selection")

// SelectionStore persists the per-browser selected location.
//
// The selection lives alongside the session record but in its own keyspace:
// it survives logout, so clearing the login state must not touch it.
type SelectionStore interface {
	// Get loads the selection for a browser, or [ErrNoSelection].
	Get(ctx context.Context, sid string) (*Location, error)

	// Save overwrites the selection for a browser.
	Save(ctx context.Context, sid string, location *Location) error
}
