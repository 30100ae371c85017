// Copyright (c) 2026 SkillHub. All rights reserved.

package location

import (
	"context"
	"errors"
	"log/slog"

	"github.com/skillhub/web/internal/platform/apperr"
)

// Service resolves and updates the per-browser location selection.
type Service struct {
	catalog    *Catalog
	selections SelectionStore
	log        *slog.Logger
}

// NewService creates the location service.
func NewService(catalog *Catalog, selections SelectionStore, log *slog.Logger) *Service {
	return &Service{catalog: catalog, selections: selections, log: log}
}

// Catalog returns the shared service-area catalog.
func (service *Service) Catalog() *Catalog {
	return service.catalog
}

// Resolve returns the effective location for a browser.
//
// A persisted selection wins while it still names a catalog entry. Otherwise
// the catalog's first area becomes the selection and is persisted, so the
// fallback is stable across requests. When the catalog is unavailable or
// empty the browser has no effective location and the catalog error is
// returned; callers suppress their location-scoped fetches in that state.
func (service *Service) Resolve(ctx context.Context, sid string) (*Location, error) {
	locations, err := service.catalog.Locations(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := service.selections.Get(ctx, sid)
	switch {
	case err == nil:
		if service.catalog.Contains(selected.LocationID) {
			return selected, nil
		}
		service.log.InfoContext(ctx, "location_selection_stale",
			slog.String("sid", sid),
			slog.Int64("location_id", selected.LocationID),
		)
	case !errors.Is(err, ErrNoSelection):
		return nil, err
	}

	fallback := locations[0]
	if err := service.selections.Save(ctx, sid, &fallback); err != nil {
		return nil, err
	}
	return &fallback, nil
}

// Update persists a new selection for a browser.
//
// Any location carrying an identifier is accepted; membership in the catalog
// is not checked, so a stale entry falls back on the next [Service.Resolve]
// rather than being rejected here.
func (service *Service) Update(ctx context.Context, sid string, location *Location) error {
	if location.LocationID == 0 {
		return apperr.ValidationError("A location must be selected",
			apperr.FieldError{Field: "location_id", Message: "location_id is required"})
	}

	if err := service.selections.Save(ctx, sid, location); err != nil {
		return err
	}

	service.log.InfoContext(ctx, "location_selection_updated",
		slog.String("sid", sid),
		slog.Int64("location_id", location.LocationID),
	)
	return nil
}
