// Copyright (c) 2026 SkillHub. All rights reserved.

package location

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/platform/apperr"
)

// ErrNoLocations reports a successful catalog fetch that returned no areas.
var ErrNoLocations = apperr.NotFound("Service areas")

// ErrUnavailable reports that the catalog could not be fetched at all.
var ErrUnavailable = apperr.UpstreamUnavailable(nil)

// Catalog holds the service-area list fetched from the backend.
//
// It is loaded once at startup and read concurrently afterwards. When the
// startup fetch failed outright, the next read retries it, one attempt per
// read, so a backend that was briefly down at boot does not blank the site
// until a restart.
type Catalog struct {
	mu        sync.RWMutex
	locations []Location
	loaded    bool

	client *gateway.Client
	log    *slog.Logger
}

// NewCatalog creates an unloaded catalog.
func NewCatalog(client *gateway.Client, log *slog.Logger) *Catalog {
	return &Catalog{client: client, log: log}
}

// Load fetches the service areas from the backend and replaces the cached
// list. An empty result loads successfully and yields [ErrNoLocations] on
// subsequent reads.
func (catalog *Catalog) Load(ctx context.Context) error {
	var raw json.RawMessage
	if err := catalog.client.Get(ctx, "/locations", nil, &raw); err != nil {
		catalog.log.WarnContext(ctx, "location_catalog_fetch_failed",
			slog.String("error", err.Error()),
		)
		return err
	}

	var locations []Location
	if err := gateway.ExtractList(raw, "locations", &locations); err != nil {
		catalog.log.WarnContext(ctx, "location_catalog_decode_failed",
			slog.String("error", err.Error()),
		)
		return err
	}

	catalog.mu.Lock()
	catalog.locations = locations
	catalog.loaded = true
	catalog.mu.Unlock()

	catalog.log.InfoContext(ctx, "location_catalog_loaded",
		slog.Int("count", len(locations)),
	)
	return nil
}

// Locations returns the cached service areas.
//
// Returns [ErrNoLocations] when the catalog loaded empty, and [ErrUnavailable]
// when it never loaded and the lazy retry failed as well.
func (catalog *Catalog) Locations(ctx context.Context) ([]Location, error) {
	catalog.mu.RLock()
	loaded, locations := catalog.loaded, catalog.locations
	catalog.mu.RUnlock()

	if !loaded {
		if err := catalog.Load(ctx); err != nil {
			return nil, ErrUnavailable
		}
		catalog.mu.RLock()
		locations = catalog.locations
		catalog.mu.RUnlock()
	}

	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	return locations, nil
}

// Contains reports whether the catalog currently lists the given area.
func (catalog *Catalog) Contains(locationID int64) bool {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	for _, location := range catalog.locations {
		if location.LocationID == locationID {
			return true
		}
	}
	return false
}
