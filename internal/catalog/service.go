// Copyright (c) 2026 SkillHub. All rights reserved.

package catalog

import (
	"context"
	"log/slog"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/platform/apperr"
)

// ErrLocationRequired rejects a services browse with no resolvable location.
var ErrLocationRequired = apperr.PreconditionFailed("Please select a location to view services")

// Browser implements the two browse views.
type Browser struct {
	upstream  *upstreamCatalog
	locations *location.Service
	log       *slog.Logger
}

// NewBrowser creates the browse service.
func NewBrowser(client *gateway.Client, locations *location.Service, log *slog.Logger) *Browser {
	return &Browser{
		upstream:  &upstreamCatalog{client: client},
		locations: locations,
		log:       log,
	}
}

// Services lists the services offered in the browser's resolved location.
//
// An unresolved location does not degrade to an unscoped fetch: the view is
// meaningless without an area, so the request is rejected with
// [ErrLocationRequired].
func (browser *Browser) Services(ctx context.Context, sid string) (*location.Location, []Service, error) {
	selected, err := browser.locations.Resolve(ctx, sid)
	if err != nil {
		return nil, nil, ErrLocationRequired
	}

	services, err := browser.upstream.services(ctx, selected.LocationID)
	if err != nil {
		return nil, nil, err
	}
	return selected, services, nil
}

// Providers lists the providers offering a service.
//
// The location narrows the list only when one resolves; an unresolved
// location widens the view instead of blocking it.
func (browser *Browser) Providers(ctx context.Context, sid, serviceID string) ([]Provider, error) {
	var locationID int64
	if selected, err := browser.locations.Resolve(ctx, sid); err == nil {
		locationID = selected.LocationID
	} else {
		browser.log.InfoContext(ctx, "provider_browse_unscoped",
			slog.String("sid", sid),
			slog.String("error", err.Error()),
		)
	}

	return browser.upstream.providers(ctx, serviceID, locationID)
}
