// Copyright (c) 2026 SkillHub. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/skillhub/web/internal/gateway"
)

// upstreamCatalog wraps the gateway calls behind the browse views.
type upstreamCatalog struct {
	client *gateway.Client
}

// services lists the services offered in an area.
func (u *upstreamCatalog) services(ctx context.Context, locationID int64) ([]Service, error) {
	query := url.Values{}
	query.Set("location_id", strconv.FormatInt(locationID, 10))

	var raw json.RawMessage
	if err := u.client.Get(ctx, "/services", query, &raw); err != nil {
		return nil, err
	}

	services := []Service{}
	if err := gateway.ExtractList(raw, "services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

// providers lists the providers offering a service, optionally narrowed to an
// area.
func (u *upstreamCatalog) providers(ctx context.Context, serviceID string, locationID int64) ([]Provider, error) {
	query := url.Values{}
	query.Set("service_id", serviceID)
	if locationID != 0 {
		query.Set("location_id", strconv.FormatInt(locationID, 10))
	}

	var raw json.RawMessage
	if err := u.client.Get(ctx, "/providers", query, &raw); err != nil {
		return nil, err
	}

	providers := []Provider{}
	if err := gateway.ExtractList(raw, "providers", &providers); err != nil {
		return nil, err
	}
	return providers, nil
}
