// Copyright (c) 2026 SkillHub. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/skillhub/web/internal/catalog"
	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/order"
	"github.com/skillhub/web/internal/platform/apperr"
)

// upstreamProvider wraps the gateway calls behind the provider views.
type upstreamProvider struct {
	client *gateway.Client
}

// orders fetches the provider's jobs in an area.
func (u *upstreamProvider) orders(ctx context.Context, locationID int64) ([]order.Order, error) {
	query := url.Values{}
	query.Set("location_id", strconv.FormatInt(locationID, 10))

	var raw json.RawMessage
	if err := u.client.Get(ctx, "/provider/orders", query, &raw); err != nil {
		return nil, err
	}

	list := []order.Order{}
	if err := gateway.ExtractList(raw, "orders", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// updateStatus asks the backend to move a job to a new status.
func (u *upstreamProvider) updateStatus(ctx context.Context, orderID string, status order.Status) (*gateway.Message, error) {
	body := map[string]string{"status": string(status)}

	var response gateway.Message
	if err := u.client.Put(ctx, fmt.Sprintf("/provider/orders/%s/status", orderID), body, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// profile fetches the stored profile, nil when none was completed yet.
func (u *upstreamProvider) profile(ctx context.Context) (*Profile, error) {
	var response struct {
		Profile json.RawMessage `json:"profile"`
	}
	if err := u.client.Get(ctx, "/provider/profile", nil, &response); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(response.Profile)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var profile Profile
	if err := json.Unmarshal(trimmed, &profile); err != nil {
		return nil, apperr.UpstreamUnavailable(fmt.Errorf("provider: decode profile: %w", err))
	}
	return &profile, nil
}

// profilePayload is the wire shape of the profile-completion write.
type profilePayload struct {
	Description        string  `json:"description"`
	HourlyRate         float64 `json:"hourly_rate"`
	ExperienceYears    int     `json:"experience_years"`
	ServiceID          int64   `json:"service_id"`
	Skills             string  `json:"skills"`
	LocationID         int64   `json:"location_id"`
	AvailabilityStatus string  `json:"availability_status"`
}

// saveProfile writes the profile.
func (u *upstreamProvider) saveProfile(ctx context.Context, payload profilePayload) error {
	return u.client.Put(ctx, "/provider/profile", payload, nil)
}

// attachedService is one entry of the service-attachment write.
type attachedService struct {
	ServiceID int64   `json:"service_id"`
	Price     float64 `json:"price"`
}

// attachServices registers the services the provider offers and their rates.
func (u *upstreamProvider) attachServices(ctx context.Context, services []attachedService) error {
	body := map[string][]attachedService{"services": services}
	return u.client.Post(ctx, "/provider/services", body, nil)
}

// serviceCatalog fetches the full service list for the category dropdown.
// Unscoped on purpose: a provider picks a category before having any area
// inventory.
func (u *upstreamProvider) serviceCatalog(ctx context.Context) ([]catalog.Service, error) {
	var raw json.RawMessage
	if err := u.client.Get(ctx, "/services", nil, &raw); err != nil {
		return nil, err
	}

	services := []catalog.Service{}
	if err := gateway.ExtractList(raw, "services", &services); err != nil {
		return nil, err
	}
	return services, nil
}
