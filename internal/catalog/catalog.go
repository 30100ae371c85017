// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package catalog serves the browse surface of the marketplace: the services
offered in an area and the providers offering a given service.

Both views are location-scoped. The services list requires a resolved
location and a logged-in customer; the providers list is public and attaches
the location only when one resolves, mirroring how a visitor can window-shop
providers before picking an area.
*/
package catalog

import (
	"encoding/json"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
)

// Service is one bookable service as listed by the backend.
type Service struct {
	ServiceID   json.Number `json:"service_id"`
	Name        string      `json:"service_name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
}

// Contact is the user record embedded in a provider listing.
type Contact struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

// OfferedService is a service a provider offers, as embedded in the listing.
type OfferedService struct {
	ServiceID json.Number `json:"service_id"`
}

// Provider is one provider row of the browse table.
type Provider struct {
	UserID          json.Number        `json:"user_id"`
	User            *Contact           `json:"user,omitempty"`
	Description     string             `json:"description,omitempty"`
	Location        *location.Location `json:"location,omitempty"`
	ExperienceYears gateway.Number     `json:"experience_years"`
	HourlyRate      gateway.Number     `json:"hourly_rate"`
	AverageRating   gateway.Number     `json:"average_rating"`
	Services        []OfferedService   `json:"services,omitempty"`
}
