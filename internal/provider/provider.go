// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package provider serves the provider side of the marketplace: the job
dashboard, order-status updates, and the profile-completion flow.

The dashboard is scoped to the provider's selected location and everything on
it is derived per request from the authoritative order list: the three job
buckets, the job count, and the completed-earnings figure. A status update is
a command to the backend followed by a re-fetch, with the requested
transition checked against the lifecycle rules first.
*/
package provider

import (
	"encoding/json"

	"github.com/skillhub/web/internal/catalog"
	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/order"
)

// Profile is the provider's professional profile as stored by the backend.
type Profile struct {
	Description        string         `json:"description"`
	HourlyRate         gateway.Number `json:"hourly_rate"`
	ExperienceYears    gateway.Number `json:"experience_years"`
	Skills             string         `json:"skills,omitempty"`
	LocationID         json.Number    `json:"location_id,omitempty"`
	AvailabilityStatus string         `json:"availability_status,omitempty"`
}

// ProfileInput is the profile-completion form as submitted by the browser.
// The selected location and the availability flag are attached server-side.
type ProfileInput struct {
	Description     string  `json:"description"`
	HourlyRate      float64 `json:"hourly_rate"`
	ExperienceYears int     `json:"experience_years"`
	ServiceID       int64   `json:"service_id"`
	Skills          string  `json:"skills"`
}

// Dashboard is the provider's job overview for the selected location.
type Dashboard struct {
	Location  *location.Location `json:"location"`
	Buckets   order.Buckets      `json:"buckets"`
	TotalJobs int                `json:"total_jobs"`
	Earnings  float64            `json:"earnings"`
}

// buildDashboard derives the dashboard from the authoritative order list.
func buildDashboard(selected *location.Location, list []order.Order) *Dashboard {
	return &Dashboard{
		Location:  selected,
		Buckets:   order.Partition(list),
		TotalJobs: len(list),
		Earnings:  order.CompletedEarnings(list),
	}
}

// ProfileView is the profile page payload: the stored profile (nil when not
// yet completed) plus the service catalog for the category dropdown.
type ProfileView struct {
	Profile  *Profile          `json:"profile"`
	Services []catalog.Service `json:"services"`
}
