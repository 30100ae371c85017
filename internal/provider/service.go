// Copyright (c) 2026 SkillHub. All rights reserved.

package provider

import (
	"context"
	"log/slog"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/order"
	"github.com/skillhub/web/internal/platform/apperr"
)

// ErrLocationRequired rejects provider operations with no resolvable location.
var ErrLocationRequired = apperr.PreconditionFailed("Please select a location to view your dashboard")

// Service implements the provider-side operations.
type Service struct {
	upstream  *upstreamProvider
	locations *location.Service
	log       *slog.Logger
}

// NewService creates the provider service.
func NewService(client *gateway.Client, locations *location.Service, log *slog.Logger) *Service {
	return &Service{
		upstream:  &upstreamProvider{client: client},
		locations: locations,
		log:       log,
	}
}

// Dashboard builds the job overview for the provider's resolved location.
func (service *Service) Dashboard(ctx context.Context, sid string) (*Dashboard, error) {
	selected, err := service.locations.Resolve(ctx, sid)
	if err != nil {
		return nil, ErrLocationRequired
	}

	list, err := service.upstream.orders(ctx, selected.LocationID)
	if err != nil {
		return nil, err
	}
	return buildDashboard(selected, list), nil
}

// UpdateStatus moves a job to a new status and returns the rebuilt dashboard.
//
// The requested transition is checked against the lifecycle rules using the
// job's just-fetched state, so an already-handled job fails with a precise
// conflict instead of a generic backend rejection.
func (service *Service) UpdateStatus(ctx context.Context, sid, orderID string, status order.Status) (*gateway.Message, *Dashboard, error) {
	selected, err := service.locations.Resolve(ctx, sid)
	if err != nil {
		return nil, nil, ErrLocationRequired
	}

	list, err := service.upstream.orders(ctx, selected.LocationID)
	if err != nil {
		return nil, nil, err
	}

	current := findOrder(list, orderID)
	if current == nil {
		return nil, nil, apperr.NotFound("Order")
	}
	if !order.CanTransition(order.ActorProvider, current.Status, status) {
		return nil, nil, apperr.PreconditionFailed("This job can no longer be moved to " + string(status))
	}

	message, err := service.upstream.updateStatus(ctx, orderID, status)
	if err != nil {
		return nil, nil, err
	}

	fresh, err := service.upstream.orders(ctx, selected.LocationID)
	if err != nil {
		return nil, nil, err
	}

	service.log.InfoContext(ctx, "provider_order_status_updated",
		slog.String("order_id", orderID),
		slog.String("status", string(status)),
	)
	return message, buildDashboard(selected, fresh), nil
}

// Profile fetches the stored profile together with the service catalog the
// completion form needs.
func (service *Service) Profile(ctx context.Context) (*ProfileView, error) {
	profile, err := service.upstream.profile(ctx)
	if err != nil {
		return nil, err
	}

	services, err := service.upstream.serviceCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: profile, Services: services}, nil
}

// SaveProfile writes the completed profile and attaches the offered service
// at the stated hourly rate.
func (service *Service) SaveProfile(ctx context.Context, sid string, input ProfileInput) error {
	selected, err := service.locations.Resolve(ctx, sid)
	if err != nil {
		return apperr.PreconditionFailed("Please select a location before completing your profile")
	}

	payload := profilePayload{
		Description:        input.Description,
		HourlyRate:         input.HourlyRate,
		ExperienceYears:    input.ExperienceYears,
		ServiceID:          input.ServiceID,
		Skills:             input.Skills,
		LocationID:         selected.LocationID,
		AvailabilityStatus: "available",
	}
	if err := service.upstream.saveProfile(ctx, payload); err != nil {
		return err
	}

	attach := []attachedService{{ServiceID: input.ServiceID, Price: input.HourlyRate}}
	if err := service.upstream.attachServices(ctx, attach); err != nil {
		return err
	}

	service.log.InfoContext(ctx, "provider_profile_completed",
		slog.String("sid", sid),
		slog.Int64("service_id", input.ServiceID),
		slog.Int64("location_id", selected.LocationID),
	)
	return nil
}

// findOrder picks an order by ID.
func findOrder(list []order.Order, orderID string) *order.Order {
	for i := range list {
		if list[i].ID.String() == orderID {
			return &list[i]
		}
	}
	return nil
}
