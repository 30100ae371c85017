// Copyright (c) 2026 SkillHub. All rights reserved.

package orders

import (
	"context"
	"log/slog"
	"time"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/location"
	"github.com/skillhub/web/internal/order"
	"github.com/skillhub/web/internal/platform/apperr"
	"github.com/skillhub/web/internal/platform/constants"
	"github.com/skillhub/web/internal/session"
)

// ErrBookingLocationRequired rejects a booking with no resolvable location.
var ErrBookingLocationRequired = apperr.PreconditionFailed("Please select a location before booking")

// Service implements the customer order operations.
type Service struct {
	upstream  *upstreamOrders
	locations *location.Service
	log       *slog.Logger
}

// NewService creates the customer orders service.
func NewService(client *gateway.Client, locations *location.Service, log *slog.Logger) *Service {
	return &Service{
		upstream:  &upstreamOrders{client: client},
		locations: locations,
		log:       log,
	}
}

// List fetches the customer's orders.
func (service *Service) List(ctx context.Context) ([]order.Order, error) {
	return service.upstream.list(ctx)
}

// Place submits a booking assembled from the form input, the session, and
// the resolved location.
func (service *Service) Place(ctx context.Context, sess *session.Session, input BookingInput) (*gateway.Message, error) {
	selected, err := service.locations.Resolve(ctx, sess.SID)
	if err != nil {
		return nil, ErrBookingLocationRequired
	}

	scheduled, err := time.Parse(constants.ScheduledAtInputFormat, input.ScheduledAt)
	if err != nil {
		return nil, apperr.ValidationError("Invalid schedule time",
			apperr.FieldError{Field: "scheduled_at", Message: "scheduled_at must be a valid date and time"})
	}

	notes := input.Notes
	if notes == "" {
		notes = "No notes provided"
	}

	payload := bookingPayload{
		ProviderUserID: input.ProviderUserID,
		CustomerID:     sess.UserID,
		ServiceID:      input.ServiceID,
		LocationID:     selected.LocationID,
		TotalPrice:     input.TotalPrice,
		ScheduledAt:    scheduled.Format(constants.ScheduledAtWireFormat),
		Address:        input.Address + ", " + selected.Area,
		Notes:          notes,
		PaymentMethod:  "COD",
		Status:         string(order.StatusPending),
	}

	message, err := service.upstream.place(ctx, payload)
	if err != nil {
		return nil, err
	}

	service.log.InfoContext(ctx, "order_placed",
		slog.String("sid", sess.SID),
		slog.Int64("provider_user_id", input.ProviderUserID),
		slog.Int64("location_id", selected.LocationID),
	)
	return message, nil
}

// Cancel cancels a pending order and returns the fresh list.
//
// The precondition is checked against the just-fetched state: only a pending
// order may be cancelled by its customer.
func (service *Service) Cancel(ctx context.Context, orderID string) (*gateway.Message, []order.Order, error) {
	current, err := service.find(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if !order.CanTransition(order.ActorCustomer, current.Status, order.StatusCancelled) {
		return nil, nil, apperr.PreconditionFailed("Only pending bookings can be cancelled")
	}

	message, err := service.upstream.cancel(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	fresh, err := service.upstream.list(ctx)
	if err != nil {
		return nil, nil, err
	}

	service.log.InfoContext(ctx, "order_cancelled", slog.String("order_id", orderID))
	return message, fresh, nil
}

// Rate submits a review for a completed order and returns the fresh list.
func (service *Service) Rate(ctx context.Context, orderID string, rating int, comment string) (*gateway.Message, []order.Order, error) {
	current, err := service.find(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if !current.CanRate() {
		return nil, nil, apperr.PreconditionFailed("Only completed, unrated bookings can be rated")
	}

	message, err := service.upstream.rate(ctx, orderID, rating, comment)
	if err != nil {
		return nil, nil, err
	}

	fresh, err := service.upstream.list(ctx)
	if err != nil {
		return nil, nil, err
	}

	service.log.InfoContext(ctx, "order_rated",
		slog.String("order_id", orderID),
		slog.Int("rating", rating),
	)
	return message, fresh, nil
}

// find fetches the customer's orders and picks one by ID.
func (service *Service) find(ctx context.Context, orderID string) (*order.Order, error) {
	list, err := service.upstream.list(ctx)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if list[i].ID.String() == orderID {
			return &list[i], nil
		}
	}
	return nil, apperr.NotFound("Order")
}
