// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package orders serves the customer side of the order lifecycle: the booking
form, the my-bookings list, cancellation, and rating.

The backend owns the order list. Every mutation here is a command followed by
a re-fetch, and the response carries the fresh authoritative list rather than
a locally patched copy. Lifecycle preconditions (what a customer may cancel,
what may be rated) are checked against that fetched state before the command
is sent, so an impossible action fails fast with a precise error instead of a
generic backend rejection.
*/
package orders

import (
	"github.com/skillhub/web/internal/order"
)

// BookingInput is the booking form as submitted by the browser.
//
// The scheduled time arrives in datetime-local form ("2006-01-02T15:04") and
// the address is the street address only; the service layer appends the
// selected area and converts the timestamp to the backend's wire format.
type BookingInput struct {
	ProviderUserID int64   `json:"provider_user_id"`
	ServiceID      int64   `json:"service_id"`
	TotalPrice     float64 `json:"total_price"`
	ScheduledAt    string  `json:"scheduled_at"`
	Address        string  `json:"customer_address"`
	Notes          string  `json:"notes"`
}

// View is one order as rendered to the customer, the raw order plus the
// derived rate-affordance flag.
type View struct {
	order.Order
	CanRate bool `json:"can_rate"`
}

// present decorates orders with their derived affordances.
func present(list []order.Order) []View {
	views := make([]View, 0, len(list))
	for i := range list {
		views = append(views, View{Order: list[i], CanRate: list[i].CanRate()})
	}
	return views
}
