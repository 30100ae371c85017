// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package order models the marketplace order lifecycle as the front end sees it.

The backend owns the authoritative order list; this package only encodes the
rules the views need locally: which status transitions each party may request,
when a completed order can still be rated, and how a list of orders partitions
into the display buckets. A "transition" here is never applied locally, it is
a command sent to the backend followed by a re-fetch of the list.
*/
package order

import (
	"encoding/json"
	"strconv"
	"strings"
)

// # Status

// Status is the closed set of order states the backend reports.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether the status is one of the known states.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// # Actor

// Actor identifies which side of the order requests a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorProvider Actor = "provider"
)

// transitions lists every status change an actor may request.
//
// provider accepted -> cancelled is reachable through the status endpoint
// even though no screen offers it.
var transitions = map[Actor]map[Status][]Status{
	ActorCustomer: {
		StatusPending: {StatusCancelled},
	},
	ActorProvider: {
		StatusPending:  {StatusAccepted, StatusCancelled},
		StatusAccepted: {StatusCompleted, StatusCancelled},
	},
}

// CanTransition reports whether actor may move an order from one status to
// another.
func CanTransition(actor Actor, from, to Status) bool {
	for _, allowed := range transitions[actor][from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// # Price

// Price is an order amount. The backend serializes it inconsistently, as a
// JSON number or a numeric string, so decoding accepts both.
type Price float64

// UnmarshalJSON accepts 1500, "1500", and "1500.00".
func (price *Price) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if trimmed == "" || trimmed == "null" {
		*price = 0
		return nil
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return err
	}
	*price = Price(parsed)
	return nil
}

// MarshalJSON renders the price as a plain JSON number.
func (price Price) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(price), 'f', -1, 64)), nil
}

// # Order

// Party is the customer or provider attached to an order. The backend embeds
// the name under either "full_name" or "name" depending on the endpoint.
type Party struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name,omitempty"`
	FullName string      `json:"full_name,omitempty"`
}

// DisplayName returns the best available name for the party.
func (party *Party) DisplayName() string {
	if party.FullName != "" {
		return party.FullName
	}
	return party.Name
}

// ServiceRef is the booked service as embedded in an order.
type ServiceRef struct {
	ServiceID json.Number `json:"service_id"`
	Name      string      `json:"service_name"`
}

// Review is the customer's rating of a completed order.
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Order is one marketplace order as reported by the backend.
type Order struct {
	ID              json.Number `json:"id"`
	Status          Status      `json:"status"`
	ScheduledAt     string      `json:"scheduled_at"`
	TotalPrice      Price       `json:"total_price"`
	CustomerAddress string      `json:"customer_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	PaymentMethod   string      `json:"payment_method,omitempty"`
	Service         *ServiceRef `json:"service,omitempty"`
	Customer        *Party      `json:"customer,omitempty"`
	Provider        *Party      `json:"provider,omitempty"`
	Review          *Review     `json:"review,omitempty"`
}

// CanRate reports whether the customer may still rate this order: it must be
// completed and not yet reviewed.
func (order *Order) CanRate() bool {
	return order.Status == StatusCompleted && order.Review == nil
}
