// Copyright (c) 2026 SkillHub. All rights reserved.

package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skillhub/web/internal/gateway"
	"github.com/skillhub/web/internal/order"
)

// upstreamOrders wraps the gateway calls behind the customer order views.
type upstreamOrders struct {
	client *gateway.Client
}

// bookingPayload is the exact wire shape the booking endpoint expects.
type bookingPayload struct {
	ProviderUserID int64   `json:"provider_user_id"`
	CustomerID     int64   `json:"customer_id"`
	ServiceID      int64   `json:"service_id"`
	LocationID     int64   `json:"location_id"`
	TotalPrice     float64 `json:"total_price"`
	ScheduledAt    string  `json:"scheduled_at"`
	Address        string  `json:"customer_address"`
	Notes          string  `json:"notes"`
	PaymentMethod  string  `json:"payment_method"`
	Status         string  `json:"status"`
}

// list fetches the customer's orders.
func (u *upstreamOrders) list(ctx context.Context) ([]order.Order, error) {
	var raw json.RawMessage
	if err := u.client.Get(ctx, "/orders/customer", nil, &raw); err != nil {
		return nil, err
	}

	list := []order.Order{}
	if err := gateway.ExtractList(raw, "orders", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// place submits a booking.
func (u *upstreamOrders) place(ctx context.Context, payload bookingPayload) (*gateway.Message, error) {
	var response gateway.Message
	if err := u.client.Post(ctx, "/orders", payload, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// cancel asks the backend to cancel a pending order.
func (u *upstreamOrders) cancel(ctx context.Context, orderID string) (*gateway.Message, error) {
	var response gateway.Message
	if err := u.client.Put(ctx, fmt.Sprintf("/orders/%s/cancel", orderID), struct{}{}, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// rate submits a review for a completed order.
func (u *upstreamOrders) rate(ctx context.Context, orderID string, rating int, comment string) (*gateway.Message, error) {
	body := map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}

	var response gateway.Message
	if err := u.client.Post(ctx, fmt.Sprintf("/orders/%s/rate", orderID), body, &response); err != nil {
		return nil, err
	}
	return &response, nil
}
