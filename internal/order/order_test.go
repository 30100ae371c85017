// Copyright (c) 2026 SkillHub. All rights reserved.

package order_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillhub/web/internal/order"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name  string
		actor order.Actor
		from  order.Status
		to    order.Status
		want  bool
	}{
		{"customer_cancels_pending", order.ActorCustomer, order.StatusPending, order.StatusCancelled, true},
		{"customer_cannot_cancel_accepted", order.ActorCustomer, order.StatusAccepted, order.StatusCancelled, false},
		{"customer_cannot_accept", order.ActorCustomer, order.StatusPending, order.StatusAccepted, false},
		{"provider_accepts_pending", order.ActorProvider, order.StatusPending, order.StatusAccepted, true},
		{"provider_rejects_pending", order.ActorProvider, order.StatusPending, order.StatusCancelled, true},
		{"provider_completes_accepted", order.ActorProvider, order.StatusAccepted, order.StatusCompleted, true},
		{"provider_cancels_accepted", order.ActorProvider, order.StatusAccepted, order.StatusCancelled, true},
		{"provider_cannot_complete_pending", order.ActorProvider, order.StatusPending, order.StatusCompleted, false},
		{"provider_cannot_revive_cancelled", order.ActorProvider, order.StatusCancelled, order.StatusAccepted, false},
		{"nobody_touches_completed", order.ActorProvider, order.StatusCompleted, order.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.CanTransition(tt.actor, tt.from, tt.to))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range []order.Status{
		order.StatusPending, order.StatusAccepted, order.StatusInProgress,
		order.StatusCompleted, order.StatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}
	assert.False(t, order.Status("shipped").Valid())
	assert.False(t, order.Status("").Valid())
}

func TestCanRate(t *testing.T) {
	completed := &order.Order{Status: order.StatusCompleted}
	assert.True(t, completed.CanRate())

	reviewed := &order.Order{Status: order.StatusCompleted, Review: &order.Review{Rating: 5}}
	assert.False(t, reviewed.CanRate())

	pending := &order.Order{Status: order.StatusPending}
	assert.False(t, pending.CanRate())
}

func TestPrice_DecodesNumberAndString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"number", `{"total_price":1500}`, 1500},
		{"decimal_number", `{"total_price":1500.5}`, 1500.5},
		{"string", `{"total_price":"1500.00"}`, 1500},
		{"null", `{"total_price":null}`, 0},
		{"absent", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded order.Order
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &decoded))
			assert.Equal(t, tt.want, float64(decoded.TotalPrice))
		})
	}
}

func TestPartition(t *testing.T) {
	orders := []order.Order{
		{ID: "1", Status: order.StatusPending},
		{ID: "2", Status: order.StatusAccepted},
		{ID: "3", Status: order.StatusInProgress},
		{ID: "4", Status: order.StatusCompleted},
		{ID: "5", Status: order.StatusCancelled},
		{ID: "6", Status: order.Status("unknown")},
	}

	buckets := order.Partition(orders)
	require.Len(t, buckets.Pending, 1)
	require.Len(t, buckets.Active, 2)
	require.Len(t, buckets.Past, 2)
	assert.Equal(t, json.Number("1"), buckets.Pending[0].ID)
	assert.Equal(t, json.Number("2"), buckets.Active[0].ID)
	assert.Equal(t, json.Number("4"), buckets.Past[0].ID)
}

func TestPartition_EmptyListYieldsEmptyBuckets(t *testing.T) {
	buckets := order.Partition(nil)
	assert.NotNil(t, buckets.Pending)
	assert.NotNil(t, buckets.Active)
	assert.NotNil(t, buckets.Past)
	assert.Empty(t, buckets.Pending)
}

func TestCompletedEarnings(t *testing.T) {
	orders := []order.Order{
		{Status: order.StatusCompleted, TotalPrice: 1200},
		{Status: order.StatusCompleted, TotalPrice: 800.5},
		{Status: order.StatusCancelled, TotalPrice: 99999},
		{Status: order.StatusPending, TotalPrice: 500},
	}
	assert.Equal(t, 2000.5, order.CompletedEarnings(orders))
	assert.Zero(t, order.CompletedEarnings(nil))
}
