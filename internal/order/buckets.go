// Copyright (c) 2026 SkillHub. All rights reserved.

package order

// Buckets is the three-way display partition of an order list.
//
// Derived, never stored: both dashboards recompute it from the authoritative
// list on every request.
type Buckets struct {
	Pending []Order `json:"pending"`
	Active  []Order `json:"active"`
	Past    []Order `json:"past"`
}

// Partition splits orders into the pending / active / past display buckets.
// Active covers accepted and in-progress orders; past covers completed and
// cancelled ones. Orders with an unknown status are dropped.
func Partition(orders []Order) Buckets {
	buckets := Buckets{
		Pending: []Order{},
		Active:  []Order{},
		Past:    []Order{},
	}

	for _, item := range orders {
		switch item.Status {
		case StatusPending:
			buckets.Pending = append(buckets.Pending, item)
		case StatusAccepted, StatusInProgress:
			buckets.Active = append(buckets.Active, item)
		case StatusCompleted, StatusCancelled:
			buckets.Past = append(buckets.Past, item)
		}
	}
	return buckets
}

// CompletedEarnings sums the total price of every completed order.
func CompletedEarnings(orders []Order) float64 {
	var sum float64
	for _, item := range orders {
		if item.Status == StatusCompleted {
			sum += float64(item.TotalPrice)
		}
	}
	return sum
}
