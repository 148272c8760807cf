// Package testutil provides fixtures and container helpers shared by tests.
package testutil

import (
	"fmt"

	"github.com/guttosm/load-optimizer/internal/domain/dto"
)

// Cents returns a pointer to v, for OrderRequest.PayoutCents.
func Cents(v int64) *int64 {
	return &v
}

// Order returns a valid Los Angeles to Dallas order.
func Order(id string, payout int64, weight, volume int) dto.OrderRequest {
	return dto.OrderRequest{
		ID:           id,
		PayoutCents:  Cents(payout),
		WeightLbs:    weight,
		VolumeCuft:   volume,
		Origin:       "Los Angeles, CA",
		Destination:  "Dallas, TX",
		PickupDate:   "2025-12-05",
		DeliveryDate: "2025-12-09",
	}
}

// Truck returns the standard 44000 lb / 3000 cuft truck.
func Truck() *dto.TruckRequest {
	return &dto.TruckRequest{ID: "truck-123", MaxWeightLbs: 44000, MaxVolumeCuft: 3000}
}

// OptimizeRequest returns two compatible orders that fit together.
// The optimal plan selects both for 430000 cents.
func OptimizeRequest() dto.OptimizeRequest {
	return dto.OptimizeRequest{
		Truck: Truck(),
		Orders: []dto.OrderRequest{
			Order("ord-001", 250000, 18000, 1200),
			Order("ord-002", 180000, 12000, 900),
		},
	}
}

// ManyOrders returns n small distinct orders.
func ManyOrders(n int) []dto.OrderRequest {
	orders := make([]dto.OrderRequest, n)
	for i := range orders {
		orders[i] = Order(fmt.Sprintf("ord-%03d", i), int64(1000+i), 100, 10)
	}
	return orders
}
