// Package model defines the core domain entities for the load optimizer.
package model

import "time"

// Capacity is the carrying limit of a single truck.
type Capacity struct {
	// MaxWeight is the weight limit in pounds.
	MaxWeight int
	// MaxVolume is the volume limit in cubic feet.
	MaxVolume int
}

// Fits reports whether a load of the given weight and volume stays within the capacity.
func (c Capacity) Fits(weight, volume int) bool {
	return weight <= c.MaxWeight && volume <= c.MaxVolume
}

// Candidate is an order under consideration by the optimizer.
// Payout is expressed in cents.
type Candidate struct {
	Payout       int64
	Weight       int
	Volume       int
	Origin       string
	Destination  string
	PickupDate   time.Time
	DeliveryDate time.Time
	IsHazmat     bool
}

// Solution is the optimizer's answer for one call.
// Positions index into the candidate slice the optimizer received, in ascending order.
type Solution struct {
	Positions   []int
	TotalPayout int64
	TotalWeight int
	TotalVolume int
	// NodesExplored counts search frames visited, for instrumentation only.
	NodesExplored int64
}

// EmptySolution returns a solution that selects nothing.
func EmptySolution() Solution {
	return Solution{Positions: []int{}}
}

// Truck identifies a vehicle and its capacity.
type Truck struct {
	ID       string
	Capacity Capacity
}

// Order is a candidate carrying its external identifier.
type Order struct {
	ID string
	Candidate
}

// LoadRequest is a validated optimization request.
type LoadRequest struct {
	Truck  Truck
	Orders []Order
}

// LoadPlan represents the optimal selection of orders for a truck.
// It is serialized directly in HTTP responses.
//
// @Description Optimal load plan for a truck
type LoadPlan struct {
	// TruckID echoes the requested truck identifier
	TruckID string `json:"truck_id" example:"truck-123"`
	// SelectedOrderIDs lists the chosen orders in request order
	SelectedOrderIDs []string `json:"selected_order_ids" example:"ord-001,ord-002"`
	// TotalPayoutCents is the sum of selected payouts, in cents
	TotalPayoutCents int64 `json:"total_payout_cents" example:"430000"`
	// TotalWeightLbs is the combined weight of the selection
	TotalWeightLbs int `json:"total_weight_lbs" example:"30000"`
	// TotalVolumeCuft is the combined volume of the selection
	TotalVolumeCuft int `json:"total_volume_cuft" example:"2100"`
	// UtilizationWeightPercent is the share of weight capacity used (0-100, two decimals)
	UtilizationWeightPercent float64 `json:"utilization_weight_percent" example:"68.18"`
	// UtilizationVolumePercent is the share of volume capacity used (0-100, two decimals)
	UtilizationVolumePercent float64 `json:"utilization_volume_percent" example:"70"`
} // @name LoadPlan

// EmptyPlan returns a plan for the truck that carries nothing.
func EmptyPlan(truckID string) LoadPlan {
	return LoadPlan{
		TruckID:          truckID,
		SelectedOrderIDs: []string{},
	}
}
