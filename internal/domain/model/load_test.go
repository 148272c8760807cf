package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacity_Fits(t *testing.T) {
	capacity := Capacity{MaxWeight: 44000, MaxVolume: 3000}

	tests := []struct {
		name     string
		weight   int
		volume   int
		expected bool
	}{
		{name: "empty load", weight: 0, volume: 0, expected: true},
		{name: "exactly at both limits", weight: 44000, volume: 3000, expected: true},
		{name: "weight over", weight: 44001, volume: 10, expected: false},
		{name: "volume over", weight: 10, volume: 3001, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, capacity.Fits(tt.weight, tt.volume))
		})
	}
}

func TestEmptySolution(t *testing.T) {
	sol := EmptySolution()

	assert.NotNil(t, sol.Positions)
	assert.Empty(t, sol.Positions)
	assert.Zero(t, sol.TotalPayout)
}

func TestEmptyPlan_SerializesEmptyArray(t *testing.T) {
	data, err := json.Marshal(EmptyPlan("truck-9"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"truck_id": "truck-9",
		"selected_order_ids": [],
		"total_payout_cents": 0,
		"total_weight_lbs": 0,
		"total_volume_cuft": 0,
		"utilization_weight_percent": 0,
		"utilization_volume_percent": 0
	}`, string(data))
}
