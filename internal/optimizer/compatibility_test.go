package optimizer

import (
	"testing"
	"time"

	"github.com/guttosm/load-optimizer/internal/domain/model"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func lane(origin, destination, pickup, delivery string, hazmat bool) model.Candidate {
	return model.Candidate{
		Origin:       origin,
		Destination:  destination,
		PickupDate:   day(pickup),
		DeliveryDate: day(delivery),
		IsHazmat:     hazmat,
	}
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercases", input: "Los Angeles, CA", expected: "los angeles, ca"},
		{name: "trims whitespace", input: "  Dallas, TX \t", expected: "dallas, tx"},
		{name: "empty stays empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLocation(tt.input))
		})
	}
}

func TestCompatible(t *testing.T) {
	base := lane("Los Angeles, CA", "Dallas, TX", "2025-12-05", "2025-12-09", false)

	tests := []struct {
		name     string
		other    model.Candidate
		expected bool
	}{
		{
			name:     "same lane and overlapping window",
			other:    lane("Los Angeles, CA", "Dallas, TX", "2025-12-04", "2025-12-10", false),
			expected: true,
		},
		{
			name:     "route matches after normalization",
			other:    lane("  los angeles, ca", "DALLAS, TX ", "2025-12-05", "2025-12-09", false),
			expected: true,
		},
		{
			name:     "different origin",
			other:    lane("San Diego, CA", "Dallas, TX", "2025-12-05", "2025-12-09", false),
			expected: false,
		},
		{
			name:     "different destination",
			other:    lane("Los Angeles, CA", "Houston, TX", "2025-12-05", "2025-12-09", false),
			expected: false,
		},
		{
			name:     "windows touch on a single day",
			other:    lane("Los Angeles, CA", "Dallas, TX", "2025-12-09", "2025-12-12", false),
			expected: true,
		},
		{
			name:     "windows do not overlap",
			other:    lane("Los Angeles, CA", "Dallas, TX", "2025-12-10", "2025-12-12", false),
			expected: false,
		},
		{
			name:     "hazmat with non-hazmat",
			other:    lane("Los Angeles, CA", "Dallas, TX", "2025-12-05", "2025-12-09", true),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Compatible(base, tt.other))
			assert.Equal(t, tt.expected, Compatible(tt.other, base), "relation must be symmetric")
		})
	}
}

func TestCompatible_HazmatPair(t *testing.T) {
	a := lane("Los Angeles, CA", "Dallas, TX", "2025-12-05", "2025-12-09", true)
	b := lane("Los Angeles, CA", "Dallas, TX", "2025-12-06", "2025-12-08", true)

	assert.True(t, Compatible(a, b))
}

func TestCompatibilityMasks(t *testing.T) {
	candidates := []model.Candidate{
		lane("LA", "Dallas", "2025-12-05", "2025-12-09", false),
		lane("la", "dallas", "2025-12-04", "2025-12-10", false),
		lane("LA", "Dallas", "2025-12-06", "2025-12-08", true),
		lane("LA", "Houston", "2025-12-05", "2025-12-09", false),
	}

	masks := CompatibilityMasks(candidates)

	assert.Equal(t, []Mask{0b0011, 0b0011, 0b0100, 0b1000}, masks)
	for i := range masks {
		assert.True(t, masks[i].Has(i), "self bit must be set for %d", i)
		for j := range masks {
			assert.Equal(t, masks[i].Has(j), masks[j].Has(i), "masks must be symmetric for %d,%d", i, j)
		}
	}
}

func TestCompatibilityMasks_Empty(t *testing.T) {
	assert.Empty(t, CompatibilityMasks(nil))
}
