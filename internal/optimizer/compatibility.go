package optimizer

import (
	"strings"

	"github.com/guttosm/load-optimizer/internal/domain/model"
)

// NormalizeLocation trims surrounding whitespace and folds case so that
// " Los Angeles " and "los angeles" name the same place.
func NormalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

// RouteCompatible reports whether both candidates travel the same lane.
func RouteCompatible(a, b model.Candidate) bool {
	return NormalizeLocation(a.Origin) == NormalizeLocation(b.Origin) &&
		NormalizeLocation(a.Destination) == NormalizeLocation(b.Destination)
}

// TimeWindowsOverlap reports whether there is at least one day on which both
// candidates could ride the same truck: the later pickup must not come after
// the earlier delivery.
func TimeWindowsOverlap(a, b model.Candidate) bool {
	latestPickup := a.PickupDate
	if b.PickupDate.After(latestPickup) {
		latestPickup = b.PickupDate
	}
	earliestDelivery := a.DeliveryDate
	if b.DeliveryDate.Before(earliestDelivery) {
		earliestDelivery = b.DeliveryDate
	}
	return !latestPickup.After(earliestDelivery)
}

// HazmatCompatible reports whether the hazmat flags agree. Hazardous loads
// only travel with other hazardous loads.
func HazmatCompatible(a, b model.Candidate) bool {
	return a.IsHazmat == b.IsHazmat
}

// Compatible reports whether two candidates may be loaded together.
func Compatible(a, b model.Candidate) bool {
	return HazmatCompatible(a, b) && RouteCompatible(a, b) && TimeWindowsOverlap(a, b)
}

// CompatibilityMasks builds, for every candidate, the set of candidates it can
// share a truck with. A candidate is always compatible with itself.
func CompatibilityMasks(candidates []model.Candidate) []Mask {
	masks := make([]Mask, len(candidates))
	for i := range candidates {
		masks[i] = masks[i].With(i)
		for j := i + 1; j < len(candidates); j++ {
			if Compatible(candidates[i], candidates[j]) {
				masks[i] = masks[i].With(j)
				masks[j] = masks[j].With(i)
			}
		}
	}
	return masks
}
