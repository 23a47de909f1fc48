package graph

import "math"

// NearbyWithinRadius returns the cities directly connected to source by an
// edge no longer than radiusKm. Only one hop is considered; this is a filter
// over source's own edges, not a reachability search.
//
// Each neighbor appears once even when several parallel edges qualify. The
// result is never nil. A non-positive radius returns immediately without
// building the adjacency; an unknown or isolated source yields no neighbors.
func NearbyWithinRadius(source CityID, radiusKm float64, edges []Edge) []CityID {
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		return []CityID{}
	}

	adj := BuildAdjacency(edges)
	if !adj.Has(source) {
		return []CityID{}
	}

	seen := make(map[CityID]struct{})
	out := []CityID{}
	for _, n := range adj.Neighbors(source) {
		if n.DistanceKm > radiusKm {
			continue
		}
		if _, dup := seen[n.ID]; dup {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n.ID)
	}
	return out
}
