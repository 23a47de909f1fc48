package graph

import "city_graph/pkg/geo"

// Anomaly describes an edge whose stated distance is shorter than the
// great-circle distance between its endpoints.
type Anomaly struct {
	Edge          Edge
	GreatCircleKm float64
}

// Implausible returns the edges whose DistanceKm, stretched by (1+slack), is
// still shorter than the straight-line distance on the globe. Such an edge
// cannot describe a real route and usually points at swapped coordinates or
// a unit mix-up. Edges naming unknown cities are skipped.
func Implausible(cities []City, edges []Edge, slack float64) []Anomaly {
	byID := make(map[CityID]City, len(cities))
	for _, c := range cities {
		byID[c.ID] = c
	}

	var out []Anomaly
	for _, e := range edges {
		from, okFrom := byID[e.FromID]
		to, okTo := byID[e.ToID]
		if !okFrom || !okTo {
			continue
		}
		gcKm := geo.HaversineKm(from.Lat, from.Lon, to.Lat, to.Lon)
		if e.DistanceKm*(1+slack) < gcKm {
			out = append(out, Anomaly{Edge: e, GreatCircleKm: gcKm})
		}
	}
	return out
}
