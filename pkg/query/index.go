package query

import (
	"math"

	"github.com/tidwall/rtree"

	"city_graph/pkg/geo"
	"city_graph/pkg/graph"
)

// Index is a read-only spatial index over city coordinates.
// Points are stored as (lon, lat).
type Index struct {
	tree rtree.RTreeG[graph.City]
}

// NewIndex builds an index over cities.
func NewIndex(cities []graph.City) *Index {
	idx := &Index{}
	for _, c := range cities {
		p := [2]float64{c.Lon, c.Lat}
		idx.tree.Insert(p, p, c)
	}
	return idx
}

// Len returns the number of indexed cities.
func (idx *Index) Len() int {
	return idx.tree.Len()
}

// Nearest returns the city closest to (lat, lon), considering only cities
// within maxMeters. Candidates in the search box are ranked by the
// equirectangular approximation; the reported distance is the great-circle
// distance to the winner. ok is false when none qualify.
func (idx *Index) Nearest(lat, lon, maxMeters float64) (city graph.City, distMeters float64, ok bool) {
	dLat, dLon := geo.DegreeSpan(lat, maxMeters)
	best := math.Inf(1)

	idx.tree.Search(
		[2]float64{lon - dLon, lat - dLat},
		[2]float64{lon + dLon, lat + dLat},
		func(_, _ [2]float64, c graph.City) bool {
			d := geo.EquirectangularDist(lat, lon, c.Lat, c.Lon)
			if d < best || (d == best && c.ID < city.ID) {
				best = d
				city = c
			}
			return true
		},
	)

	if math.IsInf(best, 1) {
		return graph.City{}, 0, false
	}
	dist := geo.Haversine(lat, lon, city.Lat, city.Lon)
	if dist > maxMeters {
		return graph.City{}, 0, false
	}
	return city, dist, true
}

// Within returns the cities inside the box, ordered by id.
func (idx *Index) Within(minLat, minLon, maxLat, maxLon float64) []graph.City {
	out := []graph.City{}
	idx.tree.Search(
		[2]float64{minLon, minLat},
		[2]float64{maxLon, maxLat},
		func(_, _ [2]float64, c graph.City) bool {
			out = append(out, c)
			return true
		},
	)
	sortByID(out)
	return out
}
