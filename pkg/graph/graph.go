package graph

// CityID identifies a city. The zero value means "no identifier".
type CityID int64

// City is a named geographic point.
type City struct {
	ID   CityID  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Edge is an undirected weighted connection between two cities.
// (FromID, ToID) and (ToID, FromID) describe the same route.
type Edge struct {
	FromID     CityID  `json:"fromId"`
	ToID       CityID  `json:"toId"`
	DistanceKm float64 `json:"distanceKm"`
}

// Neighbor is one entry of a city's adjacency list.
type Neighbor struct {
	ID         CityID  `json:"id"`
	DistanceKm float64 `json:"distanceKm"`
}

// Adjacency maps each city to its directly connected neighbors.
//
// Keys are kept in first-seen order; each neighbor list keeps the order in
// which edges were processed.
type Adjacency struct {
	ids       []CityID
	neighbors map[CityID][]Neighbor
}

// Neighbors returns the neighbor list of id, or nil when id has no entry.
func (a *Adjacency) Neighbors(id CityID) []Neighbor {
	return a.neighbors[id]
}

// Has reports whether id has an entry.
func (a *Adjacency) Has(id CityID) bool {
	_, ok := a.neighbors[id]
	return ok
}

// IDs returns the cities with an entry, in first-seen order.
func (a *Adjacency) IDs() []CityID {
	out := make([]CityID, len(a.ids))
	copy(out, a.ids)
	return out
}

// Len returns the number of cities with an entry.
func (a *Adjacency) Len() int {
	return len(a.ids)
}
