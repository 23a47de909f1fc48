package graph

// BuildAdjacency turns a flat edge list into a symmetric neighbor lookup.
//
// For every edge (a, b, d) the result holds (b, d) under a and (a, d) under b.
// Parallel edges are kept as duplicate entries and a self-loop (a, a, d)
// appends (a, d) to a twice. Edges are not validated; callers run Validate
// first.
func BuildAdjacency(edges []Edge) *Adjacency {
	adj := &Adjacency{
		neighbors: make(map[CityID][]Neighbor),
	}

	addNode := func(id CityID) {
		if _, ok := adj.neighbors[id]; ok {
			return
		}
		adj.neighbors[id] = []Neighbor{}
		adj.ids = append(adj.ids, id)
	}

	for _, e := range edges {
		addNode(e.FromID)
		addNode(e.ToID)
		adj.neighbors[e.FromID] = append(adj.neighbors[e.FromID], Neighbor{ID: e.ToID, DistanceKm: e.DistanceKm})
		adj.neighbors[e.ToID] = append(adj.neighbors[e.ToID], Neighbor{ID: e.FromID, DistanceKm: e.DistanceKm})
	}

	return adj
}
