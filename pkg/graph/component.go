package graph

import "sort"

// UnionFind implements a disjoint-set data structure with path compression
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x, with path halving.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x uint32) uint32 {
	return uf.size[uf.Find(x)]
}

// Components groups cities into connected components. Every city appears in
// exactly one component; a city without edges forms its own. Components are
// ordered by size (largest first), ties by the position of their first city.
// Within a component cities keep their input order. Edges naming unknown
// cities are ignored.
func Components(cities []City, edges []Edge) [][]CityID {
	if len(cities) == 0 {
		return nil
	}

	index := make(map[CityID]uint32, len(cities))
	for i, c := range cities {
		if _, ok := index[c.ID]; !ok {
			index[c.ID] = uint32(i)
		}
	}

	uf := NewUnionFind(uint32(len(cities)))
	for _, e := range edges {
		u, okU := index[e.FromID]
		v, okV := index[e.ToID]
		if !okU || !okV {
			continue
		}
		uf.Union(u, v)
	}

	// Group by root, remembering first-seen order of roots.
	groupOf := make(map[uint32]int)
	var groups [][]CityID
	for i, c := range cities {
		if index[c.ID] != uint32(i) {
			continue // duplicate id
		}
		root := uf.Find(uint32(i))
		g, ok := groupOf[root]
		if !ok {
			g = len(groups)
			groupOf[root] = g
			groups = append(groups, make([]CityID, 0, uf.Size(root)))
		}
		groups[g] = append(groups[g], c.ID)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return len(groups[i]) > len(groups[j])
	})
	return groups
}

// LargestComponent returns the ids of the largest connected component.
func LargestComponent(cities []City, edges []Edge) []CityID {
	comps := Components(cities, edges)
	if len(comps) == 0 {
		return nil
	}
	return comps[0]
}

// FilterToComponent keeps the cities whose id is in ids and the edges with
// both endpoints among them. Input order is preserved.
func FilterToComponent(cities []City, edges []Edge, ids []CityID) ([]City, []Edge) {
	keep := make(map[CityID]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	outCities := make([]City, 0, len(ids))
	for _, c := range cities {
		if _, ok := keep[c.ID]; ok {
			outCities = append(outCities, c)
		}
	}

	var outEdges []Edge
	for _, e := range edges {
		_, okFrom := keep[e.FromID]
		_, okTo := keep[e.ToID]
		if okFrom && okTo {
			outEdges = append(outEdges, e)
		}
	}

	return outCities, outEdges
}
