// Package query serves read-only questions about one validated city graph.
package query

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"city_graph/pkg/graph"
	"city_graph/pkg/layout"
)

// DefaultMaxSnapKm bounds Nearest when the engine is built without options.
const DefaultMaxSnapKm = 50.0

var (
	// ErrCityNotFound is returned when a query names an unknown city.
	ErrCityNotFound = errors.New("city not found")

	// ErrPointTooFar is returned when no city lies within the snap distance.
	ErrPointTooFar = errors.New("point too far from any city")
)

// NearbyCity is a neighbor returned by a radius query.
type NearbyCity struct {
	graph.City
	DistanceKm float64 `json:"distanceKm"` // shortest direct edge to the source
}

// NearestResult is the outcome of a point lookup.
type NearestResult struct {
	City           graph.City
	DistanceMeters float64
}

// Stats summarizes the loaded graph.
type Stats struct {
	NumCities     int
	NumEdges      int
	NumComponents int
}

// Querier is the interface the HTTP layer depends on.
type Querier interface {
	City(ctx context.Context, id graph.CityID) (graph.City, error)
	Cities(ctx context.Context) ([]graph.City, error)
	Within(ctx context.Context, minLat, minLon, maxLat, maxLon float64) ([]graph.City, error)
	Nearby(ctx context.Context, id graph.CityID, radiusKm float64) ([]NearbyCity, error)
	Nearest(ctx context.Context, lat, lon float64) (*NearestResult, error)
	Layout(ctx context.Context) (*layout.Layout, error)
	Stats() Stats
}

// Options tunes an Engine.
type Options struct {
	MaxSnapKm float64 // 0 means DefaultMaxSnapKm
}

// Engine implements Querier over an immutable, validated dataset.
// It is safe for concurrent use.
type Engine struct {
	cities    []graph.City
	edges     []graph.Edge
	byID      map[graph.CityID]int
	adj       *graph.Adjacency
	index     *Index
	stats     Stats
	maxSnapKm float64
}

// NewEngine validates cities and edges and builds the lookup structures.
// The slices are copied; later changes by the caller are not observed.
func NewEngine(cities []graph.City, edges []graph.Edge, opts ...Options) (*Engine, error) {
	if _, err := graph.Validate(cities, edges); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxSnapKm <= 0 {
		opt.MaxSnapKm = DefaultMaxSnapKm
	}

	e := &Engine{
		cities:    append([]graph.City(nil), cities...),
		edges:     append([]graph.Edge(nil), edges...),
		byID:      make(map[graph.CityID]int, len(cities)),
		maxSnapKm: opt.MaxSnapKm,
	}
	for i, c := range e.cities {
		e.byID[c.ID] = i
	}
	e.adj = graph.BuildAdjacency(e.edges)
	e.index = NewIndex(e.cities)
	e.stats = Stats{
		NumCities:     len(e.cities),
		NumEdges:      len(e.edges),
		NumComponents: len(graph.Components(e.cities, e.edges)),
	}
	return e, nil
}

// City returns the city with the given id.
func (e *Engine) City(ctx context.Context, id graph.CityID) (graph.City, error) {
	if err := ctx.Err(); err != nil {
		return graph.City{}, err
	}
	i, ok := e.byID[id]
	if !ok {
		return graph.City{}, fmt.Errorf("%w: %d", ErrCityNotFound, id)
	}
	return e.cities[i], nil
}

// Cities returns every city in dataset order.
func (e *Engine) Cities(ctx context.Context) ([]graph.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]graph.City{}, e.cities...), nil
}

// Within returns the cities inside the given box, ordered by id.
func (e *Engine) Within(ctx context.Context, minLat, minLon, maxLat, maxLon float64) ([]graph.City, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.index.Within(minLat, minLon, maxLat, maxLon), nil
}

// Nearby returns the cities joined to id by a direct edge of at most
// radiusKm, closest first. A non-positive radius yields an empty result.
func (e *Engine) Nearby(ctx context.Context, id graph.CityID, radiusKm float64) ([]NearbyCity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := e.byID[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrCityNotFound, id)
	}

	ids := graph.NearbyWithinRadius(id, radiusKm, e.edges)

	shortest := make(map[graph.CityID]float64, len(ids))
	for _, n := range e.adj.Neighbors(id) {
		if d, ok := shortest[n.ID]; !ok || n.DistanceKm < d {
			shortest[n.ID] = n.DistanceKm
		}
	}

	out := make([]NearbyCity, 0, len(ids))
	for _, nid := range ids {
		out = append(out, NearbyCity{
			City:       e.cities[e.byID[nid]],
			DistanceKm: shortest[nid],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Nearest returns the city closest to the point, within the engine's snap
// distance.
func (e *Engine) Nearest(ctx context.Context, lat, lon float64) (*NearestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, d, ok := e.index.Nearest(lat, lon, e.maxSnapKm*1000)
	if !ok {
		return nil, ErrPointTooFar
	}
	return &NearestResult{City: c, DistanceMeters: d}, nil
}

// Layout projects the whole graph onto the default drawing frame.
func (e *Engine) Layout(ctx context.Context) (*layout.Layout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return layout.Project(e.cities, e.edges)
}

// Stats returns counts computed at construction.
func (e *Engine) Stats() Stats {
	return e.stats
}

func sortByID(cities []graph.City) {
	sort.Slice(cities, func(i, j int) bool { return cities[i].ID < cities[j].ID })
}
