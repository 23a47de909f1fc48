// Package layout projects cities onto a flat drawing plane.
//
// Longitude maps linearly onto x and latitude onto y, with north at the top.
// The output is plain coordinates; drawing them is left to the caller.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"city_graph/pkg/graph"
)

// ErrUnknownCity is returned when an edge names a city that was not projected.
var ErrUnknownCity = errors.New("edge references unprojected city")

// Frame is the target rectangle in drawing-plane units.
type Frame struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// DefaultFrame is a 700x500 canvas with a 50 unit margin.
var DefaultFrame = Frame{MinX: 50, MaxX: 650, MinY: 50, MaxY: 450}

// Node is a projected city.
type Node struct {
	ID   graph.CityID `json:"id"`
	Name string       `json:"name"`
	X    int          `json:"x"`
	Y    int          `json:"y"`
}

// Link is a drawable segment for one edge.
type Link struct {
	X1         int     `json:"x1"`
	Y1         int     `json:"y1"`
	X2         int     `json:"x2"`
	Y2         int     `json:"y2"`
	DistanceKm float64 `json:"distanceKm"`
}

// Layout is the projected graph.
type Layout struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Project maps cities into DefaultFrame and resolves each edge into a Link.
func Project(cities []graph.City, edges []graph.Edge) (*Layout, error) {
	return ProjectInto(DefaultFrame, cities, edges)
}

// ProjectInto maps cities into f: x spans [MinX, MaxX] west to east and y
// spans [MinY, MaxY] north to south. When every city shares a longitude,
// x collapses to MinX; likewise y collapses to MinY for a shared latitude.
// Coordinates are rounded to the nearest integer.
//
// Edges are expected to be validated. An edge naming a city missing from
// cities fails with ErrUnknownCity and no layout is returned.
func ProjectInto(f Frame, cities []graph.City, edges []graph.Edge) (*Layout, error) {
	points := make(orb.MultiPoint, len(cities))
	for i, c := range cities {
		points[i] = orb.Point{c.Lon, c.Lat}
	}
	bound := points.Bound()

	minLon, maxLon := bound.Min.Lon(), bound.Max.Lon()
	minLat, maxLat := bound.Min.Lat(), bound.Max.Lat()

	nx := func(lon float64) float64 {
		if maxLon == minLon {
			return f.MinX
		}
		return (lon-minLon)/(maxLon-minLon)*(f.MaxX-f.MinX) + f.MinX
	}
	ny := func(lat float64) float64 {
		if maxLat == minLat {
			return f.MinY
		}
		return (1-(lat-minLat)/(maxLat-minLat))*(f.MaxY-f.MinY) + f.MinY
	}

	nodes := make([]Node, len(cities))
	byID := make(map[graph.CityID]*Node, len(cities))
	for i, c := range cities {
		nodes[i] = Node{
			ID:   c.ID,
			Name: c.Name,
			X:    int(math.Round(nx(c.Lon))),
			Y:    int(math.Round(ny(c.Lat))),
		}
		byID[c.ID] = &nodes[i]
	}

	links := make([]Link, len(edges))
	for i, e := range edges {
		from, ok := byID[e.FromID]
		if !ok {
			return nil, fmt.Errorf("edge[%d]: %w: %d", i, ErrUnknownCity, e.FromID)
		}
		to, ok := byID[e.ToID]
		if !ok {
			return nil, fmt.Errorf("edge[%d]: %w: %d", i, ErrUnknownCity, e.ToID)
		}
		links[i] = Link{
			X1:         from.X,
			Y1:         from.Y,
			X2:         to.X,
			Y2:         to.Y,
			DistanceKm: e.DistanceKm,
		}
	}

	return &Layout{Nodes: nodes, Links: links}, nil
}
