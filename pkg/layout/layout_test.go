package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city_graph/pkg/graph"
)

func fixture() ([]graph.City, []graph.Edge) {
	cities := []graph.City{
		{ID: 1, Name: "Toluca", Lat: 19.28, Lon: -99.65},
		{ID: 2, Name: "CDMX", Lat: 19.43, Lon: -99.13},
		{ID: 3, Name: "Puebla", Lat: 19.04, Lon: -98.21},
	}
	edges := []graph.Edge{
		{FromID: 1, ToID: 2, DistanceKm: 65},
		{FromID: 2, ToID: 3, DistanceKm: 130},
	}
	return cities, edges
}

func TestProjectFixture(t *testing.T) {
	cities, edges := fixture()

	l, err := Project(cities, edges)
	require.NoError(t, err)

	assert.Equal(t, []Node{
		{ID: 1, Name: "Toluca", X: 50, Y: 204},
		{ID: 2, Name: "CDMX", X: 267, Y: 50},
		{ID: 3, Name: "Puebla", X: 650, Y: 450},
	}, l.Nodes)
	assert.Equal(t, []Link{
		{X1: 50, Y1: 204, X2: 267, Y2: 50, DistanceKm: 65},
		{X1: 267, Y1: 50, X2: 650, Y2: 450, DistanceKm: 130},
	}, l.Links)
}

func TestProjectStaysInFrame(t *testing.T) {
	cities := []graph.City{
		{ID: 1, Name: "Tijuana", Lat: 32.51, Lon: -117.04},
		{ID: 2, Name: "Merida", Lat: 20.97, Lon: -89.62},
		{ID: 3, Name: "Tapachula", Lat: 14.90, Lon: -92.26},
		{ID: 4, Name: "Monterrey", Lat: 25.69, Lon: -100.32},
	}

	l, err := Project(cities, nil)
	require.NoError(t, err)

	for _, n := range l.Nodes {
		assert.GreaterOrEqual(t, n.X, 50)
		assert.LessOrEqual(t, n.X, 650)
		assert.GreaterOrEqual(t, n.Y, 50)
		assert.LessOrEqual(t, n.Y, 450)
	}
	// Northernmost at the top, southernmost at the bottom.
	assert.Equal(t, 50, l.Nodes[0].Y)
	assert.Equal(t, 450, l.Nodes[2].Y)
	// Westernmost left, easternmost right.
	assert.Equal(t, 50, l.Nodes[0].X)
	assert.Equal(t, 650, l.Nodes[1].X)
	assert.Empty(t, l.Links)
}

func TestProjectDegenerate(t *testing.T) {
	t.Run("shared longitude", func(t *testing.T) {
		cities := []graph.City{
			{ID: 1, Name: "A", Lat: 10, Lon: -99},
			{ID: 2, Name: "B", Lat: 20, Lon: -99},
		}
		l, err := Project(cities, nil)
		require.NoError(t, err)
		for _, n := range l.Nodes {
			assert.Equal(t, 50, n.X)
		}
		assert.Equal(t, 450, l.Nodes[0].Y)
		assert.Equal(t, 50, l.Nodes[1].Y)
	})

	t.Run("shared latitude", func(t *testing.T) {
		cities := []graph.City{
			{ID: 1, Name: "A", Lat: 19, Lon: -100},
			{ID: 2, Name: "B", Lat: 19, Lon: -98},
		}
		l, err := Project(cities, nil)
		require.NoError(t, err)
		for _, n := range l.Nodes {
			assert.Equal(t, 50, n.Y)
		}
		assert.Equal(t, 50, l.Nodes[0].X)
		assert.Equal(t, 650, l.Nodes[1].X)
	})

	t.Run("single city", func(t *testing.T) {
		l, err := Project([]graph.City{{ID: 1, Name: "Solo", Lat: 19.4, Lon: -99.1}}, nil)
		require.NoError(t, err)
		assert.Equal(t, []Node{{ID: 1, Name: "Solo", X: 50, Y: 50}}, l.Nodes)
	})
}

func TestProjectEmpty(t *testing.T) {
	l, err := Project(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, l.Nodes)
	assert.Empty(t, l.Links)
}

func TestProjectDeterministic(t *testing.T) {
	cities, edges := fixture()

	first, err := Project(cities, edges)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Project(cities, edges)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestProjectUnknownCity(t *testing.T) {
	cities, _ := fixture()

	tests := []struct {
		name string
		edge graph.Edge
	}{
		{name: "unknown from", edge: graph.Edge{FromID: 9, ToID: 2, DistanceKm: 10}},
		{name: "unknown to", edge: graph.Edge{FromID: 1, ToID: 9, DistanceKm: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Project(cities, []graph.Edge{tt.edge})
			require.ErrorIs(t, err, ErrUnknownCity)
			assert.Contains(t, err.Error(), "9")
			assert.Nil(t, l)
		})
	}
}

func TestProjectIntoCustomFrame(t *testing.T) {
	cities, edges := fixture()
	f := Frame{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}

	l, err := ProjectInto(f, cities, edges)
	require.NoError(t, err)

	assert.Equal(t, Node{ID: 1, Name: "Toluca", X: 0, Y: 38}, l.Nodes[0])
	assert.Equal(t, Node{ID: 3, Name: "Puebla", X: 100, Y: 100}, l.Nodes[2])
}
