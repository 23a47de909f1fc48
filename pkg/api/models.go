package api

import "city_graph/pkg/graph"

// CityJSON is a city in responses.
type CityJSON struct {
	ID   graph.CityID `json:"id"`
	Name string       `json:"name"`
	Lat  float64      `json:"lat"`
	Lon  float64      `json:"lon"`
}

// CitiesResponse is the JSON response for GET /api/v1/cities.
type CitiesResponse struct {
	Cities []CityJSON `json:"cities"`
	Count  int        `json:"count"`
}

// NearbyCityJSON is a neighbor in a radius query response.
type NearbyCityJSON struct {
	CityJSON
	DistanceKm float64 `json:"distanceKm"`
}

// NearbyResponse is the JSON response for GET /api/v1/cities/{id}/nearby.
type NearbyResponse struct {
	Source   CityJSON         `json:"source"`
	RadiusKm float64          `json:"radiusKm"`
	Cities   []NearbyCityJSON `json:"cities"`
}

// NearestResponse is the JSON response for GET /api/v1/nearest.
type NearestResponse struct {
	City           CityJSON `json:"city"`
	DistanceMeters float64  `json:"distanceMeters"`
}

// ValidateResponse is the JSON response for POST /api/v1/validate.
type ValidateResponse struct {
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumCities     int `json:"numCities"`
	NumEdges      int `json:"numEdges"`
	NumComponents int `json:"numComponents"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

func cityJSON(c graph.City) CityJSON {
	return CityJSON{ID: c.ID, Name: c.Name, Lat: c.Lat, Lon: c.Lon}
}
