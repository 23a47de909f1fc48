package graph

// Three cities around the Valley of Mexico, joined by two routes:
//
//	Toluca --65-- CDMX --130-- Puebla
func fixture() ([]City, []Edge) {
	cities := []City{
		{ID: 1, Name: "Toluca", Lat: 19.28, Lon: -99.65},
		{ID: 2, Name: "CDMX", Lat: 19.43, Lon: -99.13},
		{ID: 3, Name: "Puebla", Lat: 19.04, Lon: -98.21},
	}
	edges := []Edge{
		{FromID: 1, ToID: 2, DistanceKm: 65},
		{FromID: 2, ToID: 3, DistanceKm: 130},
	}
	return cities, edges
}
