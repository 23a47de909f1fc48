package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"city_graph/pkg/api"
	"city_graph/pkg/dataset"
	"city_graph/pkg/graph"
	"city_graph/pkg/query"
)

// plausibilitySlack is the stretch allowed before a route shorter than the
// great-circle distance is reported.
const plausibilitySlack = 0.05

func main() {
	// A missing .env is fine; the environment and flags still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not read .env: %v", err)
	}

	dataPath := flag.String("data", envOr("CITY_GRAPH_DATA", "cities.json"), "Path to dataset JSON")
	port := flag.Int("port", envInt("CITY_GRAPH_PORT", 8080), "HTTP port")
	corsOrigin := flag.String("cors-origin", envOr("CITY_GRAPH_CORS_ORIGIN", ""), "CORS allowed origin (empty = same-origin)")
	maxSnapKm := flag.Float64("max-snap-km", query.DefaultMaxSnapKm, "Max distance for nearest-city lookups")
	flag.Parse()

	start := time.Now()

	log.Printf("Loading dataset from %s...", *dataPath)
	ds, err := dataset.LoadFile(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Loaded: %d cities, %d edges", len(ds.Cities), len(ds.Edges))

	engine, err := query.NewEngine(ds.Cities, ds.Edges, query.Options{MaxSnapKm: *maxSnapKm})
	if err != nil {
		log.Fatalf("Dataset rejected: %v", err)
	}

	for _, a := range graph.Implausible(ds.Cities, ds.Edges, plausibilitySlack) {
		log.Printf("Warning: edge %d-%d is %.1f km but the cities are %.1f km apart",
			a.Edge.FromID, a.Edge.ToID, a.Edge.DistanceKm, a.GreatCircleKm)
	}

	stats := engine.Stats()
	if stats.NumComponents > 1 {
		log.Printf("Graph has %d connected components", stats.NumComponents)
	}
	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	cfg := api.DefaultConfig(fmt.Sprintf(":%d", *port))
	cfg.CORSOrigin = *corsOrigin

	srv := api.NewServer(cfg, api.NewHandlers(engine))
	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}
