package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"city_graph/pkg/dataset"
	"city_graph/pkg/graph"
	"city_graph/pkg/layout"
)

func main() {
	dataPath := flag.String("data", "cities.json", "Path to dataset JSON")
	output := flag.String("output", "", "Output layout JSON path (default stdout)")
	largest := flag.Bool("largest-component", false, "Only project the largest connected component")
	width := flag.Float64("width", 0, "Canvas width; 0 keeps the default 700x500 frame")
	height := flag.Float64("height", 0, "Canvas height; 0 keeps the default 700x500 frame")
	margin := flag.Float64("margin", 50, "Canvas margin when width/height are set")
	flag.Parse()

	ds, err := dataset.LoadFile(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	if err := ds.Validate(); err != nil {
		log.Fatalf("Dataset rejected: %v", err)
	}

	cities, edges := ds.Cities, ds.Edges
	if *largest {
		cities, edges = graph.FilterToComponent(cities, edges, graph.LargestComponent(cities, edges))
		log.Printf("Largest component: %d of %d cities", len(cities), len(ds.Cities))
	}

	frame := layout.DefaultFrame
	if *width > 0 && *height > 0 {
		frame = layout.Frame{
			MinX: *margin, MaxX: *width - *margin,
			MinY: *margin, MaxY: *height - *margin,
		}
	}

	l, err := layout.ProjectInto(frame, cities, edges)
	if err != nil {
		log.Fatalf("Projection failed: %v", err)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		log.Fatalf("Failed to write layout: %v", err)
	}
	if *output != "" {
		log.Printf("Wrote %d nodes, %d links to %s", len(l.Nodes), len(l.Links), *output)
	}
}
