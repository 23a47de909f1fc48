package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"city_graph/pkg/dataset"
	"city_graph/pkg/graph"
	osmparser "city_graph/pkg/osm"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file")
	output := flag.String("output", "cities.json", "Output dataset JSON path")
	edgesPath := flag.String("edges", "", "Optional dataset JSON whose edges are carried over")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng (e.g. 18.5,-100.5,20.5,-97.5)")
	places := flag.String("places", strings.Join(osmparser.DefaultPlaces, ","), "Comma-separated place tag values to import")
	nameTag := flag.String("name-tag", "", "Preferred name tag, e.g. name:es (falls back to name)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: import --input <file.osm.pbf> [--output cities.json] [--edges routes.json] [--bbox minLat,minLng,maxLat,maxLng] [--places city,town]")
		os.Exit(1)
	}

	opts := osmparser.ParseOptions{
		Places:  strings.Split(*places, ","),
		NameTag: *nameTag,
	}
	if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		_, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng)
		if err != nil {
			log.Fatalf("Invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = orb.Bound{Min: orb.Point{minLng, minLat}, Max: orb.Point{maxLng, maxLat}}
		log.Printf("Using bounding box filter: lat [%.4f, %.4f], lng [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	start := time.Now()

	log.Println("Opening OSM file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("Parsing OSM places...")
	cities, err := osmparser.ParsePlaces(context.Background(), f, opts)
	if err != nil {
		log.Fatalf("Failed to parse OSM data: %v", err)
	}

	ds := &dataset.Dataset{Cities: cities, Edges: []graph.Edge{}}
	if *edgesPath != "" {
		routes, err := dataset.LoadFile(*edgesPath)
		if err != nil {
			log.Fatalf("Failed to load edges: %v", err)
		}
		ds.Edges = routes.Edges
		log.Printf("Carried over %d edges from %s", len(ds.Edges), *edgesPath)
	}

	if err := ds.Validate(); err != nil {
		log.Fatalf("Imported dataset is invalid: %v", err)
	}

	comps := graph.Components(ds.Cities, ds.Edges)
	log.Printf("Dataset: %d cities, %d edges, %d components", len(ds.Cities), len(ds.Edges), len(comps))

	log.Printf("Writing dataset to %s...", *output)
	if err := dataset.WriteFile(*output, ds); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}

	kb, err := outputSizeKB(*output)
	if err != nil {
		log.Fatalf("Failed to stat output: %v", err)
	}
	log.Printf("Done in %s. Output: %s (%.1f KB)", time.Since(start).Round(time.Millisecond), *output, kb)
}

func outputSizeKB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return float64(info.Size()) / 1024, nil
}
