package osm

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"city_graph/pkg/graph"
)

// DefaultPlaces lists the place tag values imported when none are given.
var DefaultPlaces = []string{"city", "town"}

// ParseOptions configures the OSM place parser.
type ParseOptions struct {
	// Places lists accepted values of the "place" tag. Empty means DefaultPlaces.
	Places []string

	// BBox keeps only nodes inside the box. The zero Bound disables filtering.
	BBox orb.Bound

	// NameTag is read before "name", e.g. "name:es". Empty means "name" only.
	NameTag string
}

func (o ParseOptions) placeSet() map[string]bool {
	places := o.Places
	if len(places) == 0 {
		places = DefaultPlaces
	}
	set := make(map[string]bool, len(places))
	for _, p := range places {
		set[strings.TrimSpace(p)] = true
	}
	return set
}

// placeName returns the display name of a place node, preferring nameTag
// over "name". It returns "" when neither is set.
func placeName(tags osm.Tags, nameTag string) string {
	if nameTag != "" {
		if n := tags.Find(nameTag); n != "" {
			return n
		}
	}
	return tags.Find("name")
}

type skipReason int

const (
	kept skipReason = iota
	notPlace
	unnamed
	outsideBBox
)

// placeFilter decides which nodes become cities.
type placeFilter struct {
	places  map[string]bool
	nameTag string
	bbox    orb.Bound
	useBBox bool
}

func (o ParseOptions) filter() placeFilter {
	return placeFilter{
		places:  o.placeSet(),
		nameTag: o.NameTag,
		bbox:    o.BBox,
		useBBox: !o.BBox.IsZero(),
	}
}

// city converts n to a City, or reports why it was skipped.
func (f placeFilter) city(n *osm.Node) (graph.City, skipReason) {
	if !f.places[n.Tags.Find("place")] {
		return graph.City{}, notPlace
	}
	name := placeName(n.Tags, f.nameTag)
	if name == "" {
		return graph.City{}, unnamed
	}
	if f.useBBox && !f.bbox.Contains(orb.Point{n.Lon, n.Lat}) {
		return graph.City{}, outsideBBox
	}
	return graph.City{
		ID:   graph.CityID(n.ID),
		Name: name,
		Lat:  n.Lat,
		Lon:  n.Lon,
	}, kept
}

// ParsePlaces scans the nodes of an OSM PBF stream and returns every named
// place node as a City, using the OSM node id as the city id.
// Cities come out in file order.
func ParsePlaces(ctx context.Context, r io.Reader, opts ...ParseOptions) ([]graph.City, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	f := opt.filter()

	scanner := osmpbf.New(ctx, r, 1)
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	var cities []graph.City
	var unnamedCount, bboxFiltered int

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		c, reason := f.city(n)
		switch reason {
		case kept:
			cities = append(cities, c)
		case unnamed:
			unnamedCount++
		case outsideBBox:
			bboxFiltered++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan nodes: %w", err)
	}

	if unnamedCount > 0 {
		log.Printf("Warning: skipped %d unnamed place nodes", unnamedCount)
	}
	if bboxFiltered > 0 {
		log.Printf("Filtered %d places outside bounding box", bboxFiltered)
	}
	log.Printf("Collected %d places", len(cities))

	return cities, nil
}
