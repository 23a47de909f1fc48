// Package dataset reads and writes city graphs as JSON:
//
//	{
//	  "cities": [{"id": 1, "name": "Toluca", "lat": 19.28, "lon": -99.65}],
//	  "edges":  [{"fromId": 1, "toId": 2, "distanceKm": 65}]
//	}
//
// Decoding only checks shape. Semantic checks belong to graph.Validate.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"city_graph/pkg/graph"
)

// ErrNotSequence is returned when "cities" or "edges" is present but is not
// a JSON array, or when the document itself is not an object.
var ErrNotSequence = errors.New("cities and edges must be arrays")

// maxFileSize bounds LoadFile reads.
const maxFileSize = 256 << 20

// Dataset is a raw graph description.
type Dataset struct {
	Cities []graph.City `json:"cities"`
	Edges  []graph.Edge `json:"edges"`
}

// Validate runs graph.Validate over the dataset.
func (d *Dataset) Validate() error {
	_, err := graph.Validate(d.Cities, d.Edges)
	return err
}

type wireDataset struct {
	Cities json.RawMessage `json:"cities"`
	Edges  json.RawMessage `json:"edges"`
}

// Decode reads one dataset from r. Missing or null "cities"/"edges" decode
// as empty; an edge without distanceKm decodes with a zero distance so that
// validation reports it.
func Decode(r io.Reader) (*Dataset, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	raw = bytes.TrimSpace(raw)

	var wire wireDataset
	switch raw[0] {
	case '{':
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("decode dataset: %w", err)
		}
	case 'n':
	default:
		return nil, fmt.Errorf("dataset must be an object: %w", ErrNotSequence)
	}

	ds := &Dataset{
		Cities: []graph.City{},
		Edges:  []graph.Edge{},
	}
	if err := decodeArray("cities", wire.Cities, &ds.Cities); err != nil {
		return nil, err
	}
	if err := decodeArray("edges", wire.Edges, &ds.Edges); err != nil {
		return nil, err
	}
	return ds, nil
}

func decodeArray(field string, raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] != '[' {
		return fmt.Errorf("%s: %w", field, ErrNotSequence)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", field, err)
	}
	return nil
}

// Encode writes ds as indented JSON.
func Encode(w io.Writer, ds *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

// LoadFile decodes the dataset stored at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(io.LimitReader(f, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// WriteFile writes ds to path. The file is written to a temporary sibling
// and renamed into place, so readers never observe a partial file.
func WriteFile(path string, ds *Dataset) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath) // clean up on error
	}()

	if err := Encode(f, ds); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
