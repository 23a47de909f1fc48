package graph

import (
	"errors"
	"fmt"
)

// Validation errors. Each is wrapped with the offending index or id.
var (
	ErrMissingField      = errors.New("city must have id and name")
	ErrDuplicateID       = errors.New("duplicated city id")
	ErrInvalidDistance   = errors.New("edge must have positive distanceKm")
	ErrDanglingReference = errors.New("edge references missing city id")
)

// Validate checks the structural invariants of a raw graph description:
// every city has an id and a name, ids are unique, every edge distance is
// strictly positive and every edge endpoint names a known city.
//
// Checks run in that order and the first failure is returned.
func Validate(cities []City, edges []Edge) (bool, error) {
	ids := make(map[CityID]struct{}, len(cities))
	for i, c := range cities {
		if c.ID == 0 || c.Name == "" {
			return false, fmt.Errorf("city[%d]: %w", i, ErrMissingField)
		}
		if _, dup := ids[c.ID]; dup {
			return false, fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
		}
		ids[c.ID] = struct{}{}
	}

	for i, e := range edges {
		// Written as a negation so NaN is rejected too.
		if !(e.DistanceKm > 0) {
			return false, fmt.Errorf("edge[%d] %d-%d: %w", i, e.FromID, e.ToID, ErrInvalidDistance)
		}
		if _, ok := ids[e.FromID]; !ok {
			return false, fmt.Errorf("edge[%d]: %w: %d", i, ErrDanglingReference, e.FromID)
		}
		if _, ok := ids[e.ToID]; !ok {
			return false, fmt.Errorf("edge[%d]: %w: %d", i, ErrDanglingReference, e.ToID)
		}
	}

	return true, nil
}
