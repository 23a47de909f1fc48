package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"city_graph/pkg/dataset"
	"city_graph/pkg/graph"
	"city_graph/pkg/query"
)

// maxValidateBody bounds POST /api/v1/validate request bodies.
const maxValidateBody = 1 << 20

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	querier query.Querier
}

// NewHandlers creates handlers backed by the given querier.
func NewHandlers(querier query.Querier) *Handlers {
	return &Handlers{querier: querier}
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	s := h.querier.Stats()
	writeJSON(w, http.StatusOK, StatsResponse{
		NumCities:     s.NumCities,
		NumEdges:      s.NumEdges,
		NumComponents: s.NumComponents,
	})
}

// HandleCities handles GET /api/v1/cities. An optional
// bbox=minLat,minLon,maxLat,maxLon restricts the result.
func (h *Handlers) HandleCities(w http.ResponseWriter, r *http.Request) {
	var (
		cities []graph.City
		err    error
	)
	if raw := r.URL.Query().Get("bbox"); raw != "" {
		box, perr := parseBBox(raw)
		if perr != nil {
			writeError(w, http.StatusBadRequest, "invalid_bbox", "bbox")
			return
		}
		cities, err = h.querier.Within(r.Context(), box[0], box[1], box[2], box[3])
	} else {
		cities, err = h.querier.Cities(r.Context())
	}
	if err != nil {
		writeQueryError(w, err)
		return
	}

	resp := CitiesResponse{Cities: make([]CityJSON, len(cities)), Count: len(cities)}
	for i, c := range cities {
		resp.Cities[i] = cityJSON(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCity handles GET /api/v1/cities/{id}.
func (h *Handlers) HandleCity(w http.ResponseWriter, r *http.Request) {
	id, err := cityIDVar(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_city_id", "id")
		return
	}

	c, err := h.querier.City(r.Context(), id)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cityJSON(c))
}

// HandleNearby handles GET /api/v1/cities/{id}/nearby?radiusKm=R.
func (h *Handlers) HandleNearby(w http.ResponseWriter, r *http.Request) {
	id, err := cityIDVar(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_city_id", "id")
		return
	}
	radius, err := finiteParam(r, "radiusKm")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_radius", "radiusKm")
		return
	}

	source, err := h.querier.City(r.Context(), id)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	nearby, err := h.querier.Nearby(r.Context(), id, radius)
	if err != nil {
		writeQueryError(w, err)
		return
	}

	resp := NearbyResponse{
		Source:   cityJSON(source),
		RadiusKm: radius,
		Cities:   make([]NearbyCityJSON, len(nearby)),
	}
	for i, n := range nearby {
		resp.Cities[i] = NearbyCityJSON{CityJSON: cityJSON(n.City), DistanceKm: n.DistanceKm}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleNearest handles GET /api/v1/nearest?lat=..&lon=..
func (h *Handlers) HandleNearest(w http.ResponseWriter, r *http.Request) {
	lat, err := finiteParam(r, "lat")
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "lat")
		return
	}
	lon, err := finiteParam(r, "lon")
	if err != nil || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "lon")
		return
	}

	res, err := h.querier.Nearest(r.Context(), lat, lon)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NearestResponse{
		City:           cityJSON(res.City),
		DistanceMeters: res.DistanceMeters,
	})
}

// HandleLayout handles GET /api/v1/layout.
func (h *Handlers) HandleLayout(w http.ResponseWriter, r *http.Request) {
	l, err := h.querier.Layout(r.Context())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// HandleValidate handles POST /api/v1/validate. The body is a dataset; the
// response reports the first structural problem found, if any.
func (h *Handlers) HandleValidate(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	ds, err := dataset.Decode(http.MaxBytesReader(w, r.Body, maxValidateBody))
	if err != nil && !errors.Is(err, dataset.ErrNotSequence) {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if err == nil {
		err = ds.Validate()
	}
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, ValidateResponse{
			Valid:   false,
			Error:   validationCode(err),
			Message: err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, ValidateResponse{Valid: true})
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, dataset.ErrNotSequence):
		return "type_mismatch"
	case errors.Is(err, graph.ErrMissingField):
		return "missing_field"
	case errors.Is(err, graph.ErrDuplicateID):
		return "duplicate_id"
	case errors.Is(err, graph.ErrInvalidDistance):
		return "invalid_distance"
	case errors.Is(err, graph.ErrDanglingReference):
		return "dangling_reference"
	default:
		return "invalid_graph"
	}
}

func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, query.ErrCityNotFound):
		writeError(w, http.StatusNotFound, "city_not_found", "")
	case errors.Is(err, query.ErrPointTooFar):
		writeError(w, http.StatusUnprocessableEntity, "point_too_far_from_city", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func cityIDVar(r *http.Request) (graph.CityID, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("city id must be non-zero")
	}
	return graph.CityID(id), nil
}

func finiteParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be finite", name)
	}
	return v, nil
}

// parseBBox parses "minLat,minLon,maxLat,maxLon".
func parseBBox(raw string) ([4]float64, error) {
	var box [4]float64
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return box, errors.New("bbox needs four values")
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return box, errors.New("bbox values must be finite numbers")
		}
		box[i] = v
	}
	if box[0] > box[2] || box[1] > box[3] {
		return box, errors.New("bbox min exceeds max")
	}
	return box, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Field: field})
}
