package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"city_graph/pkg/graph"
	"city_graph/pkg/query"
)

func newTestRouter(t *testing.T, cfg ServerConfig) http.Handler {
	t.Helper()
	engine, err := query.NewEngine(testCities, []graph.Edge{
		{FromID: 1, ToID: 2, DistanceKm: 65},
		{FromID: 2, ToID: 3, DistanceKm: 130},
	})
	require.NoError(t, err)
	return NewRouter(cfg, NewHandlers(engine))
}

func TestRouterNearbyEndToEnd(t *testing.T) {
	r := newTestRouter(t, DefaultConfig(":0"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/cities/2/nearby?radiusKm=100", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[NearbyResponse](t, w)
	require.Len(t, resp.Cities, 1)
	assert.Equal(t, "Toluca", resp.Cities[0].Name)
}

func TestRouterLayoutEndToEnd(t *testing.T) {
	r := newTestRouter(t, DefaultConfig(":0"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/layout", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"x1":50`)
	assert.Contains(t, w.Body.String(), `"distanceKm":130`)
}

func TestRouterJSONKeys(t *testing.T) {
	r := newTestRouter(t, DefaultConfig(":0"))

	tests := []struct {
		url  string
		want []string
	}{
		{url: "/api/v1/cities", want: []string{`"lon":`}},
		{url: "/api/v1/cities/2/nearby?radiusKm=100", want: []string{`"lon":`, `"distanceKm":65`, `"radiusKm":100`}},
		{url: "/api/v1/nearest?lat=19.3&lon=-99.6", want: []string{`"lon":`, `"distanceMeters":`}},
		{url: "/api/v1/stats", want: []string{`"numCities":3`, `"numEdges":2`, `"numComponents":1`}},
		{url: "/api/v1/layout", want: []string{`"distanceKm":`}},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest("GET", tt.url, nil))

			require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
			body := w.Body.String()
			for _, key := range tt.want {
				assert.Contains(t, body, key)
			}
			assert.NotContains(t, body, `"lng"`)
			assert.NotContains(t, body, `_km"`)
		})
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := newTestRouter(t, DefaultConfig(":0"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/layout", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestMiddlewareHeaders(t *testing.T) {
	cfg := DefaultConfig(":0")
	cfg.CORSOrigin = "https://maps.example"
	r := newTestRouter(t, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "https://maps.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMiddlewareKeepsRequestID(t *testing.T) {
	r := newTestRouter(t, DefaultConfig(":0"))

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestMiddlewareConcurrencyLimit(t *testing.T) {
	sem := make(chan struct{}, 1)
	sem <- struct{}{} // already full

	h := withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}, sem, DefaultConfig(":0"))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}

func TestMiddlewareRecovers(t *testing.T) {
	sem := make(chan struct{}, 1)
	h := withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}, sem, DefaultConfig(":0"))

	w := httptest.NewRecorder()
	h(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, sem, "slot released after panic")
}

func TestMiddlewareSetsDeadline(t *testing.T) {
	sem := make(chan struct{}, 1)
	var hasDeadline bool
	h := withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}, sem, DefaultConfig(":0"))

	h(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil).WithContext(context.Background()))

	assert.True(t, hasDeadline)
}
