package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchWildcardRoute(t *testing.T) {
	cases := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/api/v1/uploads/UPL-1", "/api/v1/uploads/*", true},
		{"/api/v1/uploads/UPL-1/submit", "/api/v1/uploads/*/submit", true},
		{"/api/v1/uploads/UPL-1/other", "/api/v1/uploads/*/submit", false},
		{"/api/v1/uploads", "/api/v1/uploads/*", false},
		{"/api/v1/stages/check-eligibility/process", "/api/v1/stages/*/process", true},
		// Trailing wildcard matches any remaining depth.
		{"/api/v1/uploads/a/b/c", "/api/v1/uploads/*", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, matchWildcardRoute(c.path, c.pattern),
			"path %s pattern %s", c.path, c.pattern)
	}
}

func serve(r *Router, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.mux.ServeHTTP(rec, req)
	return rec
}

func TestFixedLengthRouteWinsOverTrailingWildcard(t *testing.T) {
	r := New()
	r.GET("/api/v1/uploads/*/submissions", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("submissions"))
	})
	r.GET("/api/v1/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("upload"))
	})

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/uploads/UPL-1/submissions", nil))
	assert.Equal(t, "submissions", rec.Body.String())

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/uploads/UPL-1", nil))
	assert.Equal(t, "upload", rec.Body.String())
}

func TestWrongMethodOnFixedLengthRouteIs405(t *testing.T) {
	r := New()
	r.POST("/api/v1/uploads/*/submit", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("submitted"))
	})
	r.GET("/api/v1/uploads/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("upload"))
	})

	// The fixed-length submit pattern claims the path: a GET must not
	// fall through to the trailing-wildcard upload handler.
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/uploads/UPL-1/submit", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodPost, "/api/v1/uploads/UPL-1/submit", nil))
	assert.Equal(t, "submitted", rec.Body.String())
}

func TestMethodNotAllowedAndNotFound(t *testing.T) {
	r := New()
	r.GET("/api/v1/stages", func(w http.ResponseWriter, req *http.Request) {})

	rec := serve(r, httptest.NewRequest(http.MethodDelete, "/api/v1/stages", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	r := New()
	r.SetCORS([]string{"http://localhost:3000"})
	r.POST("/api/v1/stages", func(w http.ResponseWriter, req *http.Request) {})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stages", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := serve(r, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSDisallowedOrigin(t *testing.T) {
	r := New()
	r.SetCORS([]string{"http://localhost:3000"})
	r.GET("/api/v1/stages", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stages", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec := serve(r, req)
	// Request is still served, but without CORS headers.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMount(t *testing.T) {
	r := New()
	r.Mount("/swagger/", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("swagger"))
	}))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "swagger", rec.Body.String())
}

func TestRegisterTracksPaths(t *testing.T) {
	r := New()
	r.GET("/a", func(w http.ResponseWriter, req *http.Request) {})
	r.POST("/a", func(w http.ResponseWriter, req *http.Request) {})

	assert.True(t, r.Paths()["/a"])
	assert.Len(t, r.Routes(), 2)
}
