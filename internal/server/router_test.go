package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/reel/internal/shared"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	})
}

// patternHandler echoes the mux pattern that matched, for route
// registration tests.
type patternHandler struct {
	routes []string
}

func (h *patternHandler) Routes() []string { return h.routes }

func (h *patternHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.Pattern))
}

func TestBasicRouter(t *testing.T) {
	t.Run("Method Qualified Handle", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", okHandler("pong"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
			t.Errorf("expected 200 pong, got %d %q", rec.Code, rec.Body.String())
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for POST, got %d", rec.Code)
		}
	})

	t.Run("Empty Method Matches All", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle("", "/any", okHandler("any"))

		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(method, "/any", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("expected 200 for %s, got %d", method, rec.Code)
			}
		}
	})

	t.Run("Unknown Path Is 404", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", okHandler("pong"))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Middleware Wraps In Order", func(t *testing.T) {
		var order []string
		record := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(record("first"), record("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

		want := []string{"first", "second", "handler"}
		if len(order) != len(want) {
			t.Fatalf("expected order %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("expected order %v, got %v", want, order)
			}
		}
	})

	t.Run("Handler Registers All Routes", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(&patternHandler{routes: []string{"GET /one", "GET /two/{id}"}})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/one", nil))
		if rec.Body.String() != "GET /one" {
			t.Errorf("expected pattern GET /one, got %q", rec.Body.String())
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/two/42", nil))
		if rec.Body.String() != "GET /two/{id}" {
			t.Errorf("expected pattern GET /two/{id}, got %q", rec.Body.String())
		}
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)

	router := NewBasicRouter()
	router.Use(RequestLogger(logger))
	router.Handle(http.MethodGet, "/ping", okHandler("pong"))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	logged := buf.String()
	for _, want := range []string{"method=GET", "path=/ping", "status=200"} {
		if !strings.Contains(logged, want) {
			t.Errorf("expected log to contain %q, got %q", want, logged)
		}
	}
}

func TestBearerAuth(t *testing.T) {
	newRouter := func(token string) *BasicRouter {
		router := NewBasicRouter()
		router.Use(BearerAuth(token))
		router.Handle(http.MethodGet, "/api/videos", okHandler("videos"))
		router.Handle(http.MethodGet, "/health", okHandler("ok"))
		return router
	}

	tests := []struct {
		name       string
		token      string
		header     string
		path       string
		wantStatus int
	}{
		{
			name:       "Missing Token Is 401",
			token:      "sekrit",
			path:       "/api/videos",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Wrong Token Is 401",
			token:      "sekrit",
			header:     "Bearer nope",
			path:       "/api/videos",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Valid Token Passes",
			token:      "sekrit",
			header:     "Bearer sekrit",
			path:       "/api/videos",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Health Skips Auth",
			token:      "sekrit",
			path:       "/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Empty Token Disables Check",
			token:      "",
			path:       "/api/videos",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			newRouter(tt.token).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
