package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/million/pkg/module"
	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/routes"
)

func TestNewInvalidPrefixPanics(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "api"},
		{"nested path", "/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Error("expected panic for invalid prefix")
				}
			}()
			module.New(tt.prefix)
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	var seen string
	api := module.New("/api")
	api.Mount(routes.Group{
		Prefix: "/properties",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
				seen = r.URL.Path
				w.WriteHeader(http.StatusOK)
			}},
		},
	})

	var order []string
	api.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "mw")
			next.ServeHTTP(w, r)
		})
	})

	router := module.NewRouter()
	router.Mount(api)
	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name string
		path string
		want int
	}{
		{"module route", "/api/properties/42", http.StatusOK},
		{"trailing slash", "/api/properties/42/", http.StatusOK},
		{"native route", "/healthz", http.StatusNoContent},
		{"unknown module path", "/api/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if seen != "/properties/42" {
		t.Errorf("prefix not stripped: got %s", seen)
	}
	if len(order) != 3 {
		t.Errorf("module middleware ran %d times, want 3", len(order))
	}
}

func TestDescribeUsesPrefix(t *testing.T) {
	api := module.New("/api")
	api.Mount(routes.Group{
		Prefix: "/owners",
		Routes: []routes.Route{{Method: "GET", Pattern: "", Handler: func(http.ResponseWriter, *http.Request) {}}},
	})

	spec := openapi.NewSpec(&openapi.Config{Title: "t"}, "1")
	api.Describe(spec)

	if spec.Paths["/api/owners"] == nil || spec.Paths["/api/owners"].Get == nil {
		t.Errorf("paths: %v", spec.Paths)
	}
}

func TestMountTwicePanics(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate prefix")
		}
	}()
	router.Mount(module.New("/api"))
}
