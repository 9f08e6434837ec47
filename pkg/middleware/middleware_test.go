package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/million/pkg/middleware"
)

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	for _, name := range []string{"first", "second"} {
		mw.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		})
	}

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if strings.Join(order, ",") != "first,second,handler" {
		t.Errorf("order: got %v, want [first second handler]", order)
	}
}

func TestCORS(t *testing.T) {
	enabled := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://example.com"},
		AllowedMethods:   []string{"GET", "PATCH"},
		AllowedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	tests := []struct {
		name        string
		cfg         *middleware.CORSConfig
		method      string
		origin      string
		wantOrigin  string
		wantHandler bool
	}{
		{"disabled", &middleware.CORSConfig{Enabled: false}, "GET", "http://example.com", "", true},
		{"allowed origin", enabled, "GET", "http://example.com", "http://example.com", true},
		{"disallowed origin", enabled, "GET", "http://denied.com", "", true},
		{"preflight", enabled, "OPTIONS", "http://example.com", "http://example.com", false},
		{"wildcard with credentials echoes origin", &middleware.CORSConfig{
			Enabled: true, Origins: []string{"*"}, AllowedMethods: []string{"GET", "PATCH"}, AllowCredentials: true,
		}, "GET", "http://any.com", "http://any.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := middleware.CORS(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == "OPTIONS" {
				req.Header.Set("Access-Control-Request-Method", "PATCH")
			}
			handler.ServeHTTP(rec, req)

			if !tt.wantHandler && rec.Code != http.StatusNoContent {
				t.Errorf("preflight status: got %d, want 204", rec.Code)
			}

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("allow-origin: got %q, want %q", got, tt.wantOrigin)
			}
			if called != tt.wantHandler {
				t.Errorf("handler called: got %v, want %v", called, tt.wantHandler)
			}
			if tt.wantOrigin != "" {
				if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, PATCH" {
					t.Errorf("allow-methods: got %s", got)
				}
				if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
					t.Errorf("allow-credentials: got %s", got)
				}
			}
		})
	}
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := middleware.Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/properties", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}

	var body struct {
		Success    bool   `json:"success"`
		Error      string `json:"error"`
		StatusCode int    `json:"statusCode"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error != "An unexpected error occurred" || body.StatusCode != 500 {
		t.Errorf("envelope: %+v", body)
	}
	if !strings.Contains(logs.String(), "panic recovered") {
		t.Errorf("panic not logged: %s", logs.String())
	}
}

func TestRecoverAbortHandler(t *testing.T) {
	handler := middleware.Recover(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", v)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
}

func TestLoggerRecordsStatus(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/properties/x", nil))

	out := logs.String()
	if !strings.Contains(out, "status=404") || !strings.Contains(out, "level=WARN") {
		t.Errorf("log line: %s", out)
	}
}

func TestCORSConfigFinalize(t *testing.T) {
	t.Setenv("TEST_CORS_ENABLED", "true")
	t.Setenv("TEST_CORS_ORIGINS", "http://a.com, http://b.com")

	cfg := middleware.CORSConfig{}
	err := cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	})
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if !cfg.Enabled {
		t.Error("enabled should be true")
	}
	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://b.com" {
		t.Errorf("origins: got %v", cfg.Origins)
	}
	if len(cfg.AllowedMethods) != 6 {
		t.Errorf("allowed_methods: got %v", cfg.AllowedMethods)
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("max_age: got %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfigNormalizeAndMerge(t *testing.T) {
	cfg := middleware.CORSConfig{
		Enabled:        true,
		Origins:        []string{"http://a.com/"},
		AllowedMethods: []string{"get", "patch"},
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Origins[0] != "http://a.com" || cfg.AllowedMethods[1] != "PATCH" {
		t.Errorf("normalize: %+v", cfg)
	}

	cfg.Merge(&middleware.CORSConfig{MaxAge: 60})
	if !cfg.Enabled || cfg.MaxAge != 60 {
		t.Errorf("overlay without origins must not disable CORS: %+v", cfg)
	}

	cfg.Merge(&middleware.CORSConfig{Origins: []string{}})
	if cfg.Enabled {
		t.Error("overlay with origins decides enablement")
	}

	bad := middleware.CORSConfig{MaxAge: -1}
	if err := bad.Finalize(nil); err == nil {
		t.Error("negative max_age should fail")
	}
}
