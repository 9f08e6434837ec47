package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/million/pkg/openapi"
	"github.com/JaimeStill/million/pkg/routes"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func sample() routes.Group {
	return routes.Group{
		Tags: []string{"Properties"},
		Children: []routes.Group{
			{
				Prefix: "/properties",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: ok, Summary: "Search"},
					{Method: "GET", Pattern: "/{id}", Handler: ok},
					{Method: "PATCH", Pattern: "/{id}/price", Handler: ok, Secured: true},
				},
			},
			{
				Prefix: "/properties/{propertyId}/images",
				Tags:   []string{"Images"},
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: ok, Secured: true},
				},
			},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, sample())

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"list", "GET", "/properties", http.StatusOK},
		{"item", "GET", "/properties/123", http.StatusOK},
		{"nested child", "POST", "/properties/123/images", http.StatusOK},
		{"patch", "PATCH", "/properties/123/price", http.StatusOK},
		{"wrong method", "DELETE", "/properties/123", http.StatusMethodNotAllowed},
		{"unknown", "GET", "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	spec := openapi.NewSpec(&openapi.Config{Title: "Test"}, "1.0.0")
	routes.Describe(spec, "/api", sample())

	list := spec.Paths["/api/properties"]
	if list == nil || list.Get == nil {
		t.Fatalf("missing GET /api/properties: %v", spec.Paths)
	}
	if list.Get.Summary != "Search" || list.Get.Tags[0] != "Properties" {
		t.Errorf("list op: %+v", list.Get)
	}
	if list.Get.Security != nil {
		t.Error("public route should not carry security")
	}

	price := spec.Paths["/api/properties/{id}/price"]
	if price == nil || price.Patch == nil {
		t.Fatal("missing PATCH price")
	}
	if len(price.Patch.Parameters) != 1 || price.Patch.Parameters[0].Name != "id" || price.Patch.Parameters[0].In != "path" {
		t.Errorf("params: %+v", price.Patch.Parameters)
	}
	if _, has := price.Patch.Security[0][openapi.BearerScheme]; !has {
		t.Error("secured route should reference the bearer scheme")
	}
	if price.Patch.Responses[http.StatusForbidden] == nil {
		t.Error("secured route should document 403")
	}

	images := spec.Paths["/api/properties/{propertyId}/images"]
	if images == nil || images.Post == nil {
		t.Fatal("missing POST images")
	}
	if images.Post.Tags[0] != "Images" {
		t.Errorf("child tags should override: %v", images.Post.Tags)
	}
	if images.Post.Responses[http.StatusCreated] == nil {
		t.Error("POST should document 201")
	}
}
