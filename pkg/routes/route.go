package routes

import (
	"net/http"

	"github.com/JaimeStill/million/pkg/openapi"
)

// Route binds an HTTP method and pattern to a handler.
// The remaining fields only feed the generated OpenAPI document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc

	Summary string
	Secured bool
	Query   []*openapi.Parameter
	Body    *openapi.RequestBody
}
