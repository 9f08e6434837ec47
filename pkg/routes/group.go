package routes

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/JaimeStill/million/pkg/openapi"
)

// Group organizes routes under a common prefix with shared tags.
type Group struct {
	Prefix   string
	Tags     []string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		walk("", nil, group, func(path string, _ []string, route Route) {
			mux.HandleFunc(route.Method+" "+path, route.Handler)
		})
	}
}

// Describe adds an operation to spec for every route in groups. Paths are
// rooted at base, and {name} segments become required path parameters.
// Children inherit their parent's tags when they declare none.
func Describe(spec *openapi.Spec, base string, groups ...Group) {
	for _, group := range groups {
		walk(base, nil, group, func(path string, tags []string, route Route) {
			item, ok := spec.Paths[path]
			if !ok {
				item = &openapi.PathItem{}
				spec.Paths[path] = item
			}
			item.Set(route.Method, operation(path, tags, route))
		})
	}
}

func walk(parent string, tags []string, group Group, visit func(string, []string, Route)) {
	prefix := parent + group.Prefix
	if len(group.Tags) > 0 {
		tags = group.Tags
	}
	for _, route := range group.Routes {
		visit(prefix+route.Pattern, tags, route)
	}
	for _, child := range group.Children {
		walk(prefix, tags, child, visit)
	}
}

var paramPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

func operation(path string, tags []string, route Route) *openapi.Operation {
	op := &openapi.Operation{
		Summary:     route.Summary,
		Tags:        tags,
		RequestBody: route.Body,
		Responses:   responses(path, route),
	}

	for _, m := range paramPattern.FindAllStringSubmatch(path, -1) {
		op.Parameters = append(op.Parameters, openapi.PathParam(m[1], strings.TrimSuffix(m[1], "Id")+" identifier"))
	}
	op.Parameters = append(op.Parameters, route.Query...)

	if route.Secured {
		op.Security = []map[string][]string{{openapi.BearerScheme: {}}}
	}

	return op
}

func responses(path string, route Route) map[int]*openapi.Response {
	r := map[int]*openapi.Response{
		http.StatusBadRequest: openapi.ResponseRef("BadRequest"),
	}

	switch route.Method {
	case http.MethodPost:
		r[http.StatusCreated] = openapi.ResponseRef("Success")
	default:
		r[http.StatusOK] = openapi.ResponseRef("Success")
	}

	if paramPattern.MatchString(path) {
		r[http.StatusNotFound] = openapi.ResponseRef("NotFound")
	}

	if route.Secured {
		r[http.StatusUnauthorized] = openapi.ResponseRef("Unauthorized")
		r[http.StatusForbidden] = openapi.ResponseRef("Forbidden")
	}

	return r
}
