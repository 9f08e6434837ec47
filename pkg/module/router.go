package module

import (
	"cmp"
	"fmt"
	"net/http"
	"strings"
)

// Router sends each request to the module owning the first segment of its
// path. Paths no module claims go to a plain ServeMux holding the health,
// readiness and metrics endpoints.
type Router struct {
	modules map[string]*Module
	native  *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		modules: make(map[string]*Module),
		native:  http.NewServeMux(),
	}
}

func (r *Router) HandleNative(pattern string, handler http.Handler) {
	r.native.Handle(pattern, handler)
}

// Mount claims m's prefix. Mounting two modules on one prefix panics.
func (r *Router) Mount(m *Module) {
	if _, taken := r.modules[m.prefix]; taken {
		panic(fmt.Sprintf("module prefix %s mounted twice", m.prefix))
	}
	r.modules[m.prefix] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	trimTrailingSlash(req)

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}
	r.native.ServeHTTP(w, req)
}

// firstSegment returns "/api" for "/api/properties/1".
func firstSegment(path string) string {
	rest, _ := strings.CutPrefix(path, "/")
	head, _, _ := strings.Cut(rest, "/")
	return "/" + head
}

func trimTrailingSlash(req *http.Request) {
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = cmp.Or(strings.TrimRight(p, "/"), "/")
	}
}
