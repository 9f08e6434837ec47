// Package middleware holds the HTTP wrappers shared by every module:
// request logging, panic recovery and CORS.
package middleware

import (
	"net/http"
	"slices"
)

// Func wraps a handler.
type Func = func(http.Handler) http.Handler

// System is an ordered middleware stack. The first Func added is the
// outermost wrapper.
type System interface {
	Use(fns ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack []Func

func New() System {
	return &stack{}
}

func (s *stack) Use(fns ...Func) {
	for _, fn := range fns {
		if fn != nil {
			*s = append(*s, fn)
		}
	}
}

func (s *stack) Apply(handler http.Handler) http.Handler {
	for _, fn := range slices.Backward(*s) {
		handler = fn(handler)
	}
	return handler
}
