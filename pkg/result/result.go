// Package result provides the success/failure container returned by every
// request handler, along with the error taxonomy used to derive the HTTP
// status and display message of a failed outcome.
package result

import (
	"fmt"
	"net/http"
	"strings"
)

// Kind tags an Error with its category.
type Kind string

const (
	KindUnauthorized        Kind = "Unauthorized"
	KindNotFound            Kind = "NotFound"
	KindBadRequest          Kind = "BadRequest"
	KindForbidden           Kind = "Forbidden"
	KindInternalServerError Kind = "InternalServerError"
	KindValidation          Kind = "ValidationError"
)

// FallbackMessage is rendered for a failure that carries no errors.
const FallbackMessage = "An error occurred"

// Status returns the HTTP status code associated with the kind,
// or zero for an unknown kind.
func (k Kind) Status() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest, KindValidation:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindInternalServerError:
		return http.StatusInternalServerError
	}
	return 0
}

// Error is a single structured failure. StatusCode and Kind are optional;
// a zero StatusCode defers to Kind when deriving the outcome status.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Kind       Kind   `json:"kind,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// Void is the value type of a Result that carries no data.
type Void = struct{}

// Outcome is implemented by every Result instantiation and lets transport
// code reason about a Result without knowing its value type.
type Outcome interface {
	Succeeded() bool
	Errors() []Error
}

// Result is either a success wrapping a value or a failure wrapping one or
// more errors.
type Result[T any] struct {
	value  T
	errors []Error
	ok     bool
}

// Ok wraps value in a successful Result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Done returns a successful Result carrying no data.
func Done() Result[Void] {
	return Ok(Void{})
}

// Fail builds a failed Result from the given errors.
func Fail[T any](errs ...Error) Result[T] {
	return Result[T]{errors: errs}
}

// Failf builds a generic failure with no kind and no status code.
func Failf[T any](format string, args ...any) Result[T] {
	return Fail[T](Error{Message: fmt.Sprintf(format, args...)})
}

func Unauthorized[T any](message string) Result[T] {
	return failKind[T](KindUnauthorized, message)
}

func NotFound[T any](message string) Result[T] {
	return failKind[T](KindNotFound, message)
}

func BadRequest[T any](message string) Result[T] {
	return failKind[T](KindBadRequest, message)
}

func Forbidden[T any](message string) Result[T] {
	return failKind[T](KindForbidden, message)
}

func InternalServerError[T any](message string) Result[T] {
	return failKind[T](KindInternalServerError, message)
}

// Validation builds a failure carrying one ValidationError per message.
func Validation[T any](messages ...string) Result[T] {
	errs := make([]Error, len(messages))
	for i, msg := range messages {
		errs[i] = Error{
			Message:    msg,
			StatusCode: http.StatusBadRequest,
			Kind:       KindValidation,
		}
	}
	return Fail[T](errs...)
}

// Relay carries the errors of a failed Outcome into a Result of another
// value type. Relaying a successful Outcome yields a failure with no errors.
func Relay[T any](o Outcome) Result[T] {
	return Fail[T](o.Errors()...)
}

func (r Result[T]) Succeeded() bool { return r.ok }

func (r Result[T]) Errors() []Error { return r.errors }

// Value returns the wrapped value. It is the zero value for a failure.
func (r Result[T]) Value() T { return r.value }

// Unwrap returns the value and whether the Result succeeded.
func (r Result[T]) Unwrap() (T, bool) { return r.value, r.ok }

// StatusCode derives the externally visible status of an outcome.
// Success is 200. A failure uses the status of its first error, falling
// back to the status of that error's kind, and finally to 400.
func StatusCode(o Outcome) int {
	if o.Succeeded() {
		return http.StatusOK
	}

	errs := o.Errors()
	if len(errs) == 0 {
		return http.StatusBadRequest
	}

	first := errs[0]
	if first.StatusCode != 0 {
		return first.StatusCode
	}
	if status := first.Kind.Status(); status != 0 {
		return status
	}
	return http.StatusBadRequest
}

// Message derives the display message of an outcome. Multiple validation
// errors are joined with "; ", any other failure surfaces its first error.
func Message(o Outcome) string {
	errs := o.Errors()
	if len(errs) == 0 {
		return FallbackMessage
	}

	var validation []string
	for _, e := range errs {
		if e.Kind == KindValidation {
			validation = append(validation, e.Message)
		}
	}
	if len(validation) > 1 {
		return strings.Join(validation, "; ")
	}

	return errs[0].Message
}

func failKind[T any](kind Kind, message string) Result[T] {
	return Fail[T](Error{
		Message:    message,
		StatusCode: kind.Status(),
		Kind:       kind,
	})
}
