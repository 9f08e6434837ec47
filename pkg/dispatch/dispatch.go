// Package dispatch routes typed request values to their single registered
// handler through an ordered chain of behaviors.
//
// A request type declares the value type of its Result by embedding
// Returns[T]. Handlers are bound by exact request type; there is no
// fallback or inheritance-based resolution.
package dispatch

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/JaimeStill/million/pkg/result"
)

// Request is satisfied by any type that embeds Returns[T].
type Request[T any] interface {
	returns(T)
}

// Returns marks the embedding request as producing a Result[T].
type Returns[T any] struct{}

func (Returns[T]) returns(T) {}

// Next invokes the remainder of the chain.
type Next[T any] func(ctx context.Context) result.Result[T]

// Handler executes the use case bound to a request type.
type Handler[R Request[T], T any] func(ctx context.Context, req R) result.Result[T]

// Behavior wraps handler invocation. A behavior may return without calling
// next to short-circuit the chain.
type Behavior[R Request[T], T any] func(ctx context.Context, req R, next Next[T]) result.Result[T]

// Observer is notified after every dispatched request.
type Observer func(ctx context.Context, name string, elapsed time.Duration, outcome result.Outcome)

type entry[R Request[T], T any] struct {
	handler   Handler[R, T]
	behaviors []Behavior[R, T]
}

// Dispatcher holds the handler registry. Registration happens during
// startup; Send is safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	entries   map[reflect.Type]any
	observers []Observer
}

// New creates an empty Dispatcher with the given observers.
func New(observers ...Observer) *Dispatcher {
	return &Dispatcher{
		entries:   make(map[reflect.Type]any),
		observers: observers,
	}
}

// Observe appends an observer.
func (d *Dispatcher) Observe(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Register binds handler to the request type R. Behaviors run in the given
// order with the first outermost. Registering the same request type twice
// panics.
func Register[R Request[T], T any](d *Dispatcher, handler Handler[R, T], behaviors ...Behavior[R, T]) {
	key := reflect.TypeFor[R]()

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entries[key]; exists {
		panic(fmt.Sprintf("dispatch: handler already registered for %s", key))
	}

	d.entries[key] = &entry[R, T]{
		handler:   handler,
		behaviors: behaviors,
	}
}

// Send resolves the handler for req and runs it through its behavior chain.
// Sending an unregistered request type panics.
func Send[T any, R Request[T]](ctx context.Context, d *Dispatcher, req R) result.Result[T] {
	key := reflect.TypeFor[R]()

	d.mu.RLock()
	raw, ok := d.entries[key]
	observers := d.observers
	d.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("dispatch: no handler registered for %s", key))
	}

	e := raw.(*entry[R, T])

	start := time.Now()
	res := e.chain(req)(ctx)
	elapsed := time.Since(start)

	for _, o := range observers {
		o(ctx, key.Name(), elapsed, res)
	}

	return res
}

// Registered reports whether a handler exists for the type of req.
func (d *Dispatcher) Registered(req any) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[reflect.TypeOf(req)]
	return ok
}

// Require verifies that every listed request value has a registered
// handler, reporting all missing types at once.
func (d *Dispatcher) Require(requests ...any) error {
	var missing []string
	for _, req := range requests {
		if !d.Registered(req) {
			missing = append(missing, reflect.TypeOf(req).String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("dispatch: unregistered request types: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (e *entry[R, T]) chain(req R) Next[T] {
	next := Next[T](func(ctx context.Context) result.Result[T] {
		return e.handler(ctx, req)
	})

	for i := len(e.behaviors) - 1; i >= 0; i-- {
		behavior := e.behaviors[i]
		inner := next
		next = func(ctx context.Context) result.Result[T] {
			return behavior(ctx, req, inner)
		}
	}

	return next
}
