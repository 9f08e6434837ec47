// Package validation runs per-request rule sets ahead of a handler and
// short-circuits with a ValidationError Result when any rule fails.
package validation

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/million/pkg/dispatch"
	"github.com/JaimeStill/million/pkg/result"
)

// Validator checks a request value and returns one message per violated
// rule. Implementations must be pure and perform no I/O.
type Validator[R any] interface {
	Validate(req R) []string
}

// Func adapts a function to the Validator interface.
type Func[R any] func(req R) []string

func (f Func[R]) Validate(req R) []string {
	return f(req)
}

// Collect runs every validator concurrently and returns all messages in
// validator registration order.
func Collect[R any](req R, validators ...Validator[R]) []string {
	if len(validators) == 0 {
		return nil
	}

	found := make([][]string, len(validators))

	var g errgroup.Group
	for i, v := range validators {
		g.Go(func() error {
			found[i] = v.Validate(req)
			return nil
		})
	}
	g.Wait()

	var messages []string
	for _, msgs := range found {
		messages = append(messages, msgs...)
	}
	return messages
}

// Behavior returns a dispatch behavior that validates the request before
// invoking the rest of the chain. On any violation the chain is not
// invoked and a ValidationError failure carrying every message is returned.
func Behavior[R dispatch.Request[T], T any](validators ...Validator[R]) dispatch.Behavior[R, T] {
	return func(ctx context.Context, req R, next dispatch.Next[T]) result.Result[T] {
		if messages := Collect(req, validators...); len(messages) > 0 {
			return result.Validation[T](messages...)
		}
		return next(ctx)
	}
}
