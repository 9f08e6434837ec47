package validation

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

func shared() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
	})
	return engine
}

// Rules accumulates violation messages. Field checks use validator tags
// (required, max=N, gt=N, gte=N, lte=N); cross-field and clock-relative
// checks use Check.
type Rules struct {
	messages []string
}

// NewRules returns an empty rule collector.
func NewRules() *Rules {
	return &Rules{}
}

// Var appends message when value fails the validator tag.
func (r *Rules) Var(value any, tag, message string) *Rules {
	if err := shared().Var(value, tag); err != nil {
		r.messages = append(r.messages, message)
	}
	return r
}

// Check appends message when ok is false.
func (r *Rules) Check(ok bool, message string) *Rules {
	if !ok {
		r.messages = append(r.messages, message)
	}
	return r
}

// Messages returns the accumulated violations.
func (r *Rules) Messages() []string {
	return r.messages
}
