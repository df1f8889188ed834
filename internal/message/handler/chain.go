package handler

import (
	"fmt"

	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/model"
)

// Outcome is the terminal state of a chain run.
type Outcome uint8

const (
	// Accepted means every handler returned Continue.
	Accepted Outcome = iota
	// Rejected means a handler returned Stop.
	Rejected
)

func (o Outcome) String() string {
	if o == Rejected {
		return "rejected"
	}
	return "accepted"
}

type namedHandler[M message.Message] struct {
	name    string
	handler Handler[M]
}

// Chain is the ordered handler list of one message type.
// Verification handlers go first so vetoes are cheap and side-effect free.
type Chain[M message.Message] struct {
	handlers []namedHandler[M]
}

// NewChain creates an empty chain.
func NewChain[M message.Message]() *Chain[M] {
	return &Chain[M]{}
}

// Add appends h under name and returns the chain for fluent registration.
func (c *Chain[M]) Add(name string, h Handler[M]) *Chain[M] {
	c.handlers = append(c.handlers, namedHandler[M]{name: name, handler: h})
	return c
}

// AddFunc appends a function handler.
func (c *Chain[M]) AddFunc(name string, f func(ctx *Context, player *model.Player, msg M) Result) *Chain[M] {
	return c.Add(name, HandlerFunc[M](f))
}

// Len returns the number of handlers.
func (c *Chain[M]) Len() int {
	return len(c.handlers)
}

// Names returns handler names in execution order.
func (c *Chain[M]) Names() []string {
	names := make([]string, len(c.handlers))
	for i, h := range c.handlers {
		names[i] = h.name
	}
	return names
}

// Run executes the handlers in order until one returns Stop.
func (c *Chain[M]) Run(ctx *Context, player *model.Player, msg M) Outcome {
	for _, h := range c.handlers {
		if h.handler.Handle(ctx, player, msg) == Stop {
			ctx.breakChain(h.name)
			return Rejected
		}
	}
	return Accepted
}

// dispatch adapts the typed chain to the registry's untyped message.
func (c *Chain[M]) dispatch(ctx *Context, player *model.Player, msg message.Message) (Outcome, error) {
	typed, ok := msg.(M)
	if !ok {
		var zero M
		return Rejected, fmt.Errorf("chain for %s got %T, want %T", msg.Type(), msg, zero)
	}
	return c.Run(ctx, player, typed), nil
}
