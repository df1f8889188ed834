// Package handler implements the ordered, short-circuiting message handler
// pipeline. Each message type owns one Chain; a handler rejects the action by
// returning Stop, which is the normal veto path and not an error.
package handler

import (
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/world"
)

// Result is returned by every handler invocation.
type Result uint8

const (
	// Continue passes the message to the next handler.
	Continue Result = iota
	// Stop vetoes the message; no further handler runs.
	Stop
)

func (r Result) String() string {
	if r == Stop {
		return "stop"
	}
	return "continue"
}

// Handler processes one message type.
type Handler[M message.Message] interface {
	Handle(ctx *Context, player *model.Player, msg M) Result
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[M message.Message] func(ctx *Context, player *model.Player, msg M) Result

// Handle calls f.
func (f HandlerFunc[M]) Handle(ctx *Context, player *model.Player, msg M) Result {
	return f(ctx, player, msg)
}

// Context is the per-dispatch state shared by the handlers of one chain run.
// It is owned by a single dispatch and discarded afterwards.
type Context struct {
	// World is the authoritative world state.
	World *world.World
	// Region is the acting player's current region, resolved before the chain runs.
	Region *world.Region
	// Tick is the server tick the message is processed in.
	Tick uint64

	broken    bool
	stoppedBy string
}

// NewContext creates a dispatch context for player in w.
func NewContext(w *world.World, player *model.Player, tick uint64) *Context {
	return &Context{
		World:  w,
		Region: w.Regions().FromPosition(player.Position()),
		Tick:   tick,
	}
}

// Broken reports whether a handler vetoed the chain.
func (c *Context) Broken() bool {
	return c.broken
}

// StoppedBy returns the name of the vetoing handler ("" if none).
func (c *Context) StoppedBy() string {
	return c.stoppedBy
}

func (c *Context) breakChain(by string) {
	c.broken = true
	c.stoppedBy = by
}
