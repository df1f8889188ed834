package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/world"
)

var (
	// ErrNoChain is returned when a message type has no registered chain.
	ErrNoChain = errors.New("no handler chain registered")
	// ErrChainExists is returned when registering a second chain for a type.
	ErrChainExists = errors.New("handler chain already registered")
)

// Forwarder receives accepted messages (gameplay effect boundary).
type Forwarder interface {
	Forward(player *model.Player, msg message.Message)
}

// ForwarderFunc adapts a function to Forwarder.
type ForwarderFunc func(player *model.Player, msg message.Message)

// Forward calls f.
func (f ForwarderFunc) Forward(player *model.Player, msg message.Message) {
	f(player, msg)
}

type dispatcher interface {
	dispatch(ctx *Context, player *model.Player, msg message.Message) (Outcome, error)
	Names() []string
}

type counters struct {
	accepted atomic.Uint64
	rejected atomic.Uint64
}

// Registry holds one chain per message type.
// All chains must be registered before the first Dispatch.
type Registry struct {
	world     *world.World
	forwarder Forwarder

	chains map[message.Type]dispatcher
	stats  map[message.Type]*counters
}

// NewRegistry creates an empty registry. fwd may be nil.
func NewRegistry(w *world.World, fwd Forwarder) *Registry {
	return &Registry{
		world:     w,
		forwarder: fwd,
		chains:    make(map[message.Type]dispatcher),
		stats:     make(map[message.Type]*counters),
	}
}

// Register installs chain as the handler chain for M's message type.
func Register[M message.Message](r *Registry, chain *Chain[M]) error {
	var zero M
	t := zero.Type()
	if _, ok := r.chains[t]; ok {
		return fmt.Errorf("registering %s: %w", t, ErrChainExists)
	}
	r.chains[t] = chain
	r.stats[t] = &counters{}
	return nil
}

// Dispatch runs the chain for msg. An accepted message is forwarded; a
// rejected one produces no effect. The returned error is reserved for wiring
// faults (no chain, type mismatch), never for invalid player input.
func (r *Registry) Dispatch(tick uint64, player *model.Player, msg message.Message) (Outcome, error) {
	chain, ok := r.chains[msg.Type()]
	if !ok {
		return Rejected, fmt.Errorf("dispatching %s: %w", msg.Type(), ErrNoChain)
	}

	ctx := NewContext(r.world, player, tick)
	outcome, err := chain.dispatch(ctx, player, msg)
	if err != nil {
		return Rejected, fmt.Errorf("dispatching %s: %w", msg.Type(), err)
	}

	stats := r.stats[msg.Type()]
	if outcome == Rejected {
		stats.rejected.Add(1)
		slog.Debug("action rejected",
			"type", msg.Type(),
			"player", player.Name(),
			"handler", ctx.StoppedBy(),
			"tick", tick)
		return Rejected, nil
	}

	stats.accepted.Add(1)
	if r.forwarder != nil {
		r.forwarder.Forward(player, msg)
	}
	return Accepted, nil
}

// Handlers returns the handler names registered for t, in execution order.
func (r *Registry) Handlers(t message.Type) []string {
	chain, ok := r.chains[t]
	if !ok {
		return nil
	}
	return chain.Names()
}

// Stats returns accepted and rejected counts for t.
func (r *Registry) Stats(t message.Type) (accepted, rejected uint64) {
	c, ok := r.stats[t]
	if !ok {
		return 0, 0
	}
	return c.accepted.Load(), c.rejected.Load()
}
