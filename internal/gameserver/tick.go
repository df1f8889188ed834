package gameserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/model"
)

// ErrInvalidInterval is returned by Start for a non-positive tick interval.
var ErrInvalidInterval = errors.New("tick interval must be positive")

// Dispatcher runs a message through its handler chain.
type Dispatcher interface {
	Dispatch(tick uint64, player *model.Player, msg message.Message) (handler.Outcome, error)
}

// TickProcessor drains the action queue once per tick and dispatches every
// action sequentially, so handlers of one tick never run concurrently.
type TickProcessor struct {
	interval   time.Duration
	queue      *ActionQueue
	dispatcher Dispatcher

	tick     atomic.Uint64
	accepted atomic.Uint64
	rejected atomic.Uint64

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewTickProcessor creates a processor ticking every interval.
func NewTickProcessor(interval time.Duration, queue *ActionQueue, dispatcher Dispatcher) *TickProcessor {
	return &TickProcessor{
		interval:   interval,
		queue:      queue,
		dispatcher: dispatcher,
		stopCh:     make(chan struct{}),
	}
}

// Start runs the tick loop (blocks until context is canceled or Stop is called).
func (p *TickProcessor) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, p.interval)
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("tick processor started", "interval", p.interval, "queue", p.queue.Cap())

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick processor stopping", "tick", p.tick.Load())
			return ctx.Err()

		case <-p.stopCh:
			slog.Info("tick processor stopped", "tick", p.tick.Load())
			return nil

		case <-ticker.C:
			p.Process()
		}
	}
}

// Stop stops the tick loop. Safe to call more than once.
func (p *TickProcessor) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

// Process advances the tick counter and dispatches everything queued so far.
// Returns the number of dispatched actions.
func (p *TickProcessor) Process() int {
	tick := p.tick.Add(1)
	actions := p.queue.Drain()

	for _, a := range actions {
		outcome, err := p.dispatcher.Dispatch(tick, a.Player, a.Message)
		if err != nil {
			slog.Error("dispatching action",
				"tick", tick,
				"player", a.Player.Name(),
				"type", a.Message.Type(),
				"err", err)
			continue
		}
		if outcome == handler.Accepted {
			p.accepted.Add(1)
		} else {
			p.rejected.Add(1)
		}
	}

	if len(actions) > 0 {
		slog.Debug("tick processed", "tick", tick, "actions", len(actions))
	}
	return len(actions)
}

// Tick returns the number of the last processed tick.
func (p *TickProcessor) Tick() uint64 {
	return p.tick.Load()
}

// Totals returns accepted and rejected counts across all ticks.
func (p *TickProcessor) Totals() (accepted, rejected uint64) {
	return p.accepted.Load(), p.rejected.Load()
}
