package gameserver

import (
	"errors"

	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/model"
)

// ErrQueueFull is returned by Submit when the queue is at capacity.
var ErrQueueFull = errors.New("action queue full")

// Action is a decoded message awaiting dispatch on the next tick.
type Action struct {
	Player  *model.Player
	Message message.Message
}

// ActionQueue buffers actions between ticks. Submit is safe for concurrent
// use by network goroutines; Drain is called by the tick loop only.
type ActionQueue struct {
	ch chan Action
}

// NewActionQueue creates a queue holding at most size actions.
func NewActionQueue(size int) *ActionQueue {
	return &ActionQueue{ch: make(chan Action, size)}
}

// Submit enqueues an action without blocking.
func (q *ActionQueue) Submit(player *model.Player, msg message.Message) error {
	select {
	case q.ch <- Action{Player: player, Message: msg}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain returns the actions queued at the moment of the call, in submission
// order. Actions submitted while draining wait for the next tick.
func (q *ActionQueue) Drain() []Action {
	n := len(q.ch)
	if n == 0 {
		return nil
	}
	out := make([]Action, 0, n)
	for range n {
		out = append(out, <-q.ch)
	}
	return out
}

// Len returns the number of queued actions.
func (q *ActionQueue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *ActionQueue) Cap() int {
	return cap(q.ch)
}
