package service

import (
	"context"
	"fmt"

	"github.com/udisondev/worldguard/internal/gameserver"
	"github.com/udisondev/worldguard/internal/world"
)

// TickerService runs the tick processor.
type TickerService struct {
	processor *gameserver.TickProcessor
}

// NewTickerService is the Factory for TickerName.
func NewTickerService(w *world.World) (Service, error) {
	if w == nil {
		return nil, fmt.Errorf("ticker service: nil world")
	}
	return &TickerService{}, nil
}

// SetContext builds the processor from the shared queue and dispatcher.
func (s *TickerService) SetContext(sc *ServerContext) {
	s.processor = gameserver.NewTickProcessor(sc.Config.TickInterval, sc.Queue, sc.Dispatcher)
}

// Start runs ticks until ctx is canceled.
func (s *TickerService) Start(ctx context.Context) error {
	if s.processor == nil {
		return fmt.Errorf("ticker: server context not set")
	}
	// Cancellation is the normal shutdown path.
	if err := s.processor.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Processor returns the tick processor, nil before SetContext.
func (s *TickerService) Processor() *gameserver.TickProcessor {
	return s.processor
}
