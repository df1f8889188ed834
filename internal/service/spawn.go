package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/worldguard/internal/db"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/world"
)

// SpawnService places persisted game objects into the world once at startup.
type SpawnService struct {
	world  *world.World
	store  db.SpawnStore
	loaded int
}

// NewSpawnService is the Factory for SpawnName.
func NewSpawnService(w *world.World) (Service, error) {
	if w == nil {
		return nil, fmt.Errorf("spawn service: nil world")
	}
	return &SpawnService{world: w}, nil
}

// SetContext picks up the configured spawn store.
func (s *SpawnService) SetContext(sc *ServerContext) {
	s.store = sc.Spawns
}

// Init loads all object spawns into the world.
func (s *SpawnService) Init(ctx context.Context) error {
	if s.store == nil {
		slog.Info("no spawn store configured, world starts empty")
		return nil
	}

	spawns, err := s.store.LoadObjectSpawns(ctx)
	if err != nil {
		return fmt.Errorf("loading object spawns: %w", err)
	}

	for _, sp := range spawns {
		obj, err := model.NewGameObject(s.world.IDs().NextObjectID(), sp.ID, sp.Type(), sp.Position, sp.Orientation, sp.Shape)
		if err != nil {
			return fmt.Errorf("spawn %d: %w", sp.SpawnID, err)
		}
		if err := s.world.Spawn(obj); err != nil {
			return fmt.Errorf("spawn %d: %w", sp.SpawnID, err)
		}
		s.loaded++
	}

	slog.Info("object spawns loaded", "count", s.loaded, "regions", s.world.Regions().Count())
	return nil
}

// Start returns at once; spawns are placed by Init.
func (s *SpawnService) Start(context.Context) error {
	return nil
}

// Loaded returns the number of objects placed by Init.
func (s *SpawnService) Loaded() int {
	return s.loaded
}
