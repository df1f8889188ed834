package world

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/udisondev/worldguard/internal/model"
)

var (
	// ErrEntityNotFound is returned when an object ID is not spawned.
	ErrEntityNotFound = errors.New("entity not found")
	// ErrEntityExists is returned when spawning an object ID twice.
	ErrEntityExists = errors.New("entity already spawned")
)

// movable is satisfied by every entity built on model.WorldObject.
type movable interface {
	model.Entity
	SetPosition(model.Position)
}

// World is the authoritative spatial state: all regions plus the entity table.
//
// Lock order: World.mu → Region.mu (ascending arena index when two are held).
// Structural changes (Spawn/Despawn/Move) hold World.mu exclusively; multi-region
// queries hold it shared, so they never observe an entity in two regions or in none.
// Single-region queries only take the region lock.
type World struct {
	regions *RegionRepository
	ids     *ObjectIDGenerator

	mu       sync.RWMutex
	entities map[uint32]model.Entity
	owners   map[uint32]int32 // objectID → owning region arena slot
	players  map[string]*model.Player
}

// New creates an empty world.
func New() *World {
	return &World{
		regions:  NewRegionRepository(),
		ids:      NewObjectIDGenerator(),
		entities: make(map[uint32]model.Entity, 4096),
		owners:   make(map[uint32]int32, 4096),
		players:  make(map[string]*model.Player, 256),
	}
}

// Regions returns the world's region repository.
func (w *World) Regions() *RegionRepository {
	return w.regions
}

// IDs returns the world's object ID generator.
func (w *World) IDs() *ObjectIDGenerator {
	return w.ids
}

// Spawn places e into the world and indexes it in its region.
func (w *World) Spawn(e model.Entity) error {
	pos := e.Position()
	if !pos.Valid() {
		return fmt.Errorf("spawning entity %d: invalid position %s", e.ObjectID(), pos)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[e.ObjectID()]; ok {
		return fmt.Errorf("spawning entity %d: %w", e.ObjectID(), ErrEntityExists)
	}

	player, isPlayer := e.(*model.Player)
	if isPlayer {
		if _, taken := w.players[player.Name()]; taken {
			return fmt.Errorf("spawning player %q: name already online", player.Name())
		}
	}

	region := w.regions.FromPosition(pos)
	if err := region.Add(e); err != nil {
		return fmt.Errorf("spawning entity %d: %w", e.ObjectID(), err)
	}

	w.entities[e.ObjectID()] = e
	w.owners[e.ObjectID()] = region.Index()
	if isPlayer {
		w.players[player.Name()] = player
	}
	return nil
}

// Despawn removes the entity from the world and its region.
func (w *World) Despawn(objectID uint32) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[objectID]
	if !ok {
		return fmt.Errorf("despawning entity %d: %w", objectID, ErrEntityNotFound)
	}

	if region := w.regions.ByIndex(w.owners[objectID]); region != nil {
		region.Remove(e)
	}

	delete(w.entities, objectID)
	delete(w.owners, objectID)
	if player, isPlayer := e.(*model.Player); isPlayer {
		delete(w.players, player.Name())
	}
	return nil
}

// Move relocates the entity to pos. A move across a region boundary holds both
// region locks, so a query of either region sees the entity exactly once.
func (w *World) Move(objectID uint32, pos model.Position) error {
	if !pos.Valid() {
		return fmt.Errorf("moving entity %d: invalid position %s", objectID, pos)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities[objectID]
	if !ok {
		return fmt.Errorf("moving entity %d: %w", objectID, ErrEntityNotFound)
	}
	m, ok := e.(movable)
	if !ok {
		return fmt.Errorf("moving entity %d: type %T cannot move", objectID, e)
	}

	from := w.regions.ByIndex(w.owners[objectID])
	to := w.regions.FromPosition(pos)

	if from == to {
		from.mu.Lock()
		m.SetPosition(pos)
		from.mu.Unlock()
		return nil
	}

	first, second := from, to
	if second.index < first.index {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	defer second.mu.Unlock()
	defer first.mu.Unlock()

	old := m.Position()
	from.removeLocked(m)
	m.SetPosition(pos)
	if err := to.addLocked(m); err != nil {
		// Restore previous placement so the entity is never orphaned.
		m.SetPosition(old)
		_ = from.addLocked(m)
		return fmt.Errorf("moving entity %d: %w", objectID, err)
	}
	w.owners[objectID] = to.index
	return nil
}

// Entity returns a spawned entity by object ID.
func (w *World) Entity(objectID uint32) (model.Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[objectID]
	return e, ok
}

// RegionOf returns the region currently owning the entity.
func (w *World) RegionOf(objectID uint32) (*Region, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	idx, ok := w.owners[objectID]
	if !ok {
		return nil, false
	}
	return w.regions.ByIndex(idx), true
}

// PlayerByName returns an online player.
func (w *World) PlayerByName(name string) (*model.Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.players[name]
	return p, ok
}

// EntitiesNear returns entities of the given types within radius tiles
// (Chebyshev, planar) of pos, ordered region by region.
// radius is clamped to [0, MaxViewDistance].
func (w *World) EntitiesNear(pos model.Position, radius int32, types ...model.EntityType) []model.Entity {
	radius = clampRadius(radius)

	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []model.Entity
	for _, region := range w.regions.Surrounding(pos, radius) {
		region.ForEach(func(e model.Entity) bool {
			if pos.WithinDistance(e.Position(), radius) {
				out = append(out, e)
			}
			return true
		}, types...)
	}
	return out
}

// EntityCount returns the number of spawned entities.
func (w *World) EntityCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.entities)
}

// Players returns a snapshot of online players ordered by name.
func (w *World) Players() []*model.Player {
	w.mu.RLock()
	out := make([]*model.Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, p)
	}
	w.mu.RUnlock()

	slices.SortFunc(out, func(a, b *model.Player) int { return cmp.Compare(a.Name(), b.Name()) })
	return out
}

// PlayerCount returns the number of online players.
func (w *World) PlayerCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.players)
}

// Reset removes all entities but keeps created regions.
// Used for test isolation.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, region := range w.regions.Regions() {
		region.clear()
	}
	clear(w.entities)
	clear(w.owners)
	clear(w.players)
}
