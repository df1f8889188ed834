package world

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/worldguard/internal/model"
)

// Region holds the entities currently located inside one RegionSize×RegionSize cell,
// indexed by entity type.
// Invariant: every indexed entity has a position inside coords.
type Region struct {
	coords RegionCoordinates
	index  int32 // arena slot in RegionRepository

	mu       sync.RWMutex
	entities map[model.EntityType]map[uint32]model.Entity // type → objectID → entity

	version atomic.Uint64 // incremented on Add/Remove
}

func newRegion(coords RegionCoordinates, index int32) *Region {
	return &Region{
		coords:   coords,
		index:    index,
		entities: make(map[model.EntityType]map[uint32]model.Entity, 4),
	}
}

// Coordinates returns the grid cell this region covers.
func (r *Region) Coordinates() RegionCoordinates {
	return r.coords
}

// Index returns the region's arena slot.
func (r *Region) Index() int32 {
	return r.index
}

// Version returns current region version (incremented on Add/Remove).
func (r *Region) Version() uint64 {
	return r.version.Load()
}

// Add indexes e. Fails if e lies outside this region or has an unknown type.
func (r *Region) Add(e model.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addLocked(e)
}

// Remove drops e from the index. Returns false if it was not present.
func (r *Region) Remove(e model.Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(e)
}

// Contains reports whether e is indexed here.
func (r *Region) Contains(e model.Entity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entities[e.Type()][e.ObjectID()]
	return ok
}

// Entities returns every entity matching any of types, ordered by object ID.
// With no types, all entities are returned.
func (r *Region) Entities(types ...model.EntityType) []model.Entity {
	return r.collect(func(model.Entity) bool { return true }, types)
}

// EntitiesAt returns the entities of the given types standing exactly on pos
// (same tile and plane).
func (r *Region) EntitiesAt(pos model.Position, types ...model.EntityType) []model.Entity {
	if !r.coords.Contains(pos) {
		return nil
	}
	return r.collect(func(e model.Entity) bool { return e.Position() == pos }, types)
}

// Count returns the number of entities matching any of types (all if none given).
func (r *Region) Count(types ...model.EntityType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(types) == 0 {
		types = model.EntityTypes()
	}
	n := 0
	for _, t := range types {
		n += len(r.entities[t])
	}
	return n
}

// ForEach calls fn for every entity of the given types (all if none given).
// If fn returns false, iteration stops. fn must not mutate the region.
func (r *Region) ForEach(fn func(model.Entity) bool, types ...model.EntityType) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(types) == 0 {
		types = model.EntityTypes()
	}
	for _, t := range types {
		for _, e := range r.entities[t] {
			if !fn(e) {
				return
			}
		}
	}
}

func (r *Region) collect(match func(model.Entity) bool, types []model.EntityType) []model.Entity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(types) == 0 {
		types = model.EntityTypes()
	}
	var out []model.Entity
	for _, t := range types {
		for _, e := range r.entities[t] {
			if match(e) {
				out = append(out, e)
			}
		}
	}
	slices.SortFunc(out, func(a, b model.Entity) int {
		return cmp.Compare(a.ObjectID(), b.ObjectID())
	})
	return out
}

func (r *Region) addLocked(e model.Entity) error {
	t := e.Type()
	if !t.Valid() {
		return fmt.Errorf("adding entity %d to region %v: invalid type %s", e.ObjectID(), r.coords, t)
	}
	if pos := e.Position(); !r.coords.Contains(pos) {
		return fmt.Errorf("adding entity %d to region %v: position %s is outside region", e.ObjectID(), r.coords, pos)
	}

	set := r.entities[t]
	if set == nil {
		set = make(map[uint32]model.Entity)
		r.entities[t] = set
	}
	set[e.ObjectID()] = e
	r.version.Add(1)
	return nil
}

func (r *Region) removeLocked(e model.Entity) bool {
	set := r.entities[e.Type()]
	if _, ok := set[e.ObjectID()]; !ok {
		return false
	}
	delete(set, e.ObjectID())
	r.version.Add(1)
	return true
}

// clear removes all entities. Used for test isolation (World.Reset).
func (r *Region) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entities)
	r.version.Add(1)
}
