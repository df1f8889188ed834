// Package verify holds the verification handlers that run first in every
// chain. They only read world state and veto illegal actions; they never mutate.
package verify

import (
	"github.com/udisondev/worldguard/internal/data"
	"github.com/udisondev/worldguard/internal/model"
)

// Default interaction limits, in tiles (Chebyshev).
const (
	DefaultObjectRadius = 15
	DefaultNpcRadius    = 15
	DefaultItemRadius   = 1
	DefaultMaxWalkSteps = 50
)

// Policy configures the verification limits.
type Policy struct {
	ObjectRadius int32
	NpcRadius    int32
	ItemRadius   int32
	MaxWalkSteps int
	// AllowCrossPlane permits interacting with targets on another height level.
	AllowCrossPlane bool
}

// DefaultPolicy returns the standard limits; cross-plane interaction is illegal.
func DefaultPolicy() Policy {
	return Policy{
		ObjectRadius: DefaultObjectRadius,
		NpcRadius:    DefaultNpcRadius,
		ItemRadius:   DefaultItemRadius,
		MaxWalkSteps: DefaultMaxWalkSteps,
	}
}

// inReach reports whether target is within radius of from under the plane policy.
func (p Policy) inReach(from, target model.Position, radius int32) bool {
	if !p.AllowCrossPlane && !from.SamePlane(target) {
		return false
	}
	return from.WithinDistance(target, radius)
}

// ObjectDefinitions is the read-only object definition lookup.
type ObjectDefinitions interface {
	Count() int
	Lookup(id int) (data.ObjectDefinition, error)
}

// NpcDefinitions is the read-only NPC definition lookup.
type NpcDefinitions interface {
	Count() int
	Lookup(id int) (data.NpcDefinition, error)
}

// ItemDefinitions is the read-only item definition lookup.
type ItemDefinitions interface {
	Count() int
	Lookup(id int) (data.ItemDefinition, error)
}
