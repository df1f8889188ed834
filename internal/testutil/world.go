package testutil

import (
	"testing"

	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/world"
)

// SpawnPlayer creates a player at pos and spawns it into w.
func SpawnPlayer(tb testing.TB, w *world.World, name string, pos model.Position) *model.Player {
	tb.Helper()
	p := model.NewPlayer(w.IDs().NextPlayerID(), name, pos)
	if err := w.Spawn(p); err != nil {
		tb.Fatalf("spawning player %q: %v", name, err)
	}
	return p
}

// SpawnObject creates a game object of the given type at pos and spawns it into w.
func SpawnObject(tb testing.TB, w *world.World, id int32, entityType model.EntityType, pos model.Position) *model.GameObject {
	tb.Helper()
	obj, err := model.NewGameObject(w.IDs().NextObjectID(), id, entityType, pos, model.OrientationNorth, 10)
	if err != nil {
		tb.Fatalf("creating object %d: %v", id, err)
	}
	if err := w.Spawn(obj); err != nil {
		tb.Fatalf("spawning object %d: %v", id, err)
	}
	return obj
}

// SpawnNpc creates an NPC at pos and spawns it into w.
func SpawnNpc(tb testing.TB, w *world.World, id int32, pos model.Position) *model.Npc {
	tb.Helper()
	npc := model.NewNpc(w.IDs().NextNpcID(), id, pos)
	if err := w.Spawn(npc); err != nil {
		tb.Fatalf("spawning npc %d: %v", id, err)
	}
	return npc
}

// SpawnGroundItem creates a ground item at pos and spawns it into w.
func SpawnGroundItem(tb testing.TB, w *world.World, id int32, owner string, pos model.Position) *model.GroundItem {
	tb.Helper()
	item := model.NewGroundItem(w.IDs().NextItemID(), id, 1, owner, pos)
	if err := w.Spawn(item); err != nil {
		tb.Fatalf("spawning item %d: %v", id, err)
	}
	return item
}
