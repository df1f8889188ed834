package testutil

import (
	"testing"

	"github.com/udisondev/worldguard/internal/data"
)

// ObjectTable builds an object table from (id, menu actions) pairs.
func ObjectTable(tb testing.TB, actions map[int32][]string) *data.Table[data.ObjectDefinition] {
	tb.Helper()
	defs := make([]data.ObjectDefinition, 0, len(actions))
	for id, a := range actions {
		defs = append(defs, data.ObjectDefinition{ID: id, Name: "TestObject", MenuActions: a, Width: 1, Length: 1})
	}
	t, err := data.NewTable(defs)
	if err != nil {
		tb.Fatalf("building object table: %v", err)
	}
	return t
}

// NpcTable builds an npc table from (id, options) pairs.
func NpcTable(tb testing.TB, options map[int32][]string) *data.Table[data.NpcDefinition] {
	tb.Helper()
	defs := make([]data.NpcDefinition, 0, len(options))
	for id, o := range options {
		defs = append(defs, data.NpcDefinition{ID: id, Name: "TestNpc", InteractionOptions: o, Size: 1})
	}
	t, err := data.NewTable(defs)
	if err != nil {
		tb.Fatalf("building npc table: %v", err)
	}
	return t
}

// ItemTable builds an item table with the given ids, each takeable.
func ItemTable(tb testing.TB, ids ...int32) *data.Table[data.ItemDefinition] {
	tb.Helper()
	defs := make([]data.ItemDefinition, 0, len(ids))
	for _, id := range ids {
		defs = append(defs, data.ItemDefinition{ID: id, Name: "TestItem", GroundActions: []string{"", "", "Take"}})
	}
	t, err := data.NewTable(defs)
	if err != nil {
		tb.Fatalf("building item table: %v", err)
	}
	return t
}

// Definitions bundles an object table with empty npc and item tables.
func Definitions(tb testing.TB, objects map[int32][]string) *data.Definitions {
	tb.Helper()
	return &data.Definitions{
		Objects: ObjectTable(tb, objects),
		Npcs:    NpcTable(tb, nil),
		Items:   ItemTable(tb),
	}
}
