package data

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Table.Lookup for ids outside [0, Count()) or holes.
var ErrNotFound = errors.New("definition not found")

// Definition is a static, id-indexed record.
type Definition interface {
	DefinitionID() int32
}

// MaxDefinitionID bounds ids accepted by NewTable. Tables are dense, so the
// largest id decides the allocation.
const MaxDefinitionID = 1<<20 - 1

// Table is a read-only id-indexed definition registry.
// Ids are dense: Count() is max id + 1, missing ids are holes.
// Built once at startup; safe for concurrent reads afterwards.
type Table[D Definition] struct {
	entries []D
	present []bool
	loaded  int
}

// NewTable builds a table from defs. Negative, duplicate or oversized ids
// are rejected.
func NewTable[D Definition](defs []D) (*Table[D], error) {
	size := 0
	for _, d := range defs {
		id := d.DefinitionID()
		if id < 0 {
			return nil, fmt.Errorf("definition id %d: negative id", id)
		}
		if id > MaxDefinitionID {
			return nil, fmt.Errorf("definition id %d: exceeds max %d", id, MaxDefinitionID)
		}
		size = max(size, int(id)+1)
	}

	t := &Table[D]{
		entries: make([]D, size),
		present: make([]bool, size),
	}
	for _, d := range defs {
		id := d.DefinitionID()
		if t.present[id] {
			return nil, fmt.Errorf("definition id %d: duplicate", id)
		}
		t.entries[id] = d
		t.present[id] = true
		t.loaded++
	}
	return t, nil
}

// Count returns the exclusive upper bound of valid ids.
func (t *Table[D]) Count() int {
	return len(t.entries)
}

// Loaded returns the number of defined (non-hole) entries.
func (t *Table[D]) Loaded() int {
	return t.loaded
}

// Lookup returns the definition for id.
func (t *Table[D]) Lookup(id int) (D, error) {
	var zero D
	if id < 0 || id >= len(t.entries) || !t.present[id] {
		return zero, fmt.Errorf("definition %d: %w", id, ErrNotFound)
	}
	return t.entries[id], nil
}
