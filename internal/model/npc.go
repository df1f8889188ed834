package model

// Npc — неигровой персонаж. ID() — ID NPC-definition.
type Npc struct {
	*WorldObject

	spawnPosition Position
}

// NewNpc создаёт NPC; позиция спавна запоминается как точка возврата.
func NewNpc(objectID uint32, id int32, pos Position) *Npc {
	return &Npc{
		WorldObject:   NewWorldObject(objectID, id, EntityTypeNpc, pos),
		spawnPosition: pos,
	}
}

// SpawnPosition возвращает позицию, в которой NPC был создан.
func (n *Npc) SpawnPosition() Position {
	return n.spawnPosition
}
