package model

import "sync"

// Entity — любая сущность, размещённая в мире: игрок, NPC, объект, предмет на земле.
type Entity interface {
	// ObjectID — уникальный ID экземпляра в мире.
	ObjectID() uint32
	// ID — ID определения (definition), общий для всех экземпляров одного вида.
	ID() int32
	Type() EntityType
	Position() Position
}

// WorldObject — базовая часть всех сущностей.
// ObjectID, ID и тип неизменны после создания; позиция меняется только через world.World.
type WorldObject struct {
	objectID   uint32
	id         int32
	entityType EntityType

	mu       sync.RWMutex
	position Position
}

// NewWorldObject создаёт базовый объект. objectID выдаёт world.ObjectIDGenerator.
func NewWorldObject(objectID uint32, id int32, entityType EntityType, pos Position) *WorldObject {
	return &WorldObject{
		objectID:   objectID,
		id:         id,
		entityType: entityType,
		position:   pos,
	}
}

// ObjectID возвращает уникальный ID объекта (immutable после создания).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// ID возвращает ID определения.
func (w *WorldObject) ID() int32 {
	return w.id
}

// Type возвращает тег сущности.
func (w *WorldObject) Type() EntityType {
	return w.entityType
}

// Position возвращает копию координат объекта (value type).
func (w *WorldObject) Position() Position {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.position
}

// SetPosition устанавливает новые координаты объекта.
// Владение регионом при этом НЕ меняется — вызывать только из world.World.Move,
// который переносит объект между регионами под их блокировками.
func (w *WorldObject) SetPosition(pos Position) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.position = pos
}
