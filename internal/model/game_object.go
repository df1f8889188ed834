package model

import "fmt"

// Orientation — направление, в которое повёрнут объект.
type Orientation uint8

const (
	OrientationWest Orientation = iota
	OrientationNorth
	OrientationEast
	OrientationSouth
)

// GameObject — интерактивный объект мира (дверь, дерево, банк...).
// Статические объекты загружаются из spawn store при старте,
// динамические создаются геймплеем (костры, ловушки) и могут исчезать.
type GameObject struct {
	*WorldObject

	orientation Orientation
	shape       uint8
}

// NewGameObject создаёт объект. entityType должен быть StaticObject или DynamicObject.
func NewGameObject(objectID uint32, id int32, entityType EntityType, pos Position, orientation Orientation, shape uint8) (*GameObject, error) {
	if !entityType.IsObject() {
		return nil, fmt.Errorf("game object %d: entity type %s is not an object type", id, entityType)
	}
	return &GameObject{
		WorldObject: NewWorldObject(objectID, id, entityType, pos),
		orientation: orientation,
		shape:       shape,
	}, nil
}

// Orientation возвращает направление объекта.
func (o *GameObject) Orientation() Orientation {
	return o.orientation
}

// Shape возвращает тип формы объекта (стена, декорация, интерактив...).
func (o *GameObject) Shape() uint8 {
	return o.shape
}

// IsDynamic сообщает, создан ли объект во время игры.
func (o *GameObject) IsDynamic() bool {
	return o.Type() == EntityTypeDynamicObject
}
