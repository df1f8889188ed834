package model

import "fmt"

// EntityType — закрытое перечисление видов объектов, которые можно разместить в мире.
// Используется и как тег сущности, и как фильтр запросов к Region.
type EntityType uint8

const (
	EntityTypePlayer EntityType = iota
	EntityTypeNpc
	EntityTypeStaticObject
	EntityTypeDynamicObject
	EntityTypeGroundItem

	entityTypeCount
)

// EntityTypes возвращает все типы в порядке объявления.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityTypePlayer,
		EntityTypeNpc,
		EntityTypeStaticObject,
		EntityTypeDynamicObject,
		EntityTypeGroundItem,
	}
}

// Valid reports whether t is one of the declared types.
func (t EntityType) Valid() bool {
	return t < entityTypeCount
}

// IsObject reports whether t is a static or dynamic game object.
func (t EntityType) IsObject() bool {
	return t == EntityTypeStaticObject || t == EntityTypeDynamicObject
}

func (t EntityType) String() string {
	switch t {
	case EntityTypePlayer:
		return "PLAYER"
	case EntityTypeNpc:
		return "NPC"
	case EntityTypeStaticObject:
		return "STATIC_OBJECT"
	case EntityTypeDynamicObject:
		return "DYNAMIC_OBJECT"
	case EntityTypeGroundItem:
		return "GROUND_ITEM"
	default:
		return fmt.Sprintf("EntityType(%d)", uint8(t))
	}
}
