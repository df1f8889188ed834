package model

// GroundItem — предмет, лежащий на тайле.
// owner пустой, если предмет виден всем.
type GroundItem struct {
	*WorldObject

	amount int32
	owner  string
}

// NewGroundItem создаёт предмет на земле.
func NewGroundItem(objectID uint32, id int32, amount int32, owner string, pos Position) *GroundItem {
	return &GroundItem{
		WorldObject: NewWorldObject(objectID, id, EntityTypeGroundItem, pos),
		amount:      amount,
		owner:       owner,
	}
}

// Amount возвращает количество в стаке.
func (g *GroundItem) Amount() int32 {
	return g.amount
}

// Owner возвращает имя владельца (пусто — виден всем).
func (g *GroundItem) Owner() string {
	return g.owner
}

// VisibleTo сообщает, может ли игрок с таким именем видеть и поднять предмет.
func (g *GroundItem) VisibleTo(name string) bool {
	return g.owner == "" || g.owner == name
}
