package model

// PrivilegeLevel — уровень прав игрока.
type PrivilegeLevel uint8

const (
	PrivilegeStandard PrivilegeLevel = iota
	PrivilegeModerator
	PrivilegeAdministrator
)

// Player — подключённый игрок.
// У игроков нет definition, поэтому ID() всегда возвращает 0.
type Player struct {
	*WorldObject

	name      string
	privilege PrivilegeLevel
}

// NewPlayer создаёт игрока в указанной позиции.
func NewPlayer(objectID uint32, name string, pos Position) *Player {
	return &Player{
		WorldObject: NewWorldObject(objectID, 0, EntityTypePlayer, pos),
		name:        name,
	}
}

// Name возвращает имя игрока.
func (p *Player) Name() string {
	return p.name
}

// Privilege возвращает уровень прав.
func (p *Player) Privilege() PrivilegeLevel {
	return p.privilege
}

// SetPrivilege задаёт уровень прав (до входа в мир).
func (p *Player) SetPrivilege(level PrivilegeLevel) {
	p.privilege = level
}
