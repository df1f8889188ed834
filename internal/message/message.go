// Package message defines the decoded client action records that enter the
// handler pipeline. Decoding from wire bytes happens before this point.
package message

import (
	"fmt"

	"github.com/udisondev/worldguard/internal/model"
)

// Type identifies a message kind. The set is closed.
type Type uint8

const (
	TypeObjectAction Type = iota + 1
	TypeNpcAction
	TypeTakeTileItem
	TypeWalk
)

func (t Type) String() string {
	switch t {
	case TypeObjectAction:
		return "ObjectAction"
	case TypeNpcAction:
		return "NpcAction"
	case TypeTakeTileItem:
		return "TakeTileItem"
	case TypeWalk:
		return "Walk"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Message is implemented by every decoded action.
type Message interface {
	Type() Type
}

// ObjectActionMessage is sent when a player clicks a menu action on a game object.
type ObjectActionMessage struct {
	Option   int // zero-based menu action index
	ID       int // object definition id
	Position model.Position
}

func (ObjectActionMessage) Type() Type { return TypeObjectAction }

// NpcActionMessage is sent when a player clicks an interaction option on an NPC.
type NpcActionMessage struct {
	Option int    // zero-based interaction option index
	Index  uint32 // target NPC object id
}

func (NpcActionMessage) Type() Type { return TypeNpcAction }

// TakeTileItemMessage is sent when a player picks up an item from the ground.
type TakeTileItemMessage struct {
	ID       int // item definition id
	Position model.Position
}

func (TakeTileItemMessage) Type() Type { return TypeTakeTileItem }

// WalkMessage carries the waypoints of a requested path.
type WalkMessage struct {
	Steps   []model.Position
	Running bool
}

func (WalkMessage) Type() Type { return TypeWalk }
