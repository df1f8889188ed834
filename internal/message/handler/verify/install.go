package verify

import (
	"fmt"

	"github.com/udisondev/worldguard/internal/data"
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/world"
)

// Handler names, in the order they appear in their chains.
const (
	ObjectActionHandler = "object-action-verification"
	NpcActionHandler    = "npc-action-verification"
	TakeTileItemHandler = "take-tile-item-verification"
	WalkHandler         = "walk-verification"
)

// Install registers one chain per message type with the verification handler
// first. Gameplay effects are applied by the registry's forwarder once a
// chain accepts.
func Install(reg *handler.Registry, defs *data.Definitions, policy Policy) error {
	objects := handler.NewChain[message.ObjectActionMessage]().
		Add(ObjectActionHandler, NewObjectActionVerifier(defs.Objects, policy))
	if err := handler.Register(reg, objects); err != nil {
		return fmt.Errorf("installing object action chain: %w", err)
	}

	npcs := handler.NewChain[message.NpcActionMessage]().
		Add(NpcActionHandler, NewNpcActionVerifier(defs.Npcs, policy))
	if err := handler.Register(reg, npcs); err != nil {
		return fmt.Errorf("installing npc action chain: %w", err)
	}

	items := handler.NewChain[message.TakeTileItemMessage]().
		Add(TakeTileItemHandler, NewTakeTileItemVerifier(defs.Items, policy))
	if err := handler.Register(reg, items); err != nil {
		return fmt.Errorf("installing take tile item chain: %w", err)
	}

	walk := handler.NewChain[message.WalkMessage]().
		Add(WalkHandler, NewWalkVerifier(policy))
	if err := handler.Register(reg, walk); err != nil {
		return fmt.Errorf("installing walk chain: %w", err)
	}
	return nil
}

// DefaultRegistry builds a registry with every verification chain installed.
func DefaultRegistry(w *world.World, defs *data.Definitions, policy Policy, fwd handler.Forwarder) (*handler.Registry, error) {
	reg := handler.NewRegistry(w, fwd)
	if err := Install(reg, defs, policy); err != nil {
		return nil, err
	}
	return reg, nil
}
