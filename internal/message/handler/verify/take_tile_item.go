package verify

import (
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/world"
)

// TakeTileItemVerifier vetoes pickups of items that are not on the claimed
// tile, not visible to the player, or out of reach.
type TakeTileItemVerifier struct {
	defs   ItemDefinitions
	policy Policy
}

// NewTakeTileItemVerifier creates the verifier.
func NewTakeTileItemVerifier(defs ItemDefinitions, policy Policy) *TakeTileItemVerifier {
	return &TakeTileItemVerifier{defs: defs, policy: policy}
}

// Handle implements handler.Handler.
func (v *TakeTileItemVerifier) Handle(ctx *handler.Context, player *model.Player, msg message.TakeTileItemMessage) handler.Result {
	id := msg.ID
	if id < 0 || id >= v.defs.Count() {
		return handler.Stop
	}

	pos := msg.Position
	if !v.policy.inReach(player.Position(), pos, v.policy.ItemRadius) {
		return handler.Stop
	}

	region, ok := ctx.World.Regions().Lookup(world.CoordinatesOf(pos))
	if !ok {
		return handler.Stop
	}

	found := false
	region.ForEach(func(e model.Entity) bool {
		item, ok := e.(*model.GroundItem)
		if ok && int(item.ID()) == id && item.Position() == pos && item.VisibleTo(player.Name()) {
			found = true
			return false
		}
		return true
	}, model.EntityTypeGroundItem)
	if !found {
		return handler.Stop
	}

	if _, err := v.defs.Lookup(id); err != nil {
		return handler.Stop
	}
	return handler.Continue
}
