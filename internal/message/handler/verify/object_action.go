package verify

import (
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/world"
)

// ObjectActionVerifier vetoes object actions that the server state does not allow:
// unknown object id, target out of reach, no such object on the claimed tile,
// or a menu option the object does not have.
type ObjectActionVerifier struct {
	defs   ObjectDefinitions
	policy Policy
}

// NewObjectActionVerifier creates the verifier.
func NewObjectActionVerifier(defs ObjectDefinitions, policy Policy) *ObjectActionVerifier {
	return &ObjectActionVerifier{defs: defs, policy: policy}
}

// Handle implements handler.Handler.
func (v *ObjectActionVerifier) Handle(ctx *handler.Context, player *model.Player, msg message.ObjectActionMessage) handler.Result {
	id := msg.ID
	if id < 0 || id >= v.defs.Count() {
		return handler.Stop
	}

	pos := msg.Position
	if !v.policy.inReach(player.Position(), pos, v.policy.ObjectRadius) {
		return handler.Stop
	}

	// Lookup, not FromPosition: a claimed tile must not allocate regions.
	region, ok := ctx.World.Regions().Lookup(world.CoordinatesOf(pos))
	if !ok {
		return handler.Stop
	}
	objects := region.EntitiesAt(pos, model.EntityTypeStaticObject, model.EntityTypeDynamicObject)
	if !containsID(id, objects) {
		return handler.Stop
	}

	def, err := v.defs.Lookup(id)
	if err != nil || !def.HasAction(msg.Option) {
		return handler.Stop
	}
	return handler.Continue
}

func containsID(id int, entities []model.Entity) bool {
	for _, e := range entities {
		if int(e.ID()) == id {
			return true
		}
	}
	return false
}
