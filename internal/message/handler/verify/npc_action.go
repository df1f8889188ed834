package verify

import (
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/model"
)

// NpcActionVerifier vetoes NPC interactions with missing or distant NPCs and
// options the NPC does not offer.
type NpcActionVerifier struct {
	defs   NpcDefinitions
	policy Policy
}

// NewNpcActionVerifier creates the verifier.
func NewNpcActionVerifier(defs NpcDefinitions, policy Policy) *NpcActionVerifier {
	return &NpcActionVerifier{defs: defs, policy: policy}
}

// Handle implements handler.Handler.
func (v *NpcActionVerifier) Handle(ctx *handler.Context, player *model.Player, msg message.NpcActionMessage) handler.Result {
	e, ok := ctx.World.Entity(msg.Index)
	if !ok {
		return handler.Stop
	}
	npc, ok := e.(*model.Npc)
	if !ok {
		return handler.Stop
	}

	if !v.policy.inReach(player.Position(), npc.Position(), v.policy.NpcRadius) {
		return handler.Stop
	}

	id := int(npc.ID())
	if id < 0 || id >= v.defs.Count() {
		return handler.Stop
	}
	def, err := v.defs.Lookup(id)
	if err != nil || !def.HasOption(msg.Option) {
		return handler.Stop
	}
	return handler.Continue
}
