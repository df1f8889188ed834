package verify

import (
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/model"
)

// WalkVerifier vetoes empty or oversized paths, waypoints off the player's
// plane, and paths starting too far from the player.
type WalkVerifier struct {
	policy Policy
}

// NewWalkVerifier creates the verifier.
func NewWalkVerifier(policy Policy) *WalkVerifier {
	return &WalkVerifier{policy: policy}
}

// Handle implements handler.Handler.
func (v *WalkVerifier) Handle(_ *handler.Context, player *model.Player, msg message.WalkMessage) handler.Result {
	if len(msg.Steps) == 0 || len(msg.Steps) > v.policy.MaxWalkSteps {
		return handler.Stop
	}

	pos := player.Position()
	for _, step := range msg.Steps {
		// Walking never changes plane, regardless of AllowCrossPlane.
		if !step.SamePlane(pos) {
			return handler.Stop
		}
	}

	if !pos.WithinDistance(msg.Steps[0], v.policy.ObjectRadius) {
		return handler.Stop
	}
	return handler.Continue
}
