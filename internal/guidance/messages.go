// Package guidance translates capture-session feedback tags into
// human-readable guidance strings and keeps the ordered message list the
// capture overlay renders from.
package guidance

import "github.com/voxel-foundry/orbitcap/pkg/types"

// objectModeMessages maps feedback tags to guidance strings in object
// mode. Tags without an entry carry no message and are ignored.
var objectModeMessages = map[types.FeedbackTag]string{
	types.FeedbackObjectTooClose:      "Move farther away.",
	types.FeedbackObjectTooFar:        "Move closer.",
	types.FeedbackMovingTooFast:       "Move slower.",
	types.FeedbackEnvironmentTooDark:  "More light required.",
	types.FeedbackEnvironmentLowLight: "More light recommended.",
	types.FeedbackOutOfFieldOfView:    "Aim at your object.",
	types.FeedbackObjectNotDetected:   "Center the object in the frame.",
	types.FeedbackOverCapturing:       "You have enough shots of this area.",
}

// areaModeMessages maps feedback tags to guidance strings in area mode.
// Distance and object-detection feedback does not apply when capturing an
// area, so those tags are suppressed entirely.
var areaModeMessages = map[types.FeedbackTag]string{
	types.FeedbackMovingTooFast:       "Move slower.",
	types.FeedbackEnvironmentTooDark:  "More light required.",
	types.FeedbackEnvironmentLowLight: "More light recommended.",
	types.FeedbackOverCapturing:       "You have enough shots of this area.",
}

// MessageFor returns the guidance string for tag under the given capture
// mode. The second result is false when the tag carries no message in
// that mode (for example distance feedback in area mode, or the
// not-flippable tag, which only drives flippability).
func MessageFor(tag types.FeedbackTag, mode types.CaptureMode) (string, bool) {
	table := objectModeMessages
	if mode == types.ModeArea {
		table = areaModeMessages
	}
	msg, ok := table[tag]
	return msg, ok
}
