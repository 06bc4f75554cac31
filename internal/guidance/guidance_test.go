package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxel-foundry/orbitcap/pkg/types"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name    string
		tag     types.FeedbackTag
		mode    types.CaptureMode
		wantMsg string
		wantOK  bool
	}{
		{
			name:    "too close in object mode",
			tag:     types.FeedbackObjectTooClose,
			mode:    types.ModeObject,
			wantMsg: "Move farther away.",
			wantOK:  true,
		},
		{
			name:   "too close suppressed in area mode",
			tag:    types.FeedbackObjectTooClose,
			mode:   types.ModeArea,
			wantOK: false,
		},
		{
			name:   "too far suppressed in area mode",
			tag:    types.FeedbackObjectTooFar,
			mode:   types.ModeArea,
			wantOK: false,
		},
		{
			name:    "moving too fast applies in both modes",
			tag:     types.FeedbackMovingTooFast,
			mode:    types.ModeArea,
			wantMsg: "Move slower.",
			wantOK:  true,
		},
		{
			name:   "not flippable never carries a message",
			tag:    types.FeedbackObjectNotFlippable,
			mode:   types.ModeObject,
			wantOK: false,
		},
		{
			name:   "object detection suppressed in area mode",
			tag:    types.FeedbackObjectNotDetected,
			mode:   types.ModeArea,
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, ok := MessageFor(tt.tag, tt.mode)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMessageListOrderAndDedup(t *testing.T) {
	l := NewMessageList()

	assert.True(t, l.Add("first"))
	assert.True(t, l.Add("second"))
	assert.False(t, l.Add("first"), "duplicate add is a no-op")

	assert.Equal(t, []string{"first", "second"}, l.Messages())
	assert.Equal(t, 2, l.Len())
}

func TestMessageListRemove(t *testing.T) {
	l := NewMessageList()
	l.Add("a")
	l.Add("b")
	l.Add("c")

	assert.True(t, l.Remove("b"))
	assert.False(t, l.Remove("b"), "removing an absent message is a no-op")
	assert.Equal(t, []string{"a", "c"}, l.Messages())
}

func TestMessageListClear(t *testing.T) {
	l := NewMessageList()
	l.Add("a")
	l.Add("b")

	l.Clear()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Messages())
}
