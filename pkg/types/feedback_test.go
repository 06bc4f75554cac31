package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackSetIntersect(t *testing.T) {
	tests := []struct {
		name string
		a    FeedbackSet
		b    FeedbackSet
		want FeedbackSet
	}{
		{
			name: "overlapping sets",
			a:    NewFeedbackSet(FeedbackObjectTooClose, FeedbackMovingTooFast),
			b:    NewFeedbackSet(FeedbackMovingTooFast, FeedbackEnvironmentTooDark),
			want: NewFeedbackSet(FeedbackMovingTooFast),
		},
		{
			name: "disjoint sets",
			a:    NewFeedbackSet(FeedbackObjectTooClose),
			b:    NewFeedbackSet(FeedbackObjectTooFar),
			want: NewFeedbackSet(),
		},
		{
			name: "empty left side",
			a:    NewFeedbackSet(),
			b:    NewFeedbackSet(FeedbackObjectTooFar),
			want: NewFeedbackSet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.a.Intersect(tt.b).Equal(tt.want))
		})
	}
}

func TestFeedbackSetDiff(t *testing.T) {
	tests := []struct {
		name string
		a    FeedbackSet
		b    FeedbackSet
		want FeedbackSet
	}{
		{
			name: "removes shared tags",
			a:    NewFeedbackSet(FeedbackObjectTooClose, FeedbackMovingTooFast),
			b:    NewFeedbackSet(FeedbackMovingTooFast),
			want: NewFeedbackSet(FeedbackObjectTooClose),
		},
		{
			name: "disjoint keeps all",
			a:    NewFeedbackSet(FeedbackObjectTooClose),
			b:    NewFeedbackSet(FeedbackObjectTooFar),
			want: NewFeedbackSet(FeedbackObjectTooClose),
		},
		{
			name: "diff against self is empty",
			a:    NewFeedbackSet(FeedbackOverCapturing),
			b:    NewFeedbackSet(FeedbackOverCapturing),
			want: NewFeedbackSet(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.a.Diff(tt.b).Equal(tt.want))
		})
	}
}

func TestFeedbackSetCloneIsIndependent(t *testing.T) {
	orig := NewFeedbackSet(FeedbackObjectTooClose)
	clone := orig.Clone()
	clone[FeedbackObjectTooFar] = struct{}{}

	assert.True(t, clone.Contains(FeedbackObjectTooFar))
	assert.False(t, orig.Contains(FeedbackObjectTooFar))
}

func TestFeedbackSetTagsSorted(t *testing.T) {
	s := NewFeedbackSet(FeedbackOverCapturing, FeedbackEnvironmentTooDark, FeedbackMovingTooFast)

	assert.Equal(t, []FeedbackTag{
		FeedbackEnvironmentTooDark,
		FeedbackMovingTooFast,
		FeedbackOverCapturing,
	}, s.Tags())
}

func TestFeedbackSetEqual(t *testing.T) {
	a := NewFeedbackSet(FeedbackObjectTooClose, FeedbackMovingTooFast)

	assert.True(t, a.Equal(NewFeedbackSet(FeedbackMovingTooFast, FeedbackObjectTooClose)))
	assert.False(t, a.Equal(NewFeedbackSet(FeedbackObjectTooClose)))
	assert.False(t, a.Equal(NewFeedbackSet(FeedbackObjectTooClose, FeedbackObjectTooFar)))
}
