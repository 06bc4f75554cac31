package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureModeValid(t *testing.T) {
	assert.True(t, ModeObject.Valid())
	assert.True(t, ModeArea.Valid())
	assert.False(t, CaptureMode("panorama").Valid())
	assert.False(t, CaptureMode("").Valid())
}

func TestOrbitIndexNext(t *testing.T) {
	assert.Equal(t, Orbit2, Orbit1.Next())
	assert.Equal(t, Orbit3, Orbit2.Next())
	assert.Equal(t, Orbit3, Orbit3.Next())
}

func TestOnboardingStateFor(t *testing.T) {
	tests := []struct {
		name         string
		mode         CaptureMode
		orbit        OrbitIndex
		minShotsMet  bool
		passComplete bool
		want         OnboardingState
	}{
		{
			name: "area mode ignores orbit progress",
			mode: ModeArea, orbit: Orbit2, minShotsMet: true, passComplete: true,
			want: OnboardingCaptureInAreaMode,
		},
		{
			name: "too few shots wins over pass completion",
			mode: ModeObject, orbit: Orbit3, minShotsMet: false, passComplete: true,
			want: OnboardingTooFewImages,
		},
		{
			name: "first orbit complete",
			mode: ModeObject, orbit: Orbit1, minShotsMet: true, passComplete: true,
			want: OnboardingFirstSegmentComplete,
		},
		{
			name: "first orbit needs work",
			mode: ModeObject, orbit: Orbit1, minShotsMet: true, passComplete: false,
			want: OnboardingFirstSegmentNeedsWork,
		},
		{
			name: "second orbit complete",
			mode: ModeObject, orbit: Orbit2, minShotsMet: true, passComplete: true,
			want: OnboardingSecondSegmentComplete,
		},
		{
			name: "second orbit needs work",
			mode: ModeObject, orbit: Orbit2, minShotsMet: true, passComplete: false,
			want: OnboardingSecondSegmentNeedsWork,
		},
		{
			name: "third orbit complete",
			mode: ModeObject, orbit: Orbit3, minShotsMet: true, passComplete: true,
			want: OnboardingThirdSegmentComplete,
		},
		{
			name: "third orbit needs work",
			mode: ModeObject, orbit: Orbit3, minShotsMet: true, passComplete: false,
			want: OnboardingThirdSegmentNeedsWork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OnboardingStateFor(tt.mode, tt.orbit, tt.minShotsMet, tt.passComplete)
			assert.Equal(t, tt.want, got)
		})
	}
}
