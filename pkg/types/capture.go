package types

// Capture modes.
const (
	ModeObject CaptureMode = "object"
	ModeArea   CaptureMode = "area"
)

// CaptureMode selects between guided object capture (three orbits around
// a single object) and freeform area capture (no orbit concept).
type CaptureMode string

// validCaptureModes is the set of recognized capture modes.
var validCaptureModes = map[CaptureMode]bool{
	ModeObject: true,
	ModeArea:   true,
}

// Valid reports whether m is a recognized capture mode.
func (m CaptureMode) Valid() bool {
	return validCaptureModes[m]
}

// Orbit indexes for guided object capture. Object mode walks the user
// through three successive physical passes around the object.
const (
	Orbit1 OrbitIndex = 1
	Orbit2 OrbitIndex = 2
	Orbit3 OrbitIndex = 3
)

// OrbitIndex identifies one of the three capture passes.
type OrbitIndex int

// Next returns the orbit after o. The third orbit is terminal and returns
// itself.
func (o OrbitIndex) Next() OrbitIndex {
	if o >= Orbit3 {
		return Orbit3
	}
	return o + 1
}

// Onboarding states derived from the current capture progress. Shown to
// the user between orbits to decide whether to continue, flip, or finish.
const (
	OnboardingTooFewImages           OnboardingState = "too_few_images"
	OnboardingFirstSegmentComplete   OnboardingState = "first_segment_complete"
	OnboardingFirstSegmentNeedsWork  OnboardingState = "first_segment_needs_work"
	OnboardingSecondSegmentComplete  OnboardingState = "second_segment_complete"
	OnboardingSecondSegmentNeedsWork OnboardingState = "second_segment_needs_work"
	OnboardingThirdSegmentComplete   OnboardingState = "third_segment_complete"
	OnboardingThirdSegmentNeedsWork  OnboardingState = "third_segment_needs_work"
	OnboardingCaptureInAreaMode      OnboardingState = "capture_in_area_mode"
)

// OnboardingState summarizes the capture progress for the review screen.
type OnboardingState string

// OnboardingStateFor derives the onboarding state from the current capture
// progress. Pure function of its inputs, no side effects.
//
// Area mode has no orbit concept and always maps to
// OnboardingCaptureInAreaMode. In object mode a shot count below the
// minimum wins over any orbit progress; otherwise each orbit maps to its
// complete/needs-work pair depending on whether the user finished a full
// scan pass at that orbit.
func OnboardingStateFor(mode CaptureMode, orbit OrbitIndex, minShotsMet, passComplete bool) OnboardingState {
	if mode == ModeArea {
		return OnboardingCaptureInAreaMode
	}
	if !minShotsMet {
		return OnboardingTooFewImages
	}
	switch orbit {
	case Orbit2:
		if passComplete {
			return OnboardingSecondSegmentComplete
		}
		return OnboardingSecondSegmentNeedsWork
	case Orbit3:
		if passComplete {
			return OnboardingThirdSegmentComplete
		}
		return OnboardingThirdSegmentNeedsWork
	default:
		if passComplete {
			return OnboardingFirstSegmentComplete
		}
		return OnboardingFirstSegmentNeedsWork
	}
}
