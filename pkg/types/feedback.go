package types

import "sort"

// Feedback tags. Each tag is a discrete guidance condition emitted by the
// capture session while the user scans the object.
const (
	FeedbackObjectTooClose      FeedbackTag = "object_too_close"
	FeedbackObjectTooFar        FeedbackTag = "object_too_far"
	FeedbackMovingTooFast       FeedbackTag = "moving_too_fast"
	FeedbackEnvironmentTooDark  FeedbackTag = "environment_too_dark"
	FeedbackEnvironmentLowLight FeedbackTag = "environment_low_light"
	FeedbackOutOfFieldOfView    FeedbackTag = "out_of_field_of_view"
	FeedbackObjectNotDetected   FeedbackTag = "object_not_detected"
	FeedbackObjectNotFlippable  FeedbackTag = "object_not_flippable"
	FeedbackOverCapturing       FeedbackTag = "over_capturing"
)

// FeedbackTag identifies a single guidance condition.
type FeedbackTag string

// FeedbackSet is an unordered set of feedback tags. The zero value is not
// usable; construct with NewFeedbackSet.
type FeedbackSet map[FeedbackTag]struct{}

// NewFeedbackSet returns a set containing the given tags.
func NewFeedbackSet(tags ...FeedbackTag) FeedbackSet {
	s := make(FeedbackSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether tag is in the set.
func (s FeedbackSet) Contains(tag FeedbackTag) bool {
	_, ok := s[tag]
	return ok
}

// Intersect returns the tags present in both s and other.
func (s FeedbackSet) Intersect(other FeedbackSet) FeedbackSet {
	out := make(FeedbackSet)
	for t := range s {
		if other.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Diff returns the tags present in s but not in other.
func (s FeedbackSet) Diff(other FeedbackSet) FeedbackSet {
	out := make(FeedbackSet)
	for t := range s {
		if !other.Contains(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Clone returns an independent copy of the set.
func (s FeedbackSet) Clone() FeedbackSet {
	out := make(FeedbackSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold exactly the same tags.
func (s FeedbackSet) Equal(other FeedbackSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// Tags returns the set members in sorted order. Sorting is for stable
// output only; no ordering invariant holds on the set itself.
func (s FeedbackSet) Tags() []FeedbackTag {
	out := make([]FeedbackTag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
