package types

import "time"

// SessionRecord is one capture session as persisted in the session
// catalog. It is the gallery's view of a capture: where the folder tree
// lives, how far the session got, and where the reconstructed model ended
// up (empty until reconstruction finishes).
type SessionRecord struct {
	SessionID   string           // UUID v7, generated on creation.
	RootDir     string           // Absolute path of the capture folder tree.
	State       ApplicationState // Last recorded application state.
	CaptureMode CaptureMode      // Mode the session was captured in.
	ShotCount   int              // Shots taken when last recorded.
	ModelPath   string           // Reconstructed model file, if any.
	CreatedAt   time.Time        // Timestamp of creation.
	UpdatedAt   time.Time        // Timestamp of last modification.
}

// SetState sets the record state to the given value.
// Returns ErrInvalidState if the state is not recognized.
// Idempotent: setting the current state succeeds without error.
func (r *SessionRecord) SetState(state ApplicationState) error {
	if !state.Valid() {
		return ErrInvalidState
	}
	r.State = state
	r.UpdatedAt = time.Now()
	return nil
}
