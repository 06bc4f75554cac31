package types

import "errors"

// Folder manager errors. All are fatal to the construction that raised
// them; the pre-existing filesystem state is left untouched.
var (
	ErrNotLocalPath   = errors.New("path is not a local filesystem path")
	ErrCreationFailed = errors.New("capture directory creation failed")
	ErrAlreadyExists  = errors.New("capture directory already exists")
)

// Catalog lifecycle errors.
var (
	ErrCatalogDetached = errors.New("catalog is detached")
	ErrAlreadyAttached = errors.New("catalog is already attached")
)

// Catalog operation errors.
var (
	ErrNotFound    = errors.New("session record not found")
	ErrInvalidID   = errors.New("invalid session ID")
	ErrInvalidData = errors.New("invalid session data")
)

// Entity and model errors.
var (
	ErrInvalidState = errors.New("invalid state value")
	ErrMissingError = errors.New("failed state requires an error")
	ErrModelClosed  = errors.New("capture model is closed")
)

// ErrCaptureCancelled marks a capture-session failure caused by an
// explicit cancel request. The model recovers silently from it instead of
// surfacing a user-visible failure.
var ErrCaptureCancelled = errors.New("capture session cancelled")

// ErrReconstructionCancelled marks a reconstruction terminated by a
// cancel request rather than by an error.
var ErrReconstructionCancelled = errors.New("reconstruction cancelled")
