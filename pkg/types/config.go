package types

import "errors"

// DefaultMinShots is the minimum number of shots required before an
// object-mode orbit counts as usable.
const DefaultMinShots = 10

// Config holds the coordinator's operating parameters.
type Config struct {
	DocumentsDir string      `json:"documents_dir" yaml:"documents_dir"` // Root under which capture trees are created.
	DataDir      string      `json:"data_dir" yaml:"data_dir"`           // Session catalog location.
	CaptureMode  CaptureMode `json:"capture_mode" yaml:"capture_mode"`
	MinShots     int         `json:"min_shots" yaml:"min_shots"`
}

// Config validation errors.
var (
	ErrDocumentsDirEmpty = errors.New("documents_dir must not be empty")
	ErrModeUnknown       = errors.New("unknown capture mode")
	ErrMinShotsInvalid   = errors.New("min_shots must be positive")
)

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.DocumentsDir == "" {
		return ErrDocumentsDirEmpty
	}
	if !c.CaptureMode.Valid() {
		return ErrModeUnknown
	}
	if c.MinShots <= 0 {
		return ErrMinShotsInvalid
	}
	return nil
}
