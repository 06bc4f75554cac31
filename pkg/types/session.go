package types

// Capture session phases as reported on the session's state stream.
const (
	PhaseInitializing CapturePhase = "initializing"
	PhaseReady        CapturePhase = "ready"
	PhaseDetecting    CapturePhase = "detecting"
	PhaseCapturing    CapturePhase = "capturing"
	PhaseFinishing    CapturePhase = "finishing"
	PhaseCompleted    CapturePhase = "completed"
	PhaseFailed       CapturePhase = "failed"
)

// CapturePhase is the capture session's own discrete state, distinct from
// the coordinator's ApplicationState.
type CapturePhase string

// CaptureUpdate is one event on a capture session's state stream. Err is
// non-nil only when Phase is PhaseFailed; ErrCaptureCancelled marks a
// user cancel rather than a genuine failure.
type CaptureUpdate struct {
	Phase CapturePhase
	Err   error
}

// CaptureConfig carries the construction parameters for a capture session.
type CaptureConfig struct {
	ImagesDir     string
	CheckpointDir string
	Mode          CaptureMode
}

// CaptureSession is the capability surface of the external capture
// collaborator. It owns camera control, tracking and feedback generation;
// the coordinator consumes it only through this interface.
//
// Both event streams are potentially infinite, single-consumer, delivered
// in emission order, and terminated by the producer closing the channel
// or by the consumer abandoning them after Close.
type CaptureSession interface {
	// Phase returns the session's current discrete state.
	Phase() CapturePhase

	// ShotCount returns the number of shots taken so far.
	ShotCount() int

	// PassComplete reports whether the user completed a full scan pass
	// at the current orbit.
	PassComplete() bool

	// Feedback returns a snapshot of the currently active feedback tags.
	Feedback() FeedbackSet

	// StateUpdates returns the session's state-change stream.
	StateUpdates() <-chan CaptureUpdate

	// FeedbackUpdates returns the session's feedback-set stream.
	FeedbackUpdates() <-chan FeedbackSet

	// Pause suspends capture; Resume continues it.
	Pause()
	Resume()

	// Finish requests an orderly end of the capture pass. The session
	// reports the outcome on its state stream.
	Finish()

	// Cancel aborts the capture pass. The session reports
	// PhaseFailed/ErrCaptureCancelled on its state stream.
	Cancel()

	// Close releases the session's resources. The event streams are
	// closed; no further events are delivered.
	Close()
}

// Reconstruction output event kinds.
const (
	OutputProgress   ReconstructionOutputKind = "progress"
	OutputModelReady ReconstructionOutputKind = "model_ready"
	OutputCompleted  ReconstructionOutputKind = "completed"
	OutputCancelled  ReconstructionOutputKind = "cancelled"
	OutputFailed     ReconstructionOutputKind = "failed"
)

// ReconstructionOutputKind discriminates reconstruction output events.
type ReconstructionOutputKind string

// ReconstructionOutput is one event on a reconstruction session's output
// stream. Progress is meaningful for OutputProgress, ModelPath for
// OutputModelReady, Err for OutputFailed. The stream terminates after an
// OutputCompleted, OutputCancelled, or OutputFailed marker.
type ReconstructionOutput struct {
	Kind      ReconstructionOutputKind
	Progress  float64
	ModelPath string
	Err       error
}

// ReconstructionConfig carries the construction parameters for a
// reconstruction session.
type ReconstructionConfig struct {
	ImagesDir     string
	CheckpointDir string
	OutputDir     string
	Mode          CaptureMode
}

// ReconstructionSession is the capability surface of the external
// photogrammetry collaborator. Construction may fail synchronously; a
// constructed session emits output events until a terminal marker.
type ReconstructionSession interface {
	// Outputs returns the session's output-event stream.
	Outputs() <-chan ReconstructionOutput

	// Cancel aborts processing. The stream terminates with an
	// OutputCancelled marker.
	Cancel()

	// Close releases the session's resources.
	Close()
}

// CaptureSessionFactory constructs a capture session, or fails
// synchronously with a construction error.
type CaptureSessionFactory func(CaptureConfig) (CaptureSession, error)

// ReconstructionSessionFactory constructs a reconstruction session, or
// fails synchronously with a construction error.
type ReconstructionSessionFactory func(ReconstructionConfig) (ReconstructionSession, error)
