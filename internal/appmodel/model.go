// Package appmodel implements the capture coordinator's application state
// machine. A single Model owns the capture folder tree, at most one
// capture-session handle and one reconstruction-session handle at a time,
// and the transient capture state (feedback set, guidance messages, orbit
// progress, flip flags).
//
// All state lives on one owner goroutine. Public methods post closures
// into the owner loop and wait; the background stream listeners post
// events the same way. There is no lock because there is no concurrent
// writer.
package appmodel

import (
	"sync"

	"github.com/voxel-foundry/orbitcap/internal/folders"
	"github.com/voxel-foundry/orbitcap/internal/guidance"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// SessionStore persists session records. Implemented by the catalog;
// optional on the model (a nil store skips persistence).
type SessionStore interface {
	// Save creates or updates a record. When SessionID is empty a new ID
	// is generated; the ID actually used is returned.
	Save(rec *types.SessionRecord) (string, error)
}

// Options configures a Model.
type Options struct {
	DocumentsDir string
	Mode         types.CaptureMode
	MinShots     int // defaults to types.DefaultMinShots

	NewCaptureSession        types.CaptureSessionFactory
	NewReconstructionSession types.ReconstructionSessionFactory

	Store SessionStore // optional session catalog
}

// Model is the application state machine. Create once at startup with
// New, drive it by assigning states, and Close it on termination.
type Model struct {
	opts Options

	ops  chan func()
	quit chan struct{}
	done chan struct{}

	closeOnce sync.Once

	// Everything below is owned by the loop goroutine.
	state   types.ApplicationState
	lastErr error

	folders *folders.CaptureFolders
	capture types.CaptureSession
	recon   types.ReconstructionSession

	captureGen    int // bumped on every capture attach/detach; stale events are dropped
	reconGen      int
	cancelCapture func() // cancels the capture listeners' context
	cancelRecon   func()

	feedback  types.FeedbackSet
	messages  *guidance.MessageList
	orbit     types.OrbitIndex
	shots     int // last known shot count, kept across capture detach
	progress  float64
	modelPath string

	markedNotFlippable bool // user indicated the object cannot be flipped
	flipAnyway         bool // user chose to flip regardless
	saveDraft          bool

	sessionID string // catalog record ID, empty until first Save
}

// New constructs the model and starts its owner loop. The model begins in
// StateNotSet; nothing happens until the first state assignment.
func New(opts Options) (*Model, error) {
	if opts.DocumentsDir == "" {
		return nil, types.ErrDocumentsDirEmpty
	}
	if !opts.Mode.Valid() {
		return nil, types.ErrModeUnknown
	}
	if opts.MinShots <= 0 {
		opts.MinShots = types.DefaultMinShots
	}
	if opts.NewCaptureSession == nil || opts.NewReconstructionSession == nil {
		return nil, types.ErrInvalidData
	}

	m := &Model{
		opts:     opts,
		ops:      make(chan func(), 32),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		state:    types.StateNotSet,
		feedback: types.NewFeedbackSet(),
		messages: guidance.NewMessageList(),
		orbit:    types.Orbit1,
	}
	go m.loop()
	return m, nil
}

// loop is the single owner of all model state.
func (m *Model) loop() {
	defer close(m.done)
	for {
		select {
		case op := <-m.ops:
			op()
		case <-m.quit:
			return
		}
	}
}

// post runs fn on the owner loop and waits for it. Returns false when the
// model is closed.
func (m *Model) post(fn func()) bool {
	reply := make(chan struct{})
	select {
	case m.ops <- func() { fn(); close(reply) }:
	case <-m.done:
		return false
	}
	select {
	case <-reply:
		return true
	case <-m.done:
		return false
	}
}

// Close shuts the model down. Termination while the model is in ready or
// capturing deletes the capture folder tree before Close returns; all
// session handles are released. Idempotent.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		m.post(func() { m.terminate() })
		close(m.quit)
		<-m.done
	})
}

// SetState assigns a new application state, triggering that state's
// transition side effects. Assigning the current state is a no-op.
// StateFailed cannot be assigned directly; use Fail, which carries the
// required error.
func (m *Model) SetState(to types.ApplicationState) error {
	if !to.Valid() {
		return types.ErrInvalidState
	}
	if to == types.StateFailed {
		return types.ErrMissingError
	}
	if !m.post(func() { m.applyState(to, nil) }) {
		return types.ErrModelClosed
	}
	return nil
}

// Fail transitions the model to StateFailed carrying err.
func (m *Model) Fail(err error) error {
	if err == nil {
		return types.ErrMissingError
	}
	if !m.post(func() { m.applyState(types.StateFailed, err) }) {
		return types.ErrModelClosed
	}
	return nil
}

// State returns the current application state.
func (m *Model) State() types.ApplicationState {
	s := types.StateNotSet
	m.post(func() { s = m.state })
	return s
}

// LastError returns the error recorded by the last transition into
// StateFailed, or nil outside of it.
func (m *Model) LastError() error {
	var err error
	m.post(func() { err = m.lastErr })
	return err
}

// Messages returns the guidance messages in insertion order.
func (m *Model) Messages() []string {
	var out []string
	m.post(func() { out = m.messages.Messages() })
	return out
}

// Feedback returns a snapshot of the stored feedback set.
func (m *Model) Feedback() types.FeedbackSet {
	out := types.NewFeedbackSet()
	m.post(func() { out = m.feedback.Clone() })
	return out
}

// Orbit returns the current capture orbit.
func (m *Model) Orbit() types.OrbitIndex {
	o := types.Orbit1
	m.post(func() { o = m.orbit })
	return o
}

// AdvanceOrbit moves to the next orbit. The third orbit is terminal.
func (m *Model) AdvanceOrbit() {
	m.post(func() { m.orbit = m.orbit.Next() })
}

// ShotCount returns the latest known shot count.
func (m *Model) ShotCount() int {
	var n int
	m.post(func() { n = m.currentShots() })
	return n
}

// ReconstructionProgress returns the last reported progress fraction.
func (m *Model) ReconstructionProgress() float64 {
	var p float64
	m.post(func() { p = m.progress })
	return p
}

// ModelPath returns the reconstructed model file path, or "" before
// reconstruction produces one.
func (m *Model) ModelPath() string {
	var p string
	m.post(func() { p = m.modelPath })
	return p
}

// CaptureRoot returns the current capture tree root, or "" when no folder
// manager is attached.
func (m *Model) CaptureRoot() string {
	var p string
	m.post(func() {
		if m.folders != nil {
			p = m.folders.Root()
		}
	})
	return p
}

// SetSaveDraft sets the save-draft flag. With the flag set, a completed
// capture pass resets the machine without starting reconstruction,
// keeping the folder tree as the draft.
func (m *Model) SetSaveDraft(v bool) {
	m.post(func() { m.saveDraft = v })
}

// SaveDraft reports the save-draft flag.
func (m *Model) SaveDraft() bool {
	var v bool
	m.post(func() { v = m.saveDraft })
	return v
}

// SetObjectCannotBeFlipped records the user's explicit indication that
// the object must not be flipped.
func (m *Model) SetObjectCannotBeFlipped(v bool) {
	m.post(func() { m.markedNotFlippable = v })
}

// SetFlipObjectAnyway records the user's explicit choice to flip the
// object regardless of the session's advice.
func (m *Model) SetFlipObjectAnyway(v bool) {
	m.post(func() { m.flipAnyway = v })
}

// ObjectFlippable determines whether the object should be flipped for the
// next orbit. The user's explicit flags win in order; with neither set,
// the live session's not-flippable feedback decides; with no session
// attached the object defaults to flippable.
func (m *Model) ObjectFlippable() bool {
	v := true
	m.post(func() {
		switch {
		case m.markedNotFlippable:
			v = false
		case m.flipAnyway:
			v = true
		case m.capture == nil:
			v = true
		default:
			v = !m.capture.Feedback().Contains(types.FeedbackObjectNotFlippable)
		}
	})
	return v
}

// OnboardingState derives the review-screen state from the current
// capture progress.
func (m *Model) OnboardingState() types.OnboardingState {
	s := types.OnboardingTooFewImages
	m.post(func() {
		minMet := m.currentShots() >= m.opts.MinShots
		pass := m.capture != nil && m.capture.PassComplete()
		s = types.OnboardingStateFor(m.opts.Mode, m.orbit, minMet, pass)
	})
	return s
}

// FinishCapture asks the attached capture session to end the pass. No-op
// without an attached session.
func (m *Model) FinishCapture() {
	m.post(func() {
		if m.capture != nil {
			m.capture.Finish()
		}
	})
}

// CancelCapture aborts the attached capture session. The session reports
// the cancellation on its state stream, which routes the model to
// StateRestart.
func (m *Model) CancelCapture() {
	m.post(func() {
		if m.capture != nil {
			m.capture.Cancel()
		}
	})
}

// CancelReconstruction aborts the attached reconstruction session.
func (m *Model) CancelReconstruction() {
	m.post(func() {
		if m.recon != nil {
			m.recon.Cancel()
		}
	})
}

// currentShots returns the live session's count when attached, otherwise
// the count retained from the last detach.
func (m *Model) currentShots() int {
	if m.capture != nil {
		return m.capture.ShotCount()
	}
	return m.shots
}
