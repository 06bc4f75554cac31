// Package simsession provides scripted stand-ins for the external capture
// and reconstruction collaborators. A script is replayed over the same
// channel streams the real framework would expose, which lets the
// coordinator run end to end with no capture hardware or photogrammetry
// algorithm present.
package simsession

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// Step is one scripted capture event. Fields are applied in order: shots
// are taken first, then the pass-complete flag, then a feedback event,
// then a phase event. Zero-value fields emit nothing.
type Step struct {
	Delay        time.Duration      // wait before applying this step
	Shots        int                // shots to take (placeholder files in ImagesDir)
	PassComplete bool               // mark the current scan pass complete
	Feedback     types.FeedbackSet  // when non-nil, emit on the feedback stream
	Phase        types.CapturePhase // when non-empty, emit on the state stream
	Err          error              // carried by a PhaseFailed event
}

// Capture is a scripted types.CaptureSession. The script starts replaying
// on Resume and runs to completion, cancellation, or Close.
type Capture struct {
	cfg    types.CaptureConfig
	script []Step

	mu           sync.Mutex
	phase        types.CapturePhase
	shots        int
	passComplete bool
	feedback     types.FeedbackSet

	stateCh    chan types.CaptureUpdate
	feedbackCh chan types.FeedbackSet

	start    chan struct{}
	finish   chan struct{}
	cancel   chan struct{}
	closed   chan struct{}
	startOne sync.Once
	finOne   sync.Once
	cancOne  sync.Once
	closeOne sync.Once
}

var _ types.CaptureSession = (*Capture)(nil)

// NewCapture returns a scripted capture session for cfg. The replay
// goroutine starts immediately but emits nothing until Resume.
func NewCapture(cfg types.CaptureConfig, script []Step) *Capture {
	c := &Capture{
		cfg:        cfg,
		script:     script,
		phase:      types.PhaseInitializing,
		feedback:   types.NewFeedbackSet(),
		stateCh:    make(chan types.CaptureUpdate, 16),
		feedbackCh: make(chan types.FeedbackSet, 16),
		start:      make(chan struct{}),
		finish:     make(chan struct{}),
		cancel:     make(chan struct{}),
		closed:     make(chan struct{}),
	}
	go c.run()
	return c
}

// Factory returns a capture-session factory that replays the given script
// for every constructed session.
func Factory(script []Step) types.CaptureSessionFactory {
	return func(cfg types.CaptureConfig) (types.CaptureSession, error) {
		return NewCapture(cfg, script), nil
	}
}

// FailingFactory returns a capture-session factory whose construction
// always fails with err.
func FailingFactory(err error) types.CaptureSessionFactory {
	return func(types.CaptureConfig) (types.CaptureSession, error) {
		return nil, err
	}
}

// Phase returns the session's current discrete state.
func (c *Capture) Phase() types.CapturePhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// ShotCount returns the number of shots taken so far.
func (c *Capture) ShotCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shots
}

// PassComplete reports whether the scripted scan pass has completed.
func (c *Capture) PassComplete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passComplete
}

// Feedback returns a snapshot of the active feedback tags.
func (c *Capture) Feedback() types.FeedbackSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.feedback.Clone()
}

// StateUpdates returns the state-change stream.
func (c *Capture) StateUpdates() <-chan types.CaptureUpdate {
	return c.stateCh
}

// FeedbackUpdates returns the feedback-set stream.
func (c *Capture) FeedbackUpdates() <-chan types.FeedbackSet {
	return c.feedbackCh
}

// Pause is accepted and ignored; the script replays on its own schedule.
func (c *Capture) Pause() {}

// Resume starts the script replay. Subsequent calls are no-ops.
func (c *Capture) Resume() {
	c.startOne.Do(func() { close(c.start) })
}

// Finish requests an orderly end of the capture pass. The script's
// remaining steps are skipped and the session reports PhaseCompleted.
func (c *Capture) Finish() {
	c.finOne.Do(func() { close(c.finish) })
}

// Cancel aborts the pass. The session reports PhaseFailed carrying
// types.ErrCaptureCancelled.
func (c *Capture) Cancel() {
	c.cancOne.Do(func() { close(c.cancel) })
}

// Close releases the session. The replay goroutine stops and both event
// streams are closed.
func (c *Capture) Close() {
	c.closeOne.Do(func() { close(c.closed) })
}

// run replays the script. It owns both channels and closes them on exit.
func (c *Capture) run() {
	defer close(c.stateCh)
	defer close(c.feedbackCh)

	select {
	case <-c.start:
	case <-c.closed:
		return
	case <-c.cancel:
		c.emitCancelled()
		return
	}

	c.setPhase(types.PhaseCapturing)
	if !c.emitState(types.CaptureUpdate{Phase: types.PhaseCapturing}) {
		return
	}

	for _, step := range c.script {
		if step.Delay > 0 {
			select {
			case <-time.After(step.Delay):
			case <-c.closed:
				return
			case <-c.cancel:
				c.emitCancelled()
				return
			case <-c.finish:
				c.emitCompleted()
				return
			}
		} else {
			select {
			case <-c.closed:
				return
			case <-c.cancel:
				c.emitCancelled()
				return
			default:
			}
		}

		if step.Shots > 0 {
			c.takeShots(step.Shots)
		}
		if step.PassComplete {
			c.mu.Lock()
			c.passComplete = true
			c.mu.Unlock()
		}
		if step.Feedback != nil {
			c.mu.Lock()
			c.feedback = step.Feedback.Clone()
			c.mu.Unlock()
			if !c.emitFeedback(step.Feedback.Clone()) {
				return
			}
		}
		if step.Phase != "" {
			c.setPhase(step.Phase)
			if !c.emitState(types.CaptureUpdate{Phase: step.Phase, Err: step.Err}) {
				return
			}
			if step.Phase == types.PhaseCompleted || step.Phase == types.PhaseFailed {
				return
			}
		}
	}

	// Script drained without a terminal phase: wait for the consumer.
	select {
	case <-c.finish:
		c.emitCompleted()
	case <-c.cancel:
		c.emitCancelled()
	case <-c.closed:
	}
}

func (c *Capture) emitCompleted() {
	c.setPhase(types.PhaseFinishing)
	if !c.emitState(types.CaptureUpdate{Phase: types.PhaseFinishing}) {
		return
	}
	c.setPhase(types.PhaseCompleted)
	c.emitState(types.CaptureUpdate{Phase: types.PhaseCompleted})
}

func (c *Capture) emitCancelled() {
	c.setPhase(types.PhaseFailed)
	c.emitState(types.CaptureUpdate{Phase: types.PhaseFailed, Err: types.ErrCaptureCancelled})
}

func (c *Capture) setPhase(p types.CapturePhase) {
	c.mu.Lock()
	c.phase = p
	c.mu.Unlock()
}

// emitState sends on the state stream, abandoning the send when the
// session is closed. Returns false when the session is closed.
func (c *Capture) emitState(u types.CaptureUpdate) bool {
	select {
	case c.stateCh <- u:
		return true
	case <-c.closed:
		return false
	}
}

func (c *Capture) emitFeedback(s types.FeedbackSet) bool {
	select {
	case c.feedbackCh <- s:
		return true
	case <-c.closed:
		return false
	}
}

// takeShots writes placeholder shot files into the images directory and
// bumps the shot counter. Write failures are logged and skipped; the
// counter tracks attempts, matching the camera's behavior of counting
// trigger events.
func (c *Capture) takeShots(n int) {
	c.mu.Lock()
	base := c.shots
	c.shots += n
	c.mu.Unlock()

	for i := 1; i <= n; i++ {
		name := filepath.Join(c.cfg.ImagesDir, fmt.Sprintf("shot_%04d.heic", base+i))
		if err := os.WriteFile(name, []byte("simulated shot"), 0o644); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("simulated shot write failed")
		}
	}
}
