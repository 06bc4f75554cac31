package appmodel

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/voxel-foundry/orbitcap/internal/guidance"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// attachCapture takes ownership of a capture session and starts its two
// listening tasks. Runs on the owner loop.
func (m *Model) attachCapture(s types.CaptureSession) {
	m.capture = s
	m.captureGen++
	gen := m.captureGen

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCapture = cancel

	go m.listenCaptureStates(ctx, gen, s.StateUpdates())
	go m.listenCaptureFeedback(ctx, gen, s.FeedbackUpdates())
}

// detachCapture cancels both listening tasks and releases the handle.
// The generation bump drops any event already in flight, so no mutation
// from the detached handle's streams is applied afterwards.
func (m *Model) detachCapture() {
	if m.capture == nil {
		return
	}
	m.cancelCapture()
	m.cancelCapture = nil
	m.captureGen++
	m.shots = m.capture.ShotCount()
	m.capture.Close()
	m.capture = nil
}

// attachRecon takes ownership of a reconstruction session and starts its
// output listener.
func (m *Model) attachRecon(s types.ReconstructionSession) {
	m.recon = s
	m.reconGen++
	gen := m.reconGen

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRecon = cancel

	go m.listenReconOutputs(ctx, gen, s.Outputs())
}

// detachRecon cancels the output listener and releases the handle.
func (m *Model) detachRecon() {
	if m.recon == nil {
		return
	}
	m.cancelRecon()
	m.cancelRecon = nil
	m.reconGen++
	m.recon.Close()
	m.recon = nil
}

// postCaptureEvent routes a listener event onto the owner loop, dropping
// it when the originating handle has been detached in the meantime.
func (m *Model) postCaptureEvent(ctx context.Context, gen int, fn func()) {
	guarded := func() {
		if m.captureGen != gen {
			return
		}
		fn()
	}
	select {
	case m.ops <- guarded:
	case <-ctx.Done():
	case <-m.done:
	}
}

func (m *Model) postReconEvent(ctx context.Context, gen int, fn func()) {
	guarded := func() {
		if m.reconGen != gen {
			return
		}
		fn()
	}
	select {
	case m.ops <- guarded:
	case <-ctx.Done():
	case <-m.done:
	}
}

// listenCaptureStates consumes the capture session's state stream until
// the producer closes it or the listener is cancelled. Events are
// processed one at a time before the next receive; cancellation abandons
// an in-flight await rather than draining the stream.
func (m *Model) listenCaptureStates(ctx context.Context, gen int, ch <-chan types.CaptureUpdate) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-ch:
			if !ok {
				return
			}
			m.postCaptureEvent(ctx, gen, func() { m.handleCaptureUpdate(u) })
		}
	}
}

// listenCaptureFeedback consumes the capture session's feedback stream.
func (m *Model) listenCaptureFeedback(ctx context.Context, gen int, ch <-chan types.FeedbackSet) {
	for {
		select {
		case <-ctx.Done():
			return
		case set, ok := <-ch:
			if !ok {
				return
			}
			m.postCaptureEvent(ctx, gen, func() { m.handleFeedback(set) })
		}
	}
}

// listenReconOutputs consumes the reconstruction output stream.
func (m *Model) listenReconOutputs(ctx context.Context, gen int, ch <-chan types.ReconstructionOutput) {
	for {
		select {
		case <-ctx.Done():
			return
		case o, ok := <-ch:
			if !ok {
				return
			}
			m.postReconEvent(ctx, gen, func() { m.handleReconOutput(o) })
		}
	}
}

// handleCaptureUpdate reacts to a capture-session state event. Runs on
// the owner loop.
func (m *Model) handleCaptureUpdate(u types.CaptureUpdate) {
	switch u.Phase {
	case types.PhaseCompleted:
		if m.saveDraft {
			// The user finished the pass but wants to keep it as a
			// draft: full reset without starting reconstruction. The
			// folder tree survives as the draft.
			m.applyState(types.StateRestart, nil)
			return
		}
		m.applyState(types.StatePrepareToReconstruct, nil)
	case types.PhaseFailed:
		if errors.Is(u.Err, types.ErrCaptureCancelled) {
			// Silent recovery: a cancelled capture discards its tree and
			// restarts without surfacing an error.
			if m.folders != nil {
				m.folders.Remove()
			}
			m.applyState(types.StateRestart, nil)
			return
		}
		m.applyState(types.StateFailed, u.Err)
	default:
		log.Debug().Str("phase", string(u.Phase)).Msg("capture session phase")
	}
}

// handleFeedback diffs a new feedback set against the stored one:
// messages for expired tags leave the list, messages for new tags join
// it, surviving tags are untouched. The stored set is replaced after
// processing.
func (m *Model) handleFeedback(set types.FeedbackSet) {
	common := m.feedback.Intersect(set)

	for _, tag := range m.feedback.Diff(common).Tags() {
		if msg, ok := guidance.MessageFor(tag, m.opts.Mode); ok {
			m.messages.Remove(msg)
		}
	}
	for _, tag := range set.Diff(common).Tags() {
		if msg, ok := guidance.MessageFor(tag, m.opts.Mode); ok {
			m.messages.Add(msg)
		}
	}

	m.feedback = set.Clone()
}

// handleReconOutput reacts to a reconstruction output event. Runs on the
// owner loop.
func (m *Model) handleReconOutput(o types.ReconstructionOutput) {
	switch o.Kind {
	case types.OutputProgress:
		m.progress = o.Progress
	case types.OutputModelReady:
		m.modelPath = o.ModelPath
		m.recordSession()
	case types.OutputCompleted:
		m.applyState(types.StateViewing, nil)
	case types.OutputCancelled:
		m.applyState(types.StateRestart, nil)
	case types.OutputFailed:
		m.applyState(types.StateFailed, o.Err)
	}
}
