package appmodel

import (
	"github.com/rs/zerolog/log"

	"github.com/voxel-foundry/orbitcap/internal/folders"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// applyState performs a state transition and its side effects. Runs on
// the owner loop only. cause is non-nil exactly for StateFailed.
func (m *Model) applyState(to types.ApplicationState, cause error) {
	if to == m.state {
		// Same-state assignment is explicitly a no-op: no side effects,
		// and a recorded error is not cleared.
		return
	}

	from := m.state
	if from == types.StateFailed {
		m.lastErr = nil
	}
	m.state = to
	if to == types.StateFailed {
		m.lastErr = cause
	}

	log.Debug().
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("state transition")

	switch to {
	case types.StateReady:
		m.enterReady()
	case types.StateCapturing:
		m.enterCapturing()
	case types.StatePrepareToReconstruct:
		m.enterPrepareToReconstruct()
	case types.StateReconstructing:
		// Entered from enterPrepareToReconstruct once the session handle
		// is constructed; no further side effect.
	case types.StateViewing:
		m.enterViewing()
	case types.StateCompleted, types.StateRestart:
		m.recordSession()
		m.reset()
		return
	case types.StateFailed:
		log.Error().Err(cause).Msg("capture workflow failed")
	}
	m.recordSession()
}

// enterReady constructs the folder manager and the capture session. A
// synchronous construction failure routes straight to StateFailed with
// that error instead.
func (m *Model) enterReady() {
	f, err := folders.New(m.opts.DocumentsDir)
	if err != nil {
		m.applyState(types.StateFailed, err)
		return
	}
	m.folders = f

	session, err := m.opts.NewCaptureSession(types.CaptureConfig{
		ImagesDir:     f.ImagesDir(),
		CheckpointDir: f.CheckpointDir(),
		Mode:          m.opts.Mode,
	})
	if err != nil {
		m.applyState(types.StateFailed, err)
		return
	}
	m.attachCapture(session)
}

// enterCapturing resumes the attached capture session.
func (m *Model) enterCapturing() {
	if m.capture != nil {
		m.capture.Resume()
	}
}

// enterPrepareToReconstruct releases the capture handle and constructs
// the reconstruction session over the same folder tree, then advances to
// StateReconstructing. A construction failure routes to StateFailed.
func (m *Model) enterPrepareToReconstruct() {
	m.detachCapture()

	f := m.folders
	if f == nil {
		m.applyState(types.StateFailed, types.ErrInvalidData)
		return
	}

	session, err := m.opts.NewReconstructionSession(types.ReconstructionConfig{
		ImagesDir:     f.ImagesDir(),
		CheckpointDir: f.CheckpointDir(),
		OutputDir:     f.ModelsDir(),
		Mode:          m.opts.Mode,
	})
	if err != nil {
		m.applyState(types.StateFailed, err)
		return
	}
	m.attachRecon(session)
	m.applyState(types.StateReconstructing, nil)
}

// enterViewing releases the reconstruction handle and deletes the
// checkpoint directory off the owner loop. The deletion is pure cleanup:
// fire-and-forget, failures logged and swallowed.
func (m *Model) enterViewing() {
	m.detachRecon()
	if f := m.folders; f != nil {
		go f.RemoveCheckpoint()
	}
}

// terminate runs on Close. Ending the process while a capture is underway
// abandons the tree; anything else keeps its folders on disk.
func (m *Model) terminate() {
	if (m.state == types.StateReady || m.state == types.StateCapturing) && m.folders != nil {
		m.folders.Remove()
	}
	m.detachCapture()
	m.detachRecon()
	m.folders = nil
}

// reset clears all transient state after a completed or restarted
// session. The folder manager reference is dropped but the directory is
// not deleted here.
func (m *Model) reset() {
	m.detachCapture()
	m.detachRecon()
	m.feedback = types.NewFeedbackSet()
	m.messages.Clear()
	m.orbit = types.Orbit1
	m.shots = 0
	m.progress = 0
	m.modelPath = ""
	m.markedNotFlippable = false
	m.flipAnyway = false
	m.saveDraft = false
	m.folders = nil
	m.sessionID = ""
}

// recordSession persists the current session snapshot into the catalog.
// Best-effort: a nil store or a save failure never affects the state
// machine.
func (m *Model) recordSession() {
	if m.opts.Store == nil || m.folders == nil {
		return
	}
	rec := &types.SessionRecord{
		SessionID:   m.sessionID,
		RootDir:     m.folders.Root(),
		State:       m.state,
		CaptureMode: m.opts.Mode,
		ShotCount:   m.currentShots(),
		ModelPath:   m.modelPath,
	}
	id, err := m.opts.Store.Save(rec)
	if err != nil {
		log.Warn().Err(err).Msg("session catalog save failed")
		return
	}
	m.sessionID = id
}
