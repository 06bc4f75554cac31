package simsession

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// DefaultModelFileName is the placeholder model file the simulated
// reconstruction writes on success.
const DefaultModelFileName = "model.usdz"

// ReconstructionScript describes a simulated reconstruction run.
type ReconstructionScript struct {
	ProgressSteps int           // number of progress events before the terminal marker
	StepDelay     time.Duration // wait between progress events
	FailWith      error         // when non-nil, terminate with OutputFailed
	ModelFileName string        // defaults to DefaultModelFileName
}

// Reconstruction is a scripted types.ReconstructionSession. It emits the
// scripted progress fractions, then either writes a placeholder model
// file and completes, or fails, or reports cancellation.
type Reconstruction struct {
	cfg    types.ReconstructionConfig
	script ReconstructionScript

	out      chan types.ReconstructionOutput
	cancel   chan struct{}
	closed   chan struct{}
	cancOne  sync.Once
	closeOne sync.Once
}

var _ types.ReconstructionSession = (*Reconstruction)(nil)

// NewReconstruction returns a scripted reconstruction session for cfg and
// starts processing immediately.
func NewReconstruction(cfg types.ReconstructionConfig, script ReconstructionScript) *Reconstruction {
	if script.ModelFileName == "" {
		script.ModelFileName = DefaultModelFileName
	}
	r := &Reconstruction{
		cfg:    cfg,
		script: script,
		out:    make(chan types.ReconstructionOutput, 16),
		cancel: make(chan struct{}),
		closed: make(chan struct{}),
	}
	go r.run()
	return r
}

// ReconstructionFactory returns a reconstruction-session factory that runs
// the given script for every constructed session.
func ReconstructionFactory(script ReconstructionScript) types.ReconstructionSessionFactory {
	return func(cfg types.ReconstructionConfig) (types.ReconstructionSession, error) {
		return NewReconstruction(cfg, script), nil
	}
}

// FailingReconstructionFactory returns a factory whose construction always
// fails with err.
func FailingReconstructionFactory(err error) types.ReconstructionSessionFactory {
	return func(types.ReconstructionConfig) (types.ReconstructionSession, error) {
		return nil, err
	}
}

// Outputs returns the output-event stream.
func (r *Reconstruction) Outputs() <-chan types.ReconstructionOutput {
	return r.out
}

// Cancel aborts processing; the stream terminates with OutputCancelled.
func (r *Reconstruction) Cancel() {
	r.cancOne.Do(func() { close(r.cancel) })
}

// Close releases the session and stops the processing goroutine.
func (r *Reconstruction) Close() {
	r.closeOne.Do(func() { close(r.closed) })
}

func (r *Reconstruction) run() {
	defer close(r.out)

	steps := r.script.ProgressSteps
	if steps <= 0 {
		steps = 1
	}
	for i := 1; i <= steps; i++ {
		if r.script.StepDelay > 0 {
			select {
			case <-time.After(r.script.StepDelay):
			case <-r.cancel:
				r.emit(types.ReconstructionOutput{Kind: types.OutputCancelled})
				return
			case <-r.closed:
				return
			}
		} else {
			select {
			case <-r.cancel:
				r.emit(types.ReconstructionOutput{Kind: types.OutputCancelled})
				return
			case <-r.closed:
				return
			default:
			}
		}
		if !r.emit(types.ReconstructionOutput{Kind: types.OutputProgress, Progress: float64(i) / float64(steps)}) {
			return
		}
	}

	if r.script.FailWith != nil {
		r.emit(types.ReconstructionOutput{Kind: types.OutputFailed, Err: r.script.FailWith})
		return
	}

	modelPath := filepath.Join(r.cfg.OutputDir, r.script.ModelFileName)
	if err := os.WriteFile(modelPath, []byte("simulated model"), 0o644); err != nil {
		r.emit(types.ReconstructionOutput{Kind: types.OutputFailed, Err: err})
		return
	}
	log.Debug().Str("model", modelPath).Msg("simulated reconstruction wrote model")

	if !r.emit(types.ReconstructionOutput{Kind: types.OutputModelReady, ModelPath: modelPath}) {
		return
	}
	r.emit(types.ReconstructionOutput{Kind: types.OutputCompleted})
}

func (r *Reconstruction) emit(o types.ReconstructionOutput) bool {
	select {
	case r.out <- o:
		return true
	case <-r.closed:
		return false
	}
}
