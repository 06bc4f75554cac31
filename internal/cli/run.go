package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxel-foundry/orbitcap/internal/appmodel"
	"github.com/voxel-foundry/orbitcap/internal/catalog"
	"github.com/voxel-foundry/orbitcap/internal/simsession"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// runTimeout bounds a single simulated capture run. The scripted
// sessions finish in well under a second; the margin covers slow CI.
const runTimeout = 30 * time.Second

type runFlags struct {
	mode          string
	shots         int
	minShots      int
	saveDraft     bool
	failCapture   bool
	cancelCapture bool
}

// runSummary is the machine-readable result of a run.
type runSummary struct {
	SessionID string `json:"session_id,omitempty"`
	State     string `json:"state"`
	ShotCount int    `json:"shot_count"`
	Root      string `json:"root,omitempty"`
	ModelPath string `json:"model_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newRunCmd() *cobra.Command {
	var rf runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulated guided capture session",
		Long: "Run drives a full capture workflow with a simulated camera and\n" +
			"reconstruction engine: a new capture folder is created, shots are\n" +
			"taken, the model is reconstructed, and the session is recorded in\n" +
			"the catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, rf)
		},
	}

	cmd.Flags().StringVar(&rf.mode, "mode", "", "capture mode: object or area (default from config)")
	cmd.Flags().IntVar(&rf.shots, "shots", 0, "shots to simulate (default min_shots)")
	cmd.Flags().IntVar(&rf.minShots, "min-shots", 0, "minimum usable shots (default from config)")
	cmd.Flags().BoolVar(&rf.saveDraft, "save-draft", false, "keep the capture as a draft, skipping reconstruction")
	cmd.Flags().BoolVar(&rf.failCapture, "fail-capture", false, "simulate a capture hardware failure")
	cmd.Flags().BoolVar(&rf.cancelCapture, "cancel-capture", false, "cancel the capture midway through")

	return cmd
}

func runRun(cmd *cobra.Command, rf runFlags) error {
	cfg, err := runtimeConfig()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("load config: %s", err))
	}
	if rf.mode != "" {
		cfg.CaptureMode = types.CaptureMode(rf.mode)
	}
	if rf.minShots > 0 {
		cfg.MinShots = rf.minShots
	}
	if err := cfg.Validate(); err != nil {
		return exitError(exitUserError, err.Error())
	}
	if rf.shots <= 0 {
		rf.shots = cfg.MinShots
	}

	cat := catalog.New()
	if err := cat.Attach(cfg.DataDir); err != nil {
		return exitError(exitSysError, fmt.Sprintf("attach catalog: %s", err))
	}
	defer cat.Detach()

	model, err := appmodel.New(appmodel.Options{
		DocumentsDir:             cfg.DocumentsDir,
		Mode:                     cfg.CaptureMode,
		MinShots:                 cfg.MinShots,
		NewCaptureSession:        simsession.Factory(captureScript(rf)),
		NewReconstructionSession: simsession.ReconstructionFactory(simsession.ReconstructionScript{ProgressSteps: 5, StepDelay: 10 * time.Millisecond}),
		Store:                    cat,
	})
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("build model: %s", err))
	}
	defer model.Close()

	model.SetSaveDraft(rf.saveDraft)
	if err := model.SetState(types.StateReady); err != nil {
		return exitError(exitSysError, fmt.Sprintf("enter ready: %s", err))
	}
	if err := model.SetState(types.StateCapturing); err != nil {
		return exitError(exitSysError, fmt.Sprintf("start capture: %s", err))
	}

	if rf.cancelCapture {
		// Let a few shots land before cancelling.
		waitFor(func() bool { return model.ShotCount() > 0 }, runTimeout)
		model.CancelCapture()
	}

	final, ok := awaitTerminal(model, runTimeout)
	if !ok {
		return exitError(exitSysError, "capture run timed out")
	}

	// Snapshot before accepting the result: completing the session
	// resets the model's transient fields.
	summary := runSummary{
		State:     final.String(),
		ShotCount: model.ShotCount(),
		Root:      model.CaptureRoot(),
		ModelPath: model.ModelPath(),
	}
	if lastErr := model.LastError(); lastErr != nil {
		summary.Error = lastErr.Error()
	}

	if final == types.StateViewing {
		// Accept the result; this records the session and tears the
		// collaborators down.
		if err := model.SetState(types.StateCompleted); err != nil {
			return exitError(exitSysError, fmt.Sprintf("complete session: %s", err))
		}
		final = model.State()
		summary.State = final.String()
	}
	if recs, err := cat.List(); err == nil && len(recs) > 0 {
		summary.SessionID = recs[0].SessionID
	}

	if err := printSummary(cmd, summary); err != nil {
		return exitError(exitSysError, fmt.Sprintf("write summary: %s", err))
	}

	if final == types.StateFailed {
		return exitError(exitUserError, "capture run failed: "+summary.Error)
	}
	return nil
}

// captureScript builds the simulated camera script for the requested run.
// The happy path interleaves guidance feedback with shot bursts and ends
// with a completed pass. A cancelled run drains its script and waits so
// the cancel request decides the outcome.
func captureScript(rf runFlags) []simsession.Step {
	tick := 5 * time.Millisecond

	if rf.failCapture {
		return []simsession.Step{
			{Delay: tick, Shots: 2},
			{Delay: tick, Phase: types.PhaseFailed, Err: errors.New("camera disconnected")},
		}
	}

	steps := []simsession.Step{
		{Delay: tick, Feedback: types.NewFeedbackSet(types.FeedbackObjectTooClose)},
		{Delay: tick, Shots: rf.shots / 2, Feedback: types.NewFeedbackSet()},
		{Delay: tick, Shots: rf.shots - rf.shots/2},
	}
	if rf.cancelCapture {
		// No terminal phase; the run loop cancels once shots land.
		return steps
	}
	steps = append(steps,
		simsession.Step{Delay: tick, PassComplete: true},
		simsession.Step{Delay: tick, Phase: types.PhaseCompleted},
	)
	return steps
}

// awaitTerminal polls the model until it settles in a state the run
// loop treats as final.
func awaitTerminal(m *appmodel.Model, timeout time.Duration) (types.ApplicationState, bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		switch s := m.State(); s {
		case types.StateViewing, types.StateRestart, types.StateFailed, types.StateCompleted:
			return s, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return m.State(), false
}

// waitFor polls cond until it holds or the timeout elapses.
func waitFor(cond func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func printSummary(cmd *cobra.Command, s runSummary) error {
	out := cmd.OutOrStdout()

	if flags.jsonMode {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "State:      %s\n", s.State)
	fmt.Fprintf(out, "Shots:      %d\n", s.ShotCount)
	if s.SessionID != "" {
		fmt.Fprintf(out, "Session:    %s\n", s.SessionID)
	}
	if s.Root != "" {
		fmt.Fprintf(out, "Folder:     %s\n", s.Root)
	}
	if s.ModelPath != "" {
		fmt.Fprintf(out, "Model:      %s\n", s.ModelPath)
	}
	if s.Error != "" {
		fmt.Fprintf(out, "Error:      %s\n", s.Error)
	}
	return nil
}
