// Package integration exercises the full capture workflow end to end:
// folder management, the application state machine, the scripted
// sessions, and the session catalog working together.
package integration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/voxel-foundry/orbitcap/internal/appmodel"
	"github.com/voxel-foundry/orbitcap/internal/catalog"
	"github.com/voxel-foundry/orbitcap/internal/simsession"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// testEnv is one isolated workflow environment: a temp documents root
// and an attached catalog, both torn down with the test.
type testEnv struct {
	DocumentsDir string
	DataDir      string
	Catalog      *catalog.Catalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()

	env := &testEnv{
		DocumentsDir: filepath.Join(root, "captures"),
		DataDir:      filepath.Join(root, "data"),
		Catalog:      catalog.New(),
	}
	require.NoError(t, env.Catalog.Attach(env.DataDir))
	t.Cleanup(func() { env.Catalog.Detach() })
	return env
}

// newModel builds a model over the environment with the given scripted
// capture and a default reconstruction. Closed with the test.
func (env *testEnv) newModel(t *testing.T, script []simsession.Step) *appmodel.Model {
	t.Helper()
	m, err := appmodel.New(appmodel.Options{
		DocumentsDir:             env.DocumentsDir,
		Mode:                     types.ModeObject,
		MinShots:                 5,
		NewCaptureSession:        simsession.Factory(script),
		NewReconstructionSession: simsession.ReconstructionFactory(simsession.ReconstructionScript{ProgressSteps: 3}),
		Store:                    env.Catalog,
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	return m
}

// waitForState polls until the model reaches the wanted state.
func waitForState(t *testing.T, m *appmodel.Model, want types.ApplicationState) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %q, stuck in %q", want, m.State())
}

// fullPassScript takes shots, completes the pass, and ends the capture.
func fullPassScript(shots int) []simsession.Step {
	return []simsession.Step{
		{Shots: shots},
		{PassComplete: true},
		{Phase: types.PhaseCompleted},
	}
}
