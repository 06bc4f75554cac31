package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxel-foundry/orbitcap/internal/catalog"
	"github.com/voxel-foundry/orbitcap/internal/folders"
	"github.com/voxel-foundry/orbitcap/internal/simsession"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// TestFullCaptureLifecycle drives a session from ready through capture,
// reconstruction, and viewing to completed, and verifies every artifact:
// the folder tree, the shot files, the model file, and the catalog record.
func TestFullCaptureLifecycle(t *testing.T) {
	env := newTestEnv(t)
	m := env.newModel(t, fullPassScript(8))

	require.NoError(t, m.SetState(types.StateReady))
	root := m.CaptureRoot()
	require.NotEmpty(t, root)
	require.DirExists(t, filepath.Join(root, folders.ImagesDirName))

	require.NoError(t, m.SetState(types.StateCapturing))
	waitForState(t, m, types.StateViewing)

	assert.Equal(t, 8, m.ShotCount())
	shots, err := filepath.Glob(filepath.Join(root, folders.ImagesDirName, "*.heic"))
	require.NoError(t, err)
	assert.Len(t, shots, 8)

	modelPath := m.ModelPath()
	require.NotEmpty(t, modelPath)
	require.FileExists(t, modelPath)

	require.NoError(t, m.SetState(types.StateCompleted))
	assert.Equal(t, types.StateCompleted, m.State())

	recs, err := env.Catalog.List()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, types.StateCompleted, rec.State)
	assert.Equal(t, types.ModeObject, rec.CaptureMode)
	assert.Equal(t, 8, rec.ShotCount)
	assert.Equal(t, root, rec.RootDir)
	assert.Equal(t, modelPath, rec.ModelPath)

	// The folder tree survives completion; only the checkpoint goes.
	assert.DirExists(t, root)
}

// TestCancelledCaptureRestarts verifies that cancelling a capture deletes
// the folder tree and lands in restart without recording an error.
func TestCancelledCaptureRestarts(t *testing.T) {
	env := newTestEnv(t)
	// Shots land, then the script drains with no terminal phase so the
	// cancel request decides the outcome.
	m := env.newModel(t, []simsession.Step{{Shots: 3}})

	require.NoError(t, m.SetState(types.StateReady))
	root := m.CaptureRoot()
	require.NoError(t, m.SetState(types.StateCapturing))

	waitForShots(t, m.ShotCount, 3)
	m.CancelCapture()
	waitForState(t, m, types.StateRestart)

	assert.NoError(t, m.LastError())
	assert.NoDirExists(t, root)
}

// TestSaveDraftSkipsReconstruction verifies that a draft capture keeps
// its folder on disk and never enters reconstruction.
func TestSaveDraftSkipsReconstruction(t *testing.T) {
	env := newTestEnv(t)
	m := env.newModel(t, fullPassScript(6))

	m.SetSaveDraft(true)
	require.NoError(t, m.SetState(types.StateReady))
	root := m.CaptureRoot()
	require.NoError(t, m.SetState(types.StateCapturing))

	waitForState(t, m, types.StateRestart)

	assert.NoError(t, m.LastError())
	assert.DirExists(t, root)
	shots, err := filepath.Glob(filepath.Join(root, folders.ImagesDirName, "*.heic"))
	require.NoError(t, err)
	assert.Len(t, shots, 6)
	assert.Empty(t, m.ModelPath())
}

// TestCaptureFailureSurfacesError verifies a hardware-style failure
// routes to the failed state with the cause attached, and that a later
// restart clears it.
func TestCaptureFailureSurfacesError(t *testing.T) {
	env := newTestEnv(t)
	m := env.newModel(t, []simsession.Step{
		{Shots: 2},
		{Phase: types.PhaseFailed, Err: os.ErrClosed},
	})

	require.NoError(t, m.SetState(types.StateReady))
	require.NoError(t, m.SetState(types.StateCapturing))

	waitForState(t, m, types.StateFailed)
	require.ErrorIs(t, m.LastError(), os.ErrClosed)

	require.NoError(t, m.SetState(types.StateRestart))
	assert.NoError(t, m.LastError())
}

// TestCatalogSurvivesReattach verifies session records persist across a
// catalog detach and reattach, and that a discarded record disappears.
func TestCatalogSurvivesReattach(t *testing.T) {
	env := newTestEnv(t)
	m := env.newModel(t, fullPassScript(5))

	require.NoError(t, m.SetState(types.StateReady))
	require.NoError(t, m.SetState(types.StateCapturing))
	waitForState(t, m, types.StateViewing)
	require.NoError(t, m.SetState(types.StateCompleted))

	recs, err := env.Catalog.List()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	id := recs[0].SessionID
	root := recs[0].RootDir

	require.NoError(t, env.Catalog.Detach())
	require.NoError(t, env.Catalog.Attach(env.DataDir))

	rec, err := env.Catalog.Get(id)
	require.NoError(t, err)
	assert.Equal(t, types.StateCompleted, rec.State)

	// Resolving the model from disk matches the recorded path.
	resolved, err := catalog.ResolveModel(rec.RootDir, rec.ModelPath)
	require.NoError(t, err)
	assert.Equal(t, rec.ModelPath, resolved)

	// Discard: remove the tree, then the record.
	require.NoError(t, os.RemoveAll(root))
	require.NoError(t, env.Catalog.Delete(id))
	_, err = env.Catalog.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

// TestConsecutiveSessionsGetDistinctFolders runs two back-to-back
// sessions on one model and verifies each capture lands in its own
// timestamped folder with its own catalog record.
func TestConsecutiveSessionsGetDistinctFolders(t *testing.T) {
	env := newTestEnv(t)

	m := env.newModel(t, fullPassScript(5))

	var roots []string
	for i := 0; i < 2; i++ {
		require.NoError(t, m.SetState(types.StateReady))
		roots = append(roots, m.CaptureRoot())
		require.NoError(t, m.SetState(types.StateCapturing))
		waitForState(t, m, types.StateViewing)
		require.NoError(t, m.SetState(types.StateCompleted))

		// Folder names carry second precision.
		time.Sleep(1100 * time.Millisecond)
	}

	require.Len(t, roots, 2)
	assert.NotEqual(t, roots[0], roots[1])
	assert.DirExists(t, roots[0])
	assert.DirExists(t, roots[1])

	recs, err := env.Catalog.List()
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

// waitForShots polls the counter until it reaches want.
func waitForShots(t *testing.T, count func() int, want int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d shots, have %d", want, count())
}
