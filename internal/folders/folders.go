// Package folders manages the on-disk directory tree for a single capture
// session: a timestamped root under the documents directory with fixed
// Images, Checkpoint, and Models subdirectories.
package folders

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// Subdirectory names under the capture root.
const (
	ImagesDirName     = "Images"
	CheckpointDirName = "Checkpoint"
	ModelsDirName     = "Models"
)

// timestampLayout names the capture root: ISO-8601 at second precision,
// with colons replaced so the name is legal on every filesystem. The
// fixed-width layout keeps names lexicographically ordered by time.
const timestampLayout = "2006-01-02T15-04-05Z"

// clock holds the time source, overridable in tests.
var clock = struct {
	now func() time.Time
}{
	now: time.Now,
}

// CaptureFolders is the directory tree of one capture session. Immutable
// after construction; all four paths exist and are directories for the
// lifetime of the owning session.
type CaptureFolders struct {
	root       string
	images     string
	checkpoint string
	models     string
}

// New creates a fresh capture tree under documentsRoot: a root directory
// named by the current UTC timestamp, then the Images, Checkpoint, and
// Models subdirectories.
//
// Creation is never additive. A pre-existing target path (file or
// directory) fails with ErrAlreadyExists and leaves it untouched; a
// directory that cannot be created or does not verify as a directory
// afterwards fails with ErrCreationFailed; a non-local path fails with
// ErrNotLocalPath. The documents root itself may already exist and is
// created when missing.
func New(documentsRoot string) (*CaptureFolders, error) {
	if !isLocalPath(documentsRoot) {
		return nil, fmt.Errorf("%w: %q", types.ErrNotLocalPath, documentsRoot)
	}

	if err := os.MkdirAll(documentsRoot, 0o755); err != nil {
		return nil, fmt.Errorf("%w: documents root %s: %v", types.ErrCreationFailed, documentsRoot, err)
	}

	root := filepath.Join(documentsRoot, clock.now().UTC().Format(timestampLayout))
	if err := makeDir(root); err != nil {
		return nil, err
	}

	f := &CaptureFolders{
		root:       root,
		images:     filepath.Join(root, ImagesDirName),
		checkpoint: filepath.Join(root, CheckpointDirName),
		models:     filepath.Join(root, ModelsDirName),
	}
	for _, dir := range []string{f.images, f.checkpoint, f.models} {
		if err := makeDir(dir); err != nil {
			return nil, err
		}
	}

	log.Debug().Str("root", root).Msg("capture folders created")
	return f, nil
}

// Root returns the timestamped capture root directory.
func (f *CaptureFolders) Root() string { return f.root }

// ImagesDir returns the directory capture shots are written into.
func (f *CaptureFolders) ImagesDir() string { return f.images }

// CheckpointDir returns the directory holding the session checkpoint.
func (f *CaptureFolders) CheckpointDir() string { return f.checkpoint }

// ModelsDir returns the directory reconstruction output is written into.
func (f *CaptureFolders) ModelsDir() string { return f.models }

// Remove deletes the whole capture tree. Best-effort cleanup: the error
// is logged and swallowed, never escalated.
func (f *CaptureFolders) Remove() {
	if err := os.RemoveAll(f.root); err != nil {
		log.Warn().Err(err).Str("root", f.root).Msg("capture folder cleanup failed")
		return
	}
	log.Debug().Str("root", f.root).Msg("capture folders removed")
}

// RemoveCheckpoint deletes the checkpoint subdirectory. Best-effort, same
// contract as Remove.
func (f *CaptureFolders) RemoveCheckpoint() {
	if err := os.RemoveAll(f.checkpoint); err != nil {
		log.Warn().Err(err).Str("dir", f.checkpoint).Msg("checkpoint cleanup failed")
		return
	}
	log.Debug().Str("dir", f.checkpoint).Msg("checkpoint removed")
}

// makeDir creates dir, failing if the path already exists in any form and
// verifying the result is a directory.
func makeDir(dir string) error {
	if _, err := os.Lstat(dir); err == nil {
		return fmt.Errorf("%w: %s", types.ErrAlreadyExists, dir)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", types.ErrCreationFailed, dir, err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", types.ErrCreationFailed, dir, err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s did not verify as a directory", types.ErrCreationFailed, dir)
	}
	return nil
}

// isLocalPath rejects resource identifiers carrying a URL scheme other
// than file. Defensive check; every supported caller passes plain paths.
func isLocalPath(path string) bool {
	if path == "" {
		return false
	}
	i := strings.Index(path, "://")
	if i < 0 {
		return true
	}
	return strings.EqualFold(path[:i], "file")
}
