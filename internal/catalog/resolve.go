package catalog

import (
	"os"
	"path/filepath"
	"sort"
)

// modelsDirName matches the model-output subdirectory of a capture tree.
const modelsDirName = "Models"

// ResolveModel returns the model file for a capture tree, preferring the
// recorded path when it still exists and otherwise scanning the Models
// subdirectory. A missing model is not an error: the gallery treats it as
// "no selection" and returns an empty path.
func ResolveModel(rootDir, recordedPath string) (string, error) {
	if recordedPath != "" {
		if info, err := os.Stat(recordedPath); err == nil && !info.IsDir() {
			return recordedPath, nil
		}
	}

	entries, err := os.ReadDir(filepath.Join(rootDir, modelsDirName))
	if err != nil {
		// No Models directory means no model; silent fallback.
		return "", nil
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(rootDir, modelsDirName, names[0]), nil
}
