// Package paths resolves configuration, catalog, and capture directory
// locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir    = "ORBITCAP_CONFIG_DIR"
	EnvDataDir      = "ORBITCAP_DATA_DIR"
	EnvDocumentsDir = "ORBITCAP_DOCUMENTS_DIR"
)

// CapturesDirName is the subdirectory of the documents root that holds
// the timestamped capture trees.
const CapturesDirName = "captures"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration
// directory.
//
// Linux:   $XDG_CONFIG_HOME/orbitcap (fallback ~/.config/orbitcap)
// macOS:   ~/Library/Application Support/orbitcap
// Windows: %APPDATA%/orbitcap
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "orbitcap"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "orbitcap"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "orbitcap"), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory
// holding the session catalog database.
//
// Linux:   $XDG_DATA_HOME/orbitcap (fallback ~/.local/share/orbitcap)
// macOS:   ~/Library/Application Support/orbitcap
// Windows: %APPDATA%/orbitcap
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "orbitcap"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", "orbitcap"), nil
	default:
		// macOS and Windows: same as config dir.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "orbitcap"), nil
	}
}

// DefaultDocumentsDir returns the default root under which the timestamped
// capture trees are written: {DefaultDataDir}/captures.
func DefaultDocumentsDir() (string, error) {
	dataDir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, CapturesDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > ORBITCAP_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml value > ORBITCAP_DATA_DIR env >
// DefaultDataDir().
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDataDir()
}

// ResolveDocumentsDir returns the capture documents root following the
// precedence chain: flag > config.yaml value > ORBITCAP_DOCUMENTS_DIR env >
// DefaultDocumentsDir().
func ResolveDocumentsDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDocumentsDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultDocumentsDir()
}
