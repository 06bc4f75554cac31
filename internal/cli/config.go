// Config loading for the orbitcap CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/voxel-foundry/orbitcap/internal/paths"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDocumentsDir = "documents_dir"
	cfgKeyDataDir      = "data_dir"
	cfgKeyCaptureMode  = "capture_mode"
	cfgKeyMinShots     = "min_shots"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Orbitcap CLI configuration

# Capture mode: object or area
capture_mode: object

# Minimum shots before an orbit counts as usable
min_shots: 10

# Root directory for capture trees (optional; overridable by --documents-dir)
# documents_dir:

# Session catalog directory (optional; overridable by --data-dir)
# data_dir:
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on
// first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyCaptureMode, string(types.ModeObject))
	v.SetDefault(cfgKeyMinShots, types.DefaultMinShots)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// runtimeConfig resolves the effective configuration from flags, the
// config file, environment, and platform defaults.
func runtimeConfig() (types.Config, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	documentsDir, err := paths.ResolveDocumentsDir(flags.documentsDir, v.GetString(cfgKeyDocumentsDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve documents dir: %w", err)
	}

	cfg := types.Config{
		DocumentsDir: documentsDir,
		DataDir:      dataDir,
		CaptureMode:  types.CaptureMode(v.GetString(cfgKeyCaptureMode)),
		MinShots:     v.GetInt(cfgKeyMinShots),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}
