package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voxel-foundry/orbitcap/internal/catalog"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// configFile holds the structure written to config.yaml by init when the
// user passed explicit directories.
type configFile struct {
	CaptureMode  string `yaml:"capture_mode"`
	MinShots     int    `yaml:"min_shots"`
	DocumentsDir string `yaml:"documents_dir,omitempty"`
	DataDir      string `yaml:"data_dir,omitempty"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize orbitcap configuration and storage",
		Long:  "Create the configuration directory, write a default config.yaml, and\ninitialize the session catalog and capture documents root.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("resolve config dir: %s", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Sprintf("create config directory: %s", err))
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath); err != nil {
		return exitError(exitSysError, fmt.Sprintf("write config: %s", err))
	}

	cfg, err := runtimeConfig()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("load config: %s", err))
	}

	// Initialize the catalog via Attach then Detach.
	cat := catalog.New()
	if err := cat.Attach(cfg.DataDir); err != nil {
		return exitError(exitSysError, fmt.Sprintf("initialize catalog: %s", err))
	}
	if err := cat.Detach(); err != nil {
		return exitError(exitSysError, fmt.Sprintf("finalize catalog: %s", err))
	}

	// Create the documents root so the first capture starts clean.
	if err := os.MkdirAll(cfg.DocumentsDir, 0o755); err != nil {
		return exitError(exitSysError, fmt.Sprintf("create documents root: %s", err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Orbitcap initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the
// file does not exist. When explicit directory flags were passed they are
// recorded; otherwise the defaults stay commented out. If the file
// already exists the function returns nil (idempotent).
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if flags.documentsDir == "" && flags.dataDir == "" {
		return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
	}

	cfg := configFile{
		CaptureMode:  string(types.ModeObject),
		MinShots:     types.DefaultMinShots,
		DocumentsDir: flags.documentsDir,
		DataDir:      flags.dataDir,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
