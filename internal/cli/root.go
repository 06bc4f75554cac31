// Package cli implements the orbitcap command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxel-foundry/orbitcap/internal/logging"
	"github.com/voxel-foundry/orbitcap/internal/paths"
	"github.com/voxel-foundry/orbitcap/pkg/orbitcap"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir    string
	dataDir      string
	documentsDir string
	jsonMode     bool
}

var flags rootFlags

// NewRootCmd creates the top-level "orbitcap" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "orbitcap",
		Short:   "Guided 3D object-capture coordinator",
		Long:    "Orbitcap sequences a guided object capture through its ready, capturing,\nreconstructing, and viewing phases, and keeps a catalog of past sessions.",
		Version: orbitcap.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init()
		},
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "session catalog directory")
	root.PersistentFlags().StringVar(&flags.documentsDir, "documents-dir", "", "root directory for capture trees")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newSessionsCmd())
	root.AddCommand(newDiscardCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
}

// resolveConfigDir returns the config directory from flag, env, or default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flags.configDir)
}

// exitError prints the error to stderr and exits with the given code.
func exitError(code int, msg string) error {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
	return nil // unreachable
}
