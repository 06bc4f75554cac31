package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/voxel-foundry/orbitcap/pkg/types"
)

func newDiscardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <session-id>",
		Short: "Delete a session record and its capture folder",
		Args:  cobra.ExactArgs(1),
		RunE:  runDiscard,
	}
}

func runDiscard(cmd *cobra.Command, args []string) error {
	cat, err := attachCatalog()
	if err != nil {
		return err
	}
	defer cat.Detach()

	rec, err := cat.Get(args[0])
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
			return exitError(exitUserError, fmt.Sprintf("session %q not found", args[0]))
		}
		return exitError(exitSysError, fmt.Sprintf("load session: %s", err))
	}

	// Remove the tree first so a failed catalog delete leaves a record
	// pointing at nothing rather than an orphaned tree with no record.
	if rec.RootDir != "" {
		if err := os.RemoveAll(rec.RootDir); err != nil {
			log.Warn().Err(err).Str("dir", rec.RootDir).Msg("capture folder removal failed")
		}
	}

	if err := cat.Delete(rec.SessionID); err != nil {
		return exitError(exitSysError, fmt.Sprintf("delete session: %s", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Discarded session %s\n", rec.SessionID)
	return nil
}
