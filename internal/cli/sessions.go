package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxel-foundry/orbitcap/internal/catalog"
	"github.com/voxel-foundry/orbitcap/pkg/types"
)

// sessionView is the JSON shape of a catalog record.
type sessionView struct {
	SessionID   string `json:"session_id"`
	RootDir     string `json:"root_dir"`
	State       string `json:"state"`
	CaptureMode string `json:"capture_mode"`
	ShotCount   int    `json:"shot_count"`
	ModelPath   string `json:"model_path,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded capture sessions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runSessionsList,
	}
	cmd.AddCommand(newSessionsShowCmd())
	return cmd
}

func newSessionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show one capture session in detail",
		Args:  cobra.ExactArgs(1),
		RunE:  runSessionsShow,
	}
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	cat, err := attachCatalog()
	if err != nil {
		return err
	}
	defer cat.Detach()

	recs, err := cat.List()
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("list sessions: %s", err))
	}

	out := cmd.OutOrStdout()

	if flags.jsonMode {
		views := make([]sessionView, 0, len(recs))
		for _, rec := range recs {
			views = append(views, viewOf(rec))
		}
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return exitError(exitSysError, fmt.Sprintf("marshal sessions: %s", err))
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintln(out, "No sessions recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION ID\tSTATE\tMODE\tSHOTS\tUPDATED")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			rec.SessionID,
			rec.State,
			rec.CaptureMode,
			rec.ShotCount,
			rec.UpdatedAt.Format(time.RFC3339),
		)
	}
	w.Flush()
	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
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

	// Prefer the model file actually present on disk over the recorded
	// path, which may be stale after a manual move.
	modelPath, err := catalog.ResolveModel(rec.RootDir, rec.ModelPath)
	if err != nil {
		return exitError(exitSysError, fmt.Sprintf("resolve model: %s", err))
	}

	out := cmd.OutOrStdout()

	if flags.jsonMode {
		view := viewOf(rec)
		view.ModelPath = modelPath
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return exitError(exitSysError, fmt.Sprintf("marshal session: %s", err))
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if modelPath == "" {
		modelPath = "(no model)"
	}
	fmt.Fprintf(out, "Session:  %s\n", rec.SessionID)
	fmt.Fprintf(out, "State:    %s\n", rec.State)
	fmt.Fprintf(out, "Mode:     %s\n", rec.CaptureMode)
	fmt.Fprintf(out, "Shots:    %d\n", rec.ShotCount)
	fmt.Fprintf(out, "Folder:   %s\n", rec.RootDir)
	fmt.Fprintf(out, "Model:    %s\n", modelPath)
	fmt.Fprintf(out, "Created:  %s\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Updated:  %s\n", rec.UpdatedAt.Format(time.RFC3339))
	return nil
}

// attachCatalog resolves the data directory and opens the catalog.
func attachCatalog() (*catalog.Catalog, error) {
	cfg, err := runtimeConfig()
	if err != nil {
		return nil, exitError(exitSysError, fmt.Sprintf("load config: %s", err))
	}
	cat := catalog.New()
	if err := cat.Attach(cfg.DataDir); err != nil {
		return nil, exitError(exitSysError, fmt.Sprintf("attach catalog: %s", err))
	}
	return cat, nil
}

func viewOf(rec *types.SessionRecord) sessionView {
	return sessionView{
		SessionID:   rec.SessionID,
		RootDir:     rec.RootDir,
		State:       rec.State.String(),
		CaptureMode: string(rec.CaptureMode),
		ShotCount:   rec.ShotCount,
		ModelPath:   rec.ModelPath,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rec.UpdatedAt.Format(time.RFC3339),
	}
}
