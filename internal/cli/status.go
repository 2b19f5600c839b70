package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/planner"
	"github.com/plantingplanner/planner-tui/internal/store"
)

type statusOutput struct {
	Status   planner.RefreshStatus `json:"status"`
	LastSync *store.LastSync       `json:"last_sync,omitempty"`
}

func (e *env) newStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the backend refresh status and the last recorded sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := e.newClient()
			if err != nil {
				return fmt.Errorf("failed to create planner client: %w", err)
			}
			status, err := client.FetchRefreshStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch refresh status: %w", err)
			}

			out := statusOutput{Status: status}
			history := e.openStore()
			defer history.Close()
			if last, ok, err := history.LastSync(); err != nil {
				e.logger.Warn("failed to read last sync", "error", err)
			} else if ok {
				out.LastSync = &last
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			printStatus(cmd.OutOrStdout(), out, messages.For(e.cfg.Language))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printStatus(w io.Writer, out statusOutput, msgs *messages.Catalog) {
	s := out.Status
	fmt.Fprintf(w, "State:       %s\n", s.State)
	fmt.Fprintf(w, "Started:     %s\n", orDash(s.StartedAt))
	fmt.Fprintf(w, "Finished:    %s\n", orDash(s.FinishedAt))
	fmt.Fprintf(w, "Updated:     %s\n", strconv.Itoa(s.UpdatedRecords))
	fmt.Fprintf(w, "Last error:  %s\n", orDash(s.LastError))

	last := ""
	if out.LastSync != nil {
		last = orDash(out.LastSync.FinishedAt)
		if out.LastSync.FinishedAt == nil {
			last = out.LastSync.RecordedAt.Local().Format(time.DateTime)
		}
	}
	fmt.Fprintln(w, msgs.LastSync(last))
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
