package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/plantingplanner/planner-tui/internal/store"
)

func (e *env) newHistoryCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded refresh attempts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history := e.openStore()
			defer history.Close()

			records, err := history.Attempts(limit)
			if err != nil {
				return fmt.Errorf("failed to read refresh history: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No refresh attempts recorded yet.")
				return nil
			}
			fmt.Fprintln(out, historyTable(records).Render())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of attempts to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func historyTable(records []store.AttemptRecord) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "FINISHED", "RESULT", "MESSAGE", "DETAIL")
	for _, r := range records {
		t.Row(
			fmt.Sprint(r.Seq),
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Variant),
			r.Message,
			orDash(r.Detail),
		)
	}
	return t
}
