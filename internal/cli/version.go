package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plantingplanner/planner-tui/internal/version"
)

func newVersionCmd() *cobra.Command {
	var (
		asJSON bool
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(info); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, info.String())
			}

			if !check {
				return nil
			}
			update, err := version.NewChecker(info.Version).CheckForUpdate(cmd.Context())
			if err != nil {
				return fmt.Errorf("update check failed: %w", err)
			}
			if update.UpdateAvailable {
				fmt.Fprintf(out, "A newer version is available: %s (%s)\n", update.LatestVersion, update.ReleaseURL)
			} else {
				fmt.Fprintln(out, "You are running the latest version.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
