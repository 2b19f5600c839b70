package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantingplanner/planner-tui/internal/ui/styles"
	"github.com/plantingplanner/planner-tui/internal/ui/tokeninput"
)

func (e *env) newAuthCmd() *cobra.Command {
	var clearToken bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Store the planner API token in the system keyring",
		Long: `Prompt for the planner API token and store it in the system keyring.
When stdin is not a terminal the token is read from its first line.
The PLANNER_API_TOKEN environment variable is used when no token is stored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if clearToken {
				if err := e.opts.Tokens.DeleteToken(); err != nil {
					return err
				}
				fmt.Fprintln(out, "API token removed from the system keyring.")
				return nil
			}

			token, err := e.promptToken(cmd)
			if err != nil {
				return err
			}
			if err := e.opts.Tokens.SetToken(token); err != nil {
				return err
			}
			e.logger.Info("API token stored")
			fmt.Fprintln(out, "API token saved to the system keyring.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearToken, "clear", false, "remove the stored token")
	return cmd
}

func (e *env) promptToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if !isTerminal(in) {
		line, err := readLine(in)
		if err != nil {
			return "", fmt.Errorf("failed to read token from stdin: %w", err)
		}
		token := strings.TrimSpace(line)
		if token == "" {
			return "", errors.New("token cannot be empty")
		}
		return token, nil
	}

	model := tokeninput.NewModel(styles.NewStyles(styles.GetThemeByNameWithFallback(e.cfg.GetTheme())), e.cfg.APIEndpoint)
	final, err := e.opts.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run token prompt: %w", err)
	}
	m, ok := final.(tokeninput.Model)
	if !ok || !m.Submitted() {
		return "", errors.New("token input cancelled")
	}
	return m.Token(), nil
}
