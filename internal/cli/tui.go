package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/plantingplanner/planner-tui/internal/app"
	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/polling"
)

func (e *env) runTUI(cmd *cobra.Command, _ []string) error {
	client, err := e.newClient()
	if err != nil {
		return fmt.Errorf("failed to create planner client: %w", err)
	}
	history := e.openStore()
	defer history.Close()

	// The program does not exist yet when the controller is built; the
	// success hook only runs after Run has started.
	var send func(tea.Msg)
	ctrl := e.newController(client, history, controllerOverrides{
		onSuccess: func(ctx context.Context) error {
			status, err := client.FetchRefreshStatus(ctx)
			if send != nil {
				send(polling.StatusUpdated{Status: status, Err: err})
			}
			return err
		},
	})
	defer ctrl.Close()

	model := app.NewModel(app.Options{
		Controller:     ctrl,
		Status:         client,
		History:        history,
		Endpoint:       client.Endpoint(),
		StatusInterval: e.cfg.StatusInterval,
		Theme:          e.cfg.GetTheme(),
		SaveTheme:      e.cfg.UpdateTheme,
		Messages:       messages.For(e.cfg.Language),
		Logger:         e.logger,
	})

	prog := e.opts.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	send = prog.Send

	e.logger.Info("starting terminal UI", "endpoint", client.Endpoint())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("TUI application error: %w", err)
	}
	return nil
}
