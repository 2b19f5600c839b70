package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/plantingplanner/planner-tui/internal/refresh"
	"github.com/plantingplanner/planner-tui/internal/toast"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// ErrRefreshFailed is returned when the attempt ends with an error toast.
var ErrRefreshFailed = errors.New("refresh failed")

func (e *env) newRefreshCmd() *cobra.Command {
	var o controllerOverrides

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Trigger a data refresh and wait for the result",
		Long: `Trigger a data refresh without the terminal UI. Each notification is
printed as it appears, followed by a final result line. The command exits
non-zero when the refresh fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := e.newClient()
			if err != nil {
				return fmt.Errorf("failed to create planner client: %w", err)
			}
			history := e.openStore()
			defer history.Close()

			ctrl := e.newController(client, history, o)
			defer ctrl.Close()

			p := newToastPrinter(cmd.OutOrStdout(), isTerminal(cmd.OutOrStdout()), e.cfg.GetTheme())
			return runHeadless(cmd.Context(), ctrl, p)
		},
	}

	cmd.Flags().DurationVar(&o.pollInterval, "poll-interval", 0, "status poll interval (overrides poll_interval)")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "give up after this long (overrides timeout)")
	return cmd
}

// runHeadless runs one attempt while streaming its toasts to p.
func runHeadless(ctx context.Context, ctrl *refresh.Controller, p *toastPrinter) error {
	attemptDone := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(attemptDone)
		ctrl.StartRefresh(gctx)
		return nil
	})
	g.Go(func() error {
		for {
			select {
			case <-ctrl.Changes():
				p.printNew(ctrl.PendingToasts())
			case <-attemptDone:
				p.printNew(ctrl.PendingToasts())
				return nil
			}
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}

	outcome, ok := ctrl.LastOutcome()
	if !ok {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("refresh cancelled: %w", err)
		}
		return errors.New("refresh ended without a result")
	}
	p.printResult(outcome)
	if outcome.Variant == toast.Error {
		return fmt.Errorf("%w: %s", ErrRefreshFailed, outcome.Message)
	}
	return nil
}

// toastPrinter writes each toast once, coloured when attached to a terminal.
type toastPrinter struct {
	w      io.Writer
	color  bool
	styles *styles.Styles
	seen   map[string]bool
	start  time.Time
}

func newToastPrinter(w io.Writer, color bool, theme string) *toastPrinter {
	return &toastPrinter{
		w:      w,
		color:  color,
		styles: styles.NewStyles(styles.GetThemeByNameWithFallback(theme)),
		seen:   make(map[string]bool),
		start:  time.Now(),
	}
}

func (p *toastPrinter) printNew(toasts []toast.Toast) {
	for _, t := range toasts {
		if p.seen[t.ID] {
			continue
		}
		p.seen[t.ID] = true
		line := fmt.Sprintf("[%s] %s", t.Variant, t.Message)
		if d := t.DetailText(); d != "" {
			line += ": " + d
		}
		fmt.Fprintln(p.w, p.paint(t.Variant, line))
	}
}

func (p *toastPrinter) printResult(outcome toast.Payload) {
	line := fmt.Sprintf("result: %s (%s) after %s", outcome.Message, outcome.Variant, time.Since(p.start).Round(time.Millisecond))
	fmt.Fprintln(p.w, p.paint(outcome.Variant, line))
}

func (p *toastPrinter) paint(v toast.Variant, s string) string {
	if !p.color {
		return s
	}
	var style lipgloss.Style
	switch v {
	case toast.Success:
		style = p.styles.Success
	case toast.Error:
		style = p.styles.Error
	case toast.Warning:
		style = p.styles.Warning
	default:
		style = p.styles.Info
	}
	return style.Render(s)
}
