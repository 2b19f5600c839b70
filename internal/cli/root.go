// Package cli wires the planner-tui command tree: the terminal UI as the
// root command plus headless refresh, status, history, auth and version
// commands.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plantingplanner/planner-tui/internal/config"
	"github.com/plantingplanner/planner-tui/internal/logging"
)

// TokenStore holds the API bearer token.
type TokenStore interface {
	SetToken(token string) error
	DeleteToken() error
	ResolveToken() (string, error)
}

// Options are the process-level dependencies of the command tree. Zero
// values select the real terminal, keyring and Bubble Tea runtime.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
	Tokens TokenStore
	// NewProgram creates the Bubble Tea program for a model.
	NewProgram func(m tea.Model, opts ...tea.ProgramOption) Program
}

// Program is the part of *tea.Program the commands use.
type Program interface {
	Run() (tea.Model, error)
	Send(msg tea.Msg)
}

func (o *Options) setDefaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.Tokens == nil {
		o.Tokens = config.NewKeyringStore()
	}
	if o.NewProgram == nil {
		o.NewProgram = func(m tea.Model, opts ...tea.ProgramOption) Program {
			return tea.NewProgram(m, opts...)
		}
	}
}

// env is the state shared by all commands once flags are parsed.
type env struct {
	opts       Options
	configPath string
	logLevel   string

	cfg      *config.Config
	logger   *slog.Logger
	logClose io.Closer
}

// Execute runs the command tree with args and releases its resources.
func Execute(ctx context.Context, args []string, opts Options) error {
	root, e := newRootCmd(opts)
	defer e.teardown()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	root, _ := newRootCmd(opts)
	return root
}

func newRootCmd(opts Options) (*cobra.Command, *env) {
	opts.setDefaults()
	e := &env{opts: opts}

	root := &cobra.Command{
		Use:   "planner-tui",
		Short: "Trigger and watch crop planner data refreshes",
		Long: `planner-tui triggers the crop planner backend's data refresh and follows it
until it succeeds, fails or times out.

Run without a subcommand to start the terminal UI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: e.setup,
		RunE:              e.runTUI,
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	root.PersistentFlags().StringVar(&e.configPath, "config", "", "config file (default ~/.config/planner-tui/config.yaml)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		e.newRefreshCmd(),
		e.newStatusCmd(),
		e.newHistoryCmd(),
		e.newAuthCmd(),
		newVersionCmd(),
	)
	return root, e
}

func (e *env) setup(cmd *cobra.Command, _ []string) error {
	// version works without a valid configuration.
	if cmd.Name() == "version" {
		e.logger = logging.Discard()
		return nil
	}

	var err error
	if e.configPath != "" {
		e.cfg, err = config.LoadFrom(e.configPath)
	} else {
		e.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if e.logLevel != "" {
		e.cfg.Log.Level = e.logLevel
	}

	e.logger, e.logClose, err = logging.Setup(e.cfg.Log.File, e.cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	e.logger.Debug("configuration loaded", "path", e.cfg.Path(), "endpoint", e.cfg.APIEndpoint)
	return nil
}

func (e *env) teardown() {
	if e.logClose != nil {
		_ = e.logClose.Close()
		e.logClose = nil
	}
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f any) bool {
	file, ok := f.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// readLine reads one line from a non-interactive input.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return line, nil
}
