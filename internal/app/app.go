// Package app is the root Bubble Tea model of the planner TUI: the refresh
// button, the backend status panel, the toast stack and the status bar.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/messages"
	"github.com/plantingplanner/planner-tui/internal/planner"
	"github.com/plantingplanner/planner-tui/internal/polling"
	"github.com/plantingplanner/planner-tui/internal/store"
	"github.com/plantingplanner/planner-tui/internal/toast"
	"github.com/plantingplanner/planner-tui/internal/ui/components"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// historyLimit is how many attempt records the history table shows.
const historyLimit = 20

// RefreshController is the part of refresh.Controller the UI drives.
type RefreshController interface {
	StartRefresh(ctx context.Context)
	DismissToast(id string)
	DismissAllToasts()
	IsRefreshing() bool
	PendingToasts() []toast.Toast
	Changes() <-chan struct{}
	Close()
}

// History is the persisted sync state shown in the UI.
type History interface {
	LastSync() (store.LastSync, bool, error)
	Attempts(limit int) ([]store.AttemptRecord, error)
}

// Options wires the model to the rest of the application.
type Options struct {
	Controller     RefreshController
	Status         polling.StatusClient
	History        History
	Endpoint       string
	StatusInterval time.Duration
	Theme          string
	// SaveTheme persists a theme picked in the UI. Optional.
	SaveTheme func(name string) error
	Messages  *messages.Catalog
	Logger    *slog.Logger
}

type (
	controllerChangedMsg struct{}
	refreshDoneMsg       struct{}
	historyLoadedMsg     struct {
		last    store.LastSync
		hasLast bool
		records []store.AttemptRecord
		err     error
	}
)

// Model is the root application model for the TUI.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	ctrl          RefreshController
	watcher       *polling.Watcher
	watchInterval time.Duration
	errs          *polling.ErrorHandler
	history       History
	msgs          *messages.Catalog
	logger        *slog.Logger
	keys          KeyMap
	saveTheme     func(string) error

	styles      *styles.Styles
	statusBar   *components.StatusBar
	button      *components.RefreshButton
	toasts      *components.ToastStack
	historyView *components.HistoryView
	help        *components.HelpModal
	errorModal  *components.ErrorModal
	themePicker *components.ThemePicker

	status      planner.RefreshStatus
	hasStatus   bool
	lastSync    store.LastSync
	hasLastSync bool
	notice      string
	quitting    bool
	width       int
	height      int
}

// NewModel creates the root model. Controller and Status are required.
func NewModel(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	msgs := opts.Messages
	if msgs == nil {
		msgs = messages.For(string(messages.DefaultLanguage))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	theme := styles.GetThemeByNameWithFallback(opts.Theme)
	st := styles.NewStyles(theme)
	keys := DefaultKeyMap()
	watcher := polling.NewWatcher(opts.Status, opts.StatusInterval)

	statusBar := components.NewStatusBar(st, msgs)
	statusBar.SetEndpoint(opts.Endpoint)
	statusBar.SetHelpText("r refresh • ? help • q quit")

	return Model{
		ctx:           ctx,
		cancel:        cancel,
		ctrl:          opts.Controller,
		watcher:       watcher,
		watchInterval: watcher.Interval(),
		errs:          polling.NewErrorHandler(),
		history:       opts.History,
		msgs:          msgs,
		logger:        logger.With("component", "app"),
		keys:          keys,
		saveTheme:     opts.SaveTheme,
		styles:        st,
		statusBar:     statusBar,
		button:        components.NewRefreshButton(st, msgs),
		toasts:        components.NewToastStack(st),
		historyView:   components.NewHistoryView(st),
		help:          components.NewHelpModal(st, keys.HelpSections()...),
		errorModal:    components.NewErrorModal(st),
		themePicker:   components.NewThemePicker(st, styles.ListAvailableThemes(), theme.Name),
	}
}

// Init starts the status watcher and subscribes to controller changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForChanges(m.ctrl.Changes()),
		m.watcher.FetchStatus(),
		m.watcher.StartPolling(),
		m.loadHistory(),
	)
}

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case controllerChangedMsg:
		return m, tea.Batch(m.syncController(), waitForChanges(m.ctrl.Changes()))

	case refreshDoneMsg:
		m.watcher.SetInterval(m.watchInterval)
		return m, tea.Batch(m.syncController(), m.loadHistory(), m.watcher.FetchStatus())

	case historyLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load sync history", "error", msg.err)
		}
		if msg.hasLast {
			m.lastSync, m.hasLastSync = msg.last, true
		}
		m.historyView.SetRecords(msg.records)
		return m, nil

	case polling.TickMsg:
		return m, m.watcher.OnTick()

	case polling.StatusUpdated:
		return m, m.applyStatus(msg)

	case components.CriticalErrorMsg:
		m.errorModal.Show(msg.Info)
		return m, nil

	case components.ThemeSelectedMsg:
		m.applyTheme(msg.ThemeName)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.button, cmd = m.button.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays take the keyboard while open.
	switch {
	case m.errorModal.IsVisible():
		m.errorModal.Update(msg)
		return m, nil
	case m.themePicker.IsVisible():
		var cmd tea.Cmd
		m.themePicker, cmd = m.themePicker.Update(msg)
		return m, cmd
	case m.help.IsVisible():
		m.help.Update(msg)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.startRefresh()
	case key.Matches(msg, m.keys.Dismiss):
		if pending := m.ctrl.PendingToasts(); len(pending) > 0 {
			m.ctrl.DismissToast(pending[0].ID)
		}
		m.toasts.SetToasts(m.ctrl.PendingToasts())
	case key.Matches(msg, m.keys.DismissAll):
		m.ctrl.DismissAllToasts()
		m.toasts.SetToasts(nil)
	case key.Matches(msg, m.keys.History):
		m.historyView.Toggle()
		if m.historyView.IsVisible() {
			return m, m.loadHistory()
		}
	case key.Matches(msg, m.keys.Theme):
		m.themePicker.Show()
	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
	default:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd
	}
	return m, nil
}

// startRefresh runs one attempt off the UI goroutine. The controller
// ignores the call while an attempt is already running. The status panel
// is watched at the fastest interval until the attempt is done.
func (m Model) startRefresh() tea.Cmd {
	if m.ctrl.IsRefreshing() {
		return nil
	}
	m.watcher.SetInterval(polling.MinInterval)
	ctrl, ctx := m.ctrl, m.ctx
	return tea.Batch(
		m.button.SetBusy(true),
		func() tea.Msg {
			ctrl.StartRefresh(ctx)
			return refreshDoneMsg{}
		},
	)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	m.watcher.Stop()
	m.ctrl.Close()
	return m, tea.Quit
}

// syncController copies the controller's observable state into the view.
func (m Model) syncController() tea.Cmd {
	m.toasts.SetToasts(m.ctrl.PendingToasts())
	return m.button.SetBusy(m.ctrl.IsRefreshing())
}

func (m *Model) applyStatus(msg polling.StatusUpdated) tea.Cmd {
	status, ok, failed := m.errs.ProcessUpdate(msg)
	if ok {
		m.status, m.hasStatus = status, true
	}
	m.statusBar.SetState(m.errs.ConnectionState())
	if !failed {
		return nil
	}

	m.logger.Warn("status fetch failed", "error", msg.Err, "consecutive", m.errs.ConsecutiveErrors())
	// Only the first failure in a row opens the modal.
	if m.errs.ConsecutiveErrors() > 1 {
		return nil
	}
	return components.NewCriticalErrorCmd(msg.Err)
}

func (m *Model) applyTheme(name string) {
	theme, err := styles.GetThemeByName(name)
	if err != nil {
		m.notice = "unknown theme " + strconv.Quote(name)
		return
	}

	st := styles.NewStyles(theme)
	m.styles = st
	m.statusBar.SetStyles(st)
	m.button.SetStyles(st)
	m.toasts.SetStyles(st)
	m.historyView.SetStyles(st)
	m.help.SetStyles(st)
	m.errorModal.SetStyles(st)
	m.themePicker.SetCurrent(name, st)
	m.notice = ""

	if m.saveTheme == nil {
		return
	}
	if err := m.saveTheme(name); err != nil {
		m.logger.Error("failed to save theme", "theme", name, "error", err)
		m.notice = "theme not saved: " + err.Error()
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.statusBar.SetWidth(width)
	m.toasts.SetWidth(width / 2)
	m.historyView.SetSize(width, height/2)
	m.help.SetSize(width, height)
	m.errorModal.SetSize(width, height)
	m.themePicker.SetSize(width, height)
}

func (m Model) loadHistory() tea.Cmd {
	h := m.history
	if h == nil {
		return nil
	}
	return func() tea.Msg {
		last, ok, err := h.LastSync()
		records, aerr := h.Attempts(historyLimit)
		return historyLoadedMsg{last: last, hasLast: ok, records: records, err: errors.Join(err, aerr)}
	}
}

func waitForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return controllerChangedMsg{}
	}
}

// View renders the application UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.errorModal.IsVisible():
		return m.errorModal.View()
	case m.themePicker.IsVisible():
		return m.themePicker.View()
	case m.help.IsVisible():
		return m.help.View()
	}

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.styles.Header.Render("Planner data refresh"),
		" ",
		m.button.View(),
	)
	parts := []string{header, m.styles.Panel.Render(m.statusView())}
	if hv := m.historyView.View(); hv != "" {
		parts = append(parts, hv)
	}
	if tv := m.toasts.View(); tv != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, tv))
	}
	if m.notice != "" {
		parts = append(parts, m.styles.Warning.Render(m.notice))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if m.height > 1 {
		body = lipgloss.NewStyle().Height(m.height - 1).Render(body)
	}
	return body + "\n" + m.statusBar.View()
}

func (m Model) statusView() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(m.styles.Label.Width(12).Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	if !m.hasStatus {
		b.WriteString(m.styles.Muted.Render("Waiting for refresh status..."))
		b.WriteString("\n")
	} else {
		s := m.status
		row("State", m.stateStyle(s.State).Render(string(s.State)))
		row("Started", m.styles.Value.Render(orDash(s.StartedAt)))
		row("Finished", m.styles.Value.Render(orDash(s.FinishedAt)))
		row("Updated", m.styles.Value.Render(strconv.Itoa(s.UpdatedRecords)))
		row("Last error", m.styles.Value.Render(orDash(s.LastError)))
	}

	if m.errs.HasError() {
		style := m.styles.Error
		if m.errs.IsRecoverable() {
			style = m.styles.Warning
		}
		b.WriteString(style.Render(m.errs.RecoveryMessage()))
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render(m.errs.LastErrorTime().Local().Format(time.TimeOnly) + " " + m.errs.ErrorMessage()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(m.msgs.LastSync(m.lastSyncLabel())))
	return b.String()
}

func (m Model) stateStyle(s planner.RefreshState) lipgloss.Style {
	switch s {
	case planner.StateSuccess:
		return m.styles.Success
	case planner.StateFailure:
		return m.styles.Error
	case planner.StateStale:
		return m.styles.Warning
	default:
		return m.styles.Info
	}
}

func (m Model) lastSyncLabel() string {
	if !m.hasLastSync {
		return ""
	}
	if m.lastSync.FinishedAt != nil && *m.lastSync.FinishedAt != "" {
		return *m.lastSync.FinishedAt
	}
	return m.lastSync.RecordedAt.Local().Format(time.DateTime)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
