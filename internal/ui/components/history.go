package components

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantingplanner/planner-tui/internal/store"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

// ColumnSpec defines a column with a percentage width and a minimum.
type ColumnSpec struct {
	Title    string
	WidthPct int
	MinWidth int
}

const cellPadding = 2

var historyColumns = []ColumnSpec{
	{Title: "Finished", WidthPct: 25, MinWidth: 19},
	{Title: "Result", WidthPct: 10, MinWidth: 7},
	{Title: "Message", WidthPct: 30, MinWidth: 12},
	{Title: "Detail", WidthPct: 35, MinWidth: 10},
}

// HistoryView is a scrollable table of recorded refresh attempts, newest
// first.
type HistoryView struct {
	styles  *styles.Styles
	table   table.Model
	records []store.AttemptRecord
	visible bool
	width   int
}

func NewHistoryView(s *styles.Styles) *HistoryView {
	h := &HistoryView{
		table: table.New(
			table.WithColumns(makeColumns(historyColumns, 80)),
			table.WithFocused(true),
			table.WithHeight(10),
		),
		width: 80,
	}
	h.SetStyles(s)
	return h
}

func (h *HistoryView) SetStyles(s *styles.Styles) {
	h.styles = s
	ts := table.DefaultStyles()
	ts.Header = ts.Header.BorderForeground(s.Theme.Border).Foreground(s.Theme.Primary)
	ts.Selected = s.Selected
	h.table.SetStyles(ts)
}

func (h *HistoryView) Show() { h.visible = true }
func (h *HistoryView) Hide() { h.visible = false }
func (h *HistoryView) Toggle() { h.visible = !h.visible }
func (h *HistoryView) IsVisible() bool { return h.visible }

// SetSize fits the table into width x height, keeping a line for the title.
func (h *HistoryView) SetSize(width, height int) {
	h.width = width
	h.table.SetColumns(makeColumns(historyColumns, width))
	h.table.SetHeight(max(height-2, 3))
}

// SetRecords replaces the table rows.
func (h *HistoryView) SetRecords(records []store.AttemptRecord) {
	h.records = records
	rows := make([]table.Row, len(records))
	for i, r := range records {
		detail := ""
		if r.Detail != nil {
			detail = *r.Detail
		}
		rows[i] = table.Row{
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Variant),
			r.Message,
			detail,
		}
	}
	h.table.SetRows(rows)
}

func (h *HistoryView) Records() []store.AttemptRecord { return h.records }

// Update forwards navigation keys to the table while visible.
func (h *HistoryView) Update(msg tea.Msg) (*HistoryView, tea.Cmd) {
	if !h.visible {
		return h, nil
	}
	var cmd tea.Cmd
	h.table, cmd = h.table.Update(msg)
	return h, cmd
}

func (h *HistoryView) View() string {
	if !h.visible {
		return ""
	}
	title := h.styles.Title.Render("Refresh history")
	if len(h.records) == 0 {
		return title + "\n" + h.styles.Muted.Render("No refresh attempts recorded yet.")
	}
	return title + "\n" + h.table.View()
}

// makeColumns turns percentage specs into absolute widths for width
// columns of terminal. Columns never shrink below their minimum; when the
// minimums overflow, the remaining columns absorb the difference.
func makeColumns(specs []ColumnSpec, width int) []table.Column {
	available := max(width-len(specs)*cellPadding, 0)

	widths := make([]int, len(specs))
	clamped := make([]bool, len(specs))
	total, flexTotal, lastFlex := 0, 0, -1
	for i, spec := range specs {
		w := available * spec.WidthPct / 100
		if w < spec.MinWidth {
			w = spec.MinWidth
			clamped[i] = true
		} else {
			flexTotal += w
			lastFlex = i
		}
		widths[i] = w
		total += w
	}

	if overflow := total - available; overflow > 0 && flexTotal > 0 {
		shrunk := 0
		for i := range widths {
			if clamped[i] {
				continue
			}
			reduction := overflow * widths[i] / flexTotal
			if i == lastFlex {
				reduction = overflow - shrunk
			}
			widths[i] = max(widths[i]-reduction, 1)
			shrunk += reduction
		}
	}

	columns := make([]table.Column, len(specs))
	for i, spec := range specs {
		columns[i] = table.Column{Title: spec.Title, Width: widths[i]}
	}
	return columns
}
