package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/plantingplanner/planner-tui/internal/store"
	"github.com/plantingplanner/planner-tui/internal/toast"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

func TestMakeColumns(t *testing.T) {
	tests := []struct {
		name  string
		width int
	}{
		{"wide", 160},
		{"standard", 80},
		{"narrow", 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := makeColumns(historyColumns, tt.width)
			if len(cols) != len(historyColumns) {
				t.Fatalf("got %d columns, want %d", len(cols), len(historyColumns))
			}
			for i, c := range cols {
				if c.Title != historyColumns[i].Title {
					t.Errorf("column %d title = %q", i, c.Title)
				}
				if c.Width < 1 {
					t.Errorf("column %q has width %d", c.Title, c.Width)
				}
			}
		})
	}
}

func TestMakeColumns_FitsAvailableWidth(t *testing.T) {
	width := 100
	total := 0
	for _, c := range makeColumns(historyColumns, width) {
		total += c.Width + cellPadding
	}
	if total > width {
		t.Errorf("columns need %d cells, only %d available", total, width)
	}
}

func TestMakeColumns_RespectsMinimum(t *testing.T) {
	cols := makeColumns(historyColumns, 60)
	if cols[0].Width < historyColumns[0].MinWidth {
		t.Errorf("Finished column width = %d, want at least %d", cols[0].Width, historyColumns[0].MinWidth)
	}
}

func TestHistoryView_Visibility(t *testing.T) {
	h := NewHistoryView(styles.DefaultStyles())
	if h.IsVisible() || h.View() != "" {
		t.Fatal("history should start hidden")
	}

	h.Toggle()
	if !h.IsVisible() {
		t.Error("Toggle() should show the history")
	}
	h.Hide()
	if h.IsVisible() {
		t.Error("Hide() should hide the history")
	}
}

func TestHistoryView_EmptyState(t *testing.T) {
	h := NewHistoryView(styles.DefaultStyles())
	h.Show()

	if view := h.View(); !strings.Contains(view, "No refresh attempts") {
		t.Errorf("empty history should say so, got %q", view)
	}
}

func TestHistoryView_Rows(t *testing.T) {
	h := NewHistoryView(styles.DefaultStyles())
	h.SetSize(140, 20)
	h.SetRecords([]store.AttemptRecord{
		{Seq: 2, Variant: toast.Error, Message: "data refresh failed", Detail: strPtr("boom"), FinishedAt: time.Now()},
		{Seq: 1, Variant: toast.Success, Message: "data refresh completed", FinishedAt: time.Now().Add(-time.Hour)},
	})
	h.Show()

	view := h.View()
	for _, want := range []string{"Refresh history", "data refresh failed", "boom", "success"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	if len(h.Records()) != 2 {
		t.Errorf("Records() = %d entries, want 2", len(h.Records()))
	}
}

func TestHistoryView_HiddenIgnoresKeys(t *testing.T) {
	h := NewHistoryView(styles.DefaultStyles())
	if _, cmd := h.Update(tea.KeyMsg{Type: tea.KeyDown}); cmd != nil {
		t.Error("hidden history should not handle keys")
	}
}
