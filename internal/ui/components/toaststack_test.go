package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/toast"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

func strPtr(s string) *string { return &s }

func TestToastStack_EmptyRendersNothing(t *testing.T) {
	stack := NewToastStack(styles.DefaultStyles())

	if view := stack.View(); view != "" {
		t.Errorf("empty stack should render nothing, got %q", view)
	}
}

func TestToastStack_RendersEveryToastInOrder(t *testing.T) {
	stack := NewToastStack(styles.DefaultStyles())
	stack.SetToasts([]toast.Toast{
		{ID: "1", Variant: toast.Info, Message: "refresh started"},
		{ID: "2", Variant: toast.Success, Message: "data refresh completed", Detail: strPtr("3 records have been updated.")},
	})

	view := stack.View()
	first := strings.Index(view, "refresh started")
	second := strings.Index(view, "data refresh completed")
	if first < 0 || second < 0 {
		t.Fatalf("view should contain both toasts, got %q", view)
	}
	if first > second {
		t.Error("older toasts should render above newer ones")
	}
	if !strings.Contains(view, "3 records have been updated.") {
		t.Error("view should contain the toast detail")
	}
	if stack.Len() != 2 {
		t.Errorf("Len() = %d, want 2", stack.Len())
	}
}

func TestToastStack_VariantIcons(t *testing.T) {
	tests := []struct {
		variant toast.Variant
		icon    string
	}{
		{toast.Success, "✓"},
		{toast.Error, "✗"},
		{toast.Warning, "!"},
		{toast.Info, "i"},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant), func(t *testing.T) {
			stack := NewToastStack(styles.DefaultStyles())
			stack.SetToasts([]toast.Toast{{ID: "1", Variant: tt.variant, Message: "msg"}})
			if view := stack.View(); !strings.Contains(view, tt.icon+" msg") {
				t.Errorf("view should contain %q, got %q", tt.icon+" msg", view)
			}
		})
	}
}

func TestToastStack_WidthBounds(t *testing.T) {
	stack := NewToastStack(styles.DefaultStyles())
	stack.SetToasts([]toast.Toast{{ID: "1", Variant: toast.Error, Message: "data refresh failed"}})

	stack.SetWidth(500)
	if w := lipgloss.Width(stack.View()); w != toastMaxWidth {
		t.Errorf("wide terminal: width = %d, want %d", w, toastMaxWidth)
	}

	stack.SetWidth(10)
	if w := lipgloss.Width(stack.View()); w != toastMinWidth {
		t.Errorf("narrow terminal: width = %d, want %d", w, toastMinWidth)
	}
}
