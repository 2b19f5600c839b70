package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plantingplanner/planner-tui/internal/toast"
	"github.com/plantingplanner/planner-tui/internal/ui/styles"
)

const (
	toastMinWidth = 24
	toastMaxWidth = 60
)

var toastIcons = map[toast.Variant]string{
	toast.Success: "✓",
	toast.Error:   "✗",
	toast.Warning: "!",
	toast.Info:    "i",
}

// ToastStack renders the visible toasts, oldest at the top.
type ToastStack struct {
	styles *styles.Styles
	toasts []toast.Toast
	width  int
}

func NewToastStack(s *styles.Styles) *ToastStack {
	return &ToastStack{styles: s, width: toastMaxWidth}
}

func (t *ToastStack) SetStyles(s *styles.Styles) { t.styles = s }

// SetToasts replaces the rendered toasts with a snapshot from the store.
func (t *ToastStack) SetToasts(toasts []toast.Toast) { t.toasts = toasts }

func (t *ToastStack) Len() int { return len(t.toasts) }

// SetWidth bounds the toast boxes to the available terminal width.
func (t *ToastStack) SetWidth(width int) {
	t.width = min(max(width, toastMinWidth), toastMaxWidth)
}

// View stacks one bordered box per toast, right-aligned. An empty stack
// renders nothing.
func (t *ToastStack) View() string {
	if len(t.toasts) == 0 {
		return ""
	}

	inner := t.width - 2 // border
	boxes := make([]string, 0, len(t.toasts))
	for _, item := range t.toasts {
		var b strings.Builder
		b.WriteString(toastIcons[item.Variant] + " " + item.Message)
		if detail := item.DetailText(); detail != "" {
			b.WriteString("\n")
			b.WriteString(t.styles.ToastDetail.Render(detail))
		}
		boxes = append(boxes, t.styles.Toast(item.Variant).Width(inner).Render(b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}
