package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/internal/view"
	"github.com/Rorical/cadcopilot/ui/styles"
)

// RenderEditor draws the instruction field next to the execute button.
// input is the editor widget's view; spin is prepended to the label while
// busy.
func RenderEditor(input string, editor view.Editor, spin string, width int) string {
	label := editor.ButtonLabel
	if editor.Busy && spin != "" {
		label = spin + " " + label
	}
	button := styles.ButtonStyle(editor.Busy).Render(label)

	field := styles.InputStyle(width - lipgloss.Width(button)).Render(input)
	return lipgloss.JoinHorizontal(lipgloss.Top, field, button)
}
