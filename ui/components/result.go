package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/internal/view"
)

// SideBySideWidth is the narrowest terminal that shows both panes in a row.
const SideBySideWidth = 100

// RenderResult draws the two panes of a found response, side by side on
// wide terminals and stacked otherwise. A nil result renders nothing.
func RenderResult(result *view.Result, width int) string {
	if result == nil {
		return ""
	}
	if width >= SideBySideWidth {
		left := width * 2 / 5
		return lipgloss.JoinHorizontal(lipgloss.Top,
			RenderReasoning(result.Reasoning, left),
			RenderPanel(result.Panel, width-left),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderReasoning(result.Reasoning, width),
		RenderPanel(result.Panel, width),
	)
}
