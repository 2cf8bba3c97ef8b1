package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/ui/styles"
)

const (
	AppTitle    = "CAD Copilot"
	AppBadge    = "DEMO"
	AppSubtitle = "Context-Aware Assembly Assistant"
)

// RenderHeader draws the title bar. profile is shown when set.
func RenderHeader(profile string) string {
	title := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.HeaderStyle().Render(AppTitle),
		styles.BadgeStyle().Render(AppBadge),
	)
	sub := AppSubtitle
	if profile != "" {
		sub += " · " + profile
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, styles.SubtitleStyle().Render(sub))
}
