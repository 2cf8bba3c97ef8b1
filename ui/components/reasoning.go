package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/internal/view"
	"github.com/Rorical/cadcopilot/ui/styles"
)

const (
	ReasoningTitle      = "Reasoning Engine"
	RecommendationLabel = "Recommendation:"

	stepBullet       = "•"
	emphasizedBullet = "▶"
)

// RenderReasoning draws the reasoning pane of a found response.
func RenderReasoning(r view.Reasoning, width int) string {
	inner := max(width-4, 10)
	var b strings.Builder

	b.WriteString(styles.PaneTitleStyle().Render(ReasoningTitle))
	b.WriteString("\n")
	if r.TargetPart != "" {
		b.WriteString(styles.SubtitleStyle().UnsetPadding().Render("Target: " + r.TargetPart))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, step := range r.Steps {
		b.WriteString(renderStep(i+1, step, inner))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.PaneTitleStyle().Render(RecommendationLabel))
	b.WriteString("\n")
	b.WriteString(styles.RecommendationStyle().Width(inner).Render(r.Title))
	if r.Subtitle != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle().UnsetPadding().Width(inner).Render(r.Subtitle))
	}
	if r.PurchaseLink != "" {
		b.WriteString("\n")
		b.WriteString(styles.LinkStyle().Render(r.PurchaseLink))
	}

	return styles.PaneStyle(width).Render(b.String())
}

func renderStep(n int, step view.ReasoningStep, width int) string {
	bullet, style := stepBullet, styles.StepStyle()
	if step.Emphasized {
		bullet, style = emphasizedBullet, styles.EmphasizedStepStyle()
	}
	prefix := fmt.Sprintf("%s %d. ", bullet, n)
	body := style.Width(max(width-lipgloss.Width(prefix), 1)).Render(step.Text)
	return lipgloss.JoinHorizontal(lipgloss.Top, style.Render(prefix), body)
}
