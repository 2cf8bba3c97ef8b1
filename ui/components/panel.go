package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/internal/markup"
	"github.com/Rorical/cadcopilot/internal/view"
	"github.com/Rorical/cadcopilot/ui/styles"
)

const GuideTitle = "Navigation Guide"

// RenderPanel draws the simulated tool dialog: guide, tool header, one row
// per field, then the final action with the insert affordance.
func RenderPanel(p view.Panel, width int) string {
	inner := max(width-4, 10)
	sections := []string{
		renderGuide(p.Guide, inner),
		styles.ToolHeaderStyle(inner).Render(p.ToolName),
	}
	for _, f := range p.Fields {
		sections = append(sections, RenderField(f, inner))
	}
	sections = append(sections, renderFinalAction(p.FinalAction, p.InsertLabel, inner))

	return styles.PaneStyle(width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderGuide(g view.Guide, width int) string {
	title := styles.PaneTitleStyle().Render(GuideTitle)
	if g.HelpURL != "" {
		title += "  " + styles.LinkStyle().Render(view.HelpLabel) + " " + styles.SubtitleStyle().UnsetPadding().Render(g.HelpURL)
	}

	lines := []string{title}
	for _, step := range g.Steps {
		lines = append(lines, lipgloss.NewStyle().Width(width).Render(RenderLine(step)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// RenderField draws one label and value box. The note badge follows the box.
func RenderField(f view.FieldRow, width int) string {
	labelWidth := min(max(width/3, 8), 24)
	boxWidth := max(width-labelWidth-2, 6)
	note := ""
	if f.Note != "" {
		note = styles.NoteBadgeStyle().Render(f.Note)
		boxWidth = max(boxWidth-lipgloss.Width(note)-1, 6)
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.FieldLabelStyle(labelWidth).Render(f.Label),
		styles.ValueBoxStyle(f.Highlighted, boxWidth).Render(f.Value),
	)
	if note != "" {
		row = lipgloss.JoinHorizontal(lipgloss.Center, row, " ", note)
	}
	return row
}

func renderFinalAction(action, insert string, width int) string {
	button := styles.InsertStyle().Render(insert)
	text := styles.FinalActionStyle().Width(max(width-lipgloss.Width(button)-1, 1)).Render(action)
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Center, text, " ", button)
}

// RenderLine draws constrained markup. Links keep their target in brackets
// after the text since the terminal cannot follow them.
func RenderLine(line markup.Line) string {
	var b strings.Builder
	for i, span := range line {
		b.WriteString(styles.SpanStyle(span.Style).Render(span.Text))
		lastOfLink := span.Href != "" && (i == len(line)-1 || line[i+1].Href != span.Href)
		if lastOfLink {
			b.WriteString(" ")
			b.WriteString(styles.LinkStyle().Render("<" + span.Href + ">"))
		}
	}
	return b.String()
}
