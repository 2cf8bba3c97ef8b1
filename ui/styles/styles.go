package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/internal/markup"
)

var (
	accent    = lipgloss.Color("62")
	highlight = lipgloss.Color("214")
	muted     = lipgloss.Color("241")
	link      = lipgloss.Color("39")
	success   = lipgloss.Color("72")
)

func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 1)
}

func BadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(accent).
		Bold(true).
		Padding(0, 1)
}

func SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Italic(true).
		Padding(0, 1)
}

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(max(width-4, 10))
}

// ButtonStyle is the execute affordance; busy renders it disabled.
func ButtonStyle(busy bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		Bold(true)
	if busy {
		return s.Foreground(muted).BorderForeground(muted)
	}
	return s.Foreground(success).BorderForeground(success)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func NoticeStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("203")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("203")).
		Padding(0, 1).
		Width(max(width-2, 10))
}

func PaneStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(max(width-2, 10))
}

func PaneTitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Underline(true)
}

func StepStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))
}

// EmphasizedStepStyle marks a reasoning step that carries the grip length.
func EmphasizedStepStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(highlight).
		Bold(true)
}

func RecommendationStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(success).
		Bold(true)
}

func LinkStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(link).
		Underline(true)
}

func ToolHeaderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237")).
		Bold(true).
		Padding(0, 1).
		Width(width)
}

func FieldLabelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(width)
}

// ValueBoxStyle frames a field value. Highlighted values get a thick border
// so they stand out without color.
func ValueBoxStyle(highlighted bool, width int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(0, 1).
		Width(width)
	if highlighted {
		return s.Border(lipgloss.ThickBorder()).
			BorderForeground(highlight).
			Foreground(highlight).
			Bold(true)
	}
	return s.Border(lipgloss.NormalBorder()).
		BorderForeground(muted)
}

func NoteBadgeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("16")).
		Background(highlight).
		Padding(0, 1)
}

func FinalActionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Italic(true)
}

// InsertStyle is the static insert affordance at the foot of the panel.
func InsertStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("230")).
		Background(success).
		Bold(true).
		Padding(0, 2)
}

// SpanStyle maps markup styles onto terminal attributes.
func SpanStyle(style markup.Style) lipgloss.Style {
	s := lipgloss.NewStyle()
	if style.Has(markup.Bold) {
		s = s.Bold(true)
	}
	if style.Has(markup.Italic) {
		s = s.Italic(true)
	}
	if style.Has(markup.Code) {
		s = s.Foreground(highlight).Background(lipgloss.Color("236"))
	}
	return s
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1)
}
