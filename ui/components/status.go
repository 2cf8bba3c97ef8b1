package components

import (
	"github.com/muesli/reflow/truncate"

	"github.com/Rorical/cadcopilot/ui/styles"
)

const ellipsis = "…"

func RenderStatus(status string, width int) string {
	statusStyle := styles.StatusStyle(width)
	return statusStyle.Render(fit(status, width-2))
}

// RenderNotice draws the message of a negative response. It renders nothing
// for an empty notice.
func RenderNotice(notice string, width int) string {
	if notice == "" {
		return ""
	}
	return styles.NoticeStyle(width).Render(fit(notice, width-4))
}

func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), ellipsis)
}
