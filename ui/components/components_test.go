package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/cadcopilot/internal/markup"
	"github.com/Rorical/cadcopilot/internal/view"
)

func panelWith(fields ...view.FieldRow) view.Panel {
	return view.Panel{
		Guide: view.Guide{
			HelpURL: "https://cad.onshape.com/help",
			Steps:   []markup.Line{markup.Parse("Open the <b>Insert</b> menu")},
		},
		ToolName:    "Fastener",
		Fields:      fields,
		FinalAction: "Confirm placement",
		InsertLabel: view.InsertLabel,
	}
}

func TestRenderPanelRowsInOrder(t *testing.T) {
	var fields []view.FieldRow
	for i := 0; i < 7; i++ {
		fields = append(fields, view.FieldRow{
			Label:       fmt.Sprintf("Label%d", i),
			Value:       fmt.Sprintf("Value%d", i),
			Highlighted: i%3 == 0,
		})
	}
	out := RenderPanel(panelWith(fields...), 80)

	last := -1
	for _, f := range fields {
		idx := strings.Index(out, f.Label)
		require.GreaterOrEqual(t, idx, 0, f.Label)
		assert.Greater(t, idx, last, "rows out of order at %s", f.Label)
		last = idx
	}

	// Highlighted boxes use the thick border, the others the normal one.
	assert.Equal(t, 3, strings.Count(out, "┏"))
	assert.Equal(t, 4, strings.Count(out, "┌"))
}

func TestRenderPanelSections(t *testing.T) {
	out := RenderPanel(panelWith(), 80)

	for _, want := range []string{GuideTitle, view.HelpLabel, "Insert", "Fastener", "Confirm placement", view.InsertLabel} {
		assert.Contains(t, out, want)
	}
	assert.Zero(t, strings.Count(out, "┌"))
	assert.Zero(t, strings.Count(out, "┏"))

	guide := strings.Index(out, GuideTitle)
	tool := strings.Index(out, "Fastener")
	action := strings.Index(out, "Confirm placement")
	assert.Less(t, guide, tool)
	assert.Less(t, tool, action)
}

func TestRenderPanelWithoutHelpURL(t *testing.T) {
	p := panelWith()
	p.Guide.HelpURL = ""
	assert.NotContains(t, RenderPanel(p, 80), view.HelpLabel)
}

func TestRenderFieldNote(t *testing.T) {
	out := RenderField(view.FieldRow{Label: "Length", Value: "16 mm", Note: "AI Calculated"}, 70)
	assert.Contains(t, out, "AI Calculated")
	assert.Contains(t, out, "16 mm")
}

func TestRenderReasoningEmphasis(t *testing.T) {
	r := view.Reasoning{
		TargetPart: "Top Die Shoe",
		Steps: []view.ReasoningStep{
			{Text: "Detected part"},
			{Text: "Grip Length = 12mm", Emphasized: true},
			{Text: "Selected M6"},
		},
		Title:        "M6 Socket Screw",
		Subtitle:     "Socket Head Cap Screw",
		PurchaseLink: "https://www.mcmaster.com/",
	}
	out := RenderReasoning(r, 80)

	assert.Equal(t, 1, strings.Count(out, emphasizedBullet))
	assert.Equal(t, 2, strings.Count(out, stepBullet))
	for _, want := range []string{ReasoningTitle, "Target: Top Die Shoe", RecommendationLabel, "M6 Socket Screw", "Socket Head Cap Screw", "https://www.mcmaster.com/"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "Detected part"), strings.Index(out, RecommendationLabel))
}

func TestRenderResultLayout(t *testing.T) {
	result := &view.Result{
		Reasoning: view.Reasoning{Steps: []view.ReasoningStep{{Text: "a"}}, Title: "t"},
		Panel:     panelWith(view.FieldRow{Label: "L", Value: "V"}),
	}

	wide := strings.Split(RenderResult(result, 140), "\n")
	assert.Equal(t, 2, strings.Count(wide[0], "╭"))

	narrow := strings.Split(RenderResult(result, 70), "\n")
	assert.Equal(t, 1, strings.Count(narrow[0], "╭"))

	assert.Empty(t, RenderResult(nil, 140))
}

func TestRenderEditor(t *testing.T) {
	idle := RenderEditor("Insert screw", view.Editor{ButtonLabel: view.ExecuteLabel}, "*", 80)
	assert.Contains(t, idle, view.ExecuteLabel)
	assert.NotContains(t, idle, "*")

	busy := RenderEditor("Insert screw", view.Editor{Busy: true, ButtonLabel: view.ComputingLabel}, "*", 80)
	assert.Contains(t, busy, "* "+view.ComputingLabel)
}

func TestRenderNoticeAndStatus(t *testing.T) {
	assert.Empty(t, RenderNotice("", 80))
	assert.Contains(t, RenderNotice("Backend error.", 80), "Backend error.")

	status := RenderStatus(strings.Repeat("x", 100), 20)
	assert.Contains(t, status, ellipsis)
}

func TestRenderLineLinks(t *testing.T) {
	out := RenderLine(markup.Parse(`See <a href="https://x.io/h">the <b>help</b></a> page`))

	// The target follows the whole link once.
	assert.Equal(t, 1, strings.Count(out, "<https://x.io/h>"))
	assert.Less(t, strings.Index(out, "help"), strings.Index(out, "<https://x.io/h>"))
	assert.Less(t, strings.Index(out, "<https://x.io/h>"), strings.Index(out, "page"))
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("lab")
	assert.Contains(t, out, AppTitle)
	assert.Contains(t, out, AppBadge)
	assert.Contains(t, out, AppSubtitle+" · lab")
}
