// Package report turns a projected view into a document for one-shot
// output: Markdown rendered through glamour, or wrapped plain text.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Rorical/cadcopilot/internal/markup"
	"github.com/Rorical/cadcopilot/internal/view"
)

const (
	Title         = "CAD Copilot"
	DefaultWidth  = 80
	reasoningHead = "Reasoning Engine"
	guideHead     = "Navigation Guide"
)

// Markdown writes tree as a Markdown document. Text from the response is
// escaped, so markup comes only from the layout and parsed guide steps.
func Markdown(tree view.Tree) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Title)
	if tree.Editor.Instruction != "" {
		fmt.Fprintf(&b, "> **Instruction:** %s\n\n", inline(tree.Editor.Instruction))
	}
	if tree.Editor.Busy {
		fmt.Fprintf(&b, "_%s_\n", inline(tree.Editor.ButtonLabel))
		return b.String()
	}
	if tree.Notice != "" {
		fmt.Fprintf(&b, "**%s**\n", inline(tree.Notice))
	}
	if tree.Result == nil {
		return b.String()
	}

	r := tree.Result.Reasoning
	fmt.Fprintf(&b, "## %s\n\n", reasoningHead)
	if r.TargetPart != "" {
		fmt.Fprintf(&b, "_Target: %s_\n\n", inline(r.TargetPart))
	}
	for i, step := range r.Steps {
		text := inline(step.Text)
		if step.Emphasized {
			text = "**" + text + "**"
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, text)
	}
	fmt.Fprintf(&b, "\n**Recommendation:** %s\n", inline(r.Title))
	if r.Subtitle != "" {
		fmt.Fprintf(&b, "\n%s\n", inline(r.Subtitle))
	}
	if r.PurchaseLink != "" {
		if target, ok := markup.SafeURL(r.PurchaseLink); ok {
			fmt.Fprintf(&b, "\n<%s>\n", target)
		} else {
			fmt.Fprintf(&b, "\n%s\n", inline(r.PurchaseLink))
		}
	}

	p := tree.Result.Panel
	fmt.Fprintf(&b, "\n## %s\n\n", guideHead)
	if target, ok := markup.SafeURL(p.Guide.HelpURL); ok {
		fmt.Fprintf(&b, "[%s](%s)\n\n", inline(view.HelpLabel), target)
	}
	for _, step := range p.Guide.Steps {
		fmt.Fprintf(&b, "- %s\n", step.Markdown())
	}

	fmt.Fprintf(&b, "\n### %s\n\n", inline(p.ToolName))
	if len(p.Fields) > 0 {
		b.WriteString("| Field | Value | Note |\n|---|---|---|\n")
		for _, f := range p.Fields {
			value := inline(f.Value)
			if f.Highlighted {
				value = "**" + value + "**"
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", inline(f.Label), value, inline(f.Note))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s %s\n", inline(p.FinalAction), markup.CodeSpan("[ "+p.InsertLabel+" ]"))

	return b.String()
}

// inline escapes s for a single markdown line.
func inline(s string) string {
	return markup.EscapeMarkdown(strings.ReplaceAll(s, "\n", " "))
}

// Render draws the Markdown report for a terminal of the given width.
func Render(tree view.Tree, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(Markdown(tree))
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return out, nil
}

// Text writes tree as plain text wrapped to width.
func Text(tree view.Tree, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	var b strings.Builder

	line := func(format string, args ...any) {
		b.WriteString(wordwrap.String(fmt.Sprintf(format, args...), width))
		b.WriteString("\n")
	}

	if tree.Editor.Busy {
		line("%s", tree.Editor.ButtonLabel)
		return b.String()
	}
	if tree.Notice != "" {
		line("%s", tree.Notice)
	}
	if tree.Result == nil {
		return b.String()
	}

	r := tree.Result.Reasoning
	line("%s", reasoningHead)
	if r.TargetPart != "" {
		line("Target: %s", r.TargetPart)
	}
	for i, step := range r.Steps {
		marker := " "
		if step.Emphasized {
			marker = "*"
		}
		line("%s %d. %s", marker, i+1, step.Text)
	}
	line("Recommendation: %s", r.Title)
	if r.Subtitle != "" {
		line("%s", r.Subtitle)
	}
	if r.PurchaseLink != "" {
		line("%s", r.PurchaseLink)
	}

	p := tree.Result.Panel
	b.WriteString("\n")
	line("%s", guideHead)
	if p.Guide.HelpURL != "" {
		line("%s %s", view.HelpLabel, p.Guide.HelpURL)
	}
	for _, step := range p.Guide.Steps {
		line("  %s", step.Plain())
	}
	b.WriteString("\n")
	line("[%s]", p.ToolName)
	for _, f := range p.Fields {
		value := f.Value
		if f.Highlighted {
			value = "*" + value + "*"
		}
		if f.Note != "" {
			line("  %s: %s (%s)", f.Label, value, f.Note)
			continue
		}
		line("  %s: %s", f.Label, value)
	}
	line("%s [%s]", p.FinalAction, p.InsertLabel)

	return b.String()
}
