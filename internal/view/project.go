package view

import (
	"strings"

	"github.com/Rorical/cadcopilot/internal/markup"
	"github.com/Rorical/cadcopilot/internal/models"
)

// Project maps the lifecycle and the last response onto a Tree. It reads its
// inputs only and returns fresh slices, so callers may keep the response.
func Project(lifecycle models.Lifecycle, resp *models.RecommendationResponse, instruction string) Tree {
	tree := Tree{
		Editor: Editor{
			Instruction: instruction,
			ButtonLabel: ExecuteLabel,
		},
	}

	if lifecycle == models.InFlight {
		tree.Editor.Busy = true
		tree.Editor.ButtonLabel = ComputingLabel
		return tree
	}
	if resp == nil {
		return tree
	}
	if !resp.Found {
		tree.Notice = clean(resp.Message)
		return tree
	}

	tree.Result = &Result{
		Reasoning: projectReasoning(resp),
		Panel:     projectPanel(resp.OnshapeInstruction),
	}
	return tree
}

// FromSnapshot projects a state snapshot pushed by core.
func FromSnapshot(s models.RequestSnapshot, instruction string) Tree {
	return Project(s.Lifecycle, s.Response, instruction)
}

func projectReasoning(resp *models.RecommendationResponse) Reasoning {
	r := Reasoning{TargetPart: clean(resp.TargetPart)}
	if resp.Analysis != nil {
		r.Steps = make([]ReasoningStep, 0, len(resp.Analysis.Logic))
		for _, step := range resp.Analysis.Logic {
			r.Steps = append(r.Steps, ReasoningStep{
				Text:       clean(step),
				Emphasized: strings.Contains(step, EmphasisMarker),
			})
		}
	}
	if resp.Recommendation != nil {
		r.Title = clean(resp.Recommendation.Title)
		r.Subtitle = clean(resp.Recommendation.Subtitle)
		r.PurchaseLink = clean(resp.Recommendation.PurchaseLink)
	}
	return r
}

func projectPanel(in *models.OnshapeInstruction) Panel {
	p := Panel{InsertLabel: InsertLabel}
	if in == nil {
		return p
	}

	p.Guide.HelpURL = clean(in.HelpURL)
	p.Guide.Steps = make([]markup.Line, 0, len(in.NavigationSteps))
	for _, step := range in.NavigationSteps {
		p.Guide.Steps = append(p.Guide.Steps, markup.Parse(step))
	}

	p.ToolName = clean(in.ToolName)
	p.Fields = make([]FieldRow, 0, len(in.UIPanel))
	for _, f := range in.UIPanel {
		p.Fields = append(p.Fields, FieldRow{
			Label:       clean(f.Label),
			Value:       clean(f.Value),
			Highlighted: f.Highlight,
			Note:        clean(f.Note),
		})
	}
	p.FinalAction = clean(in.FinalAction)
	return p
}

func clean(s string) string {
	return strings.TrimSpace(markup.StripControl(s))
}
