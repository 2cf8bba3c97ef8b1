// Package view projects request state onto the screen layout. Nothing here
// draws; ui/components turns a Tree into terminal output.
package view

import "github.com/Rorical/cadcopilot/internal/markup"

const (
	ExecuteLabel   = "Execute"
	ComputingLabel = "Computing..."
	InsertLabel    = "Insert"
	HelpLabel      = "Help ?"

	// EmphasisMarker is the substring that makes a reasoning step stand out.
	EmphasisMarker = "Grip Length"
)

// Tree is everything the screen shows for one state.
type Tree struct {
	Editor Editor
	Notice string  // negative-result message, empty when there is none
	Result *Result // nil unless the last response was found
}

type Editor struct {
	Instruction string
	Busy        bool
	ButtonLabel string
}

type Result struct {
	Reasoning Reasoning
	Panel     Panel
}

type Reasoning struct {
	TargetPart   string
	Steps        []ReasoningStep
	Title        string
	Subtitle     string
	PurchaseLink string
}

type ReasoningStep struct {
	Text       string
	Emphasized bool
}

// Panel is the simulated tool dialog, drawn top to bottom in field order.
type Panel struct {
	Guide       Guide
	ToolName    string
	Fields      []FieldRow
	FinalAction string
	InsertLabel string
}

type Guide struct {
	HelpURL string
	Steps   []markup.Line
}

type FieldRow struct {
	Label       string
	Value       string
	Highlighted bool
	Note        string
}
