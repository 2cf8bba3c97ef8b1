package models

// BackendErrorMessage is the message carried by the response synthesized when
// the recommendation service cannot be reached or decoded.
const BackendErrorMessage = "Backend error."

// RecommendationResponse is the body returned by the recommendation service.
type RecommendationResponse struct {
	Found              bool                `json:"found"`
	Message            string              `json:"message,omitempty"`
	TargetPart         string              `json:"target_part,omitempty"`
	Analysis           *Analysis           `json:"analysis,omitempty"`
	Recommendation     *Recommendation     `json:"recommendation,omitempty"`
	OnshapeInstruction *OnshapeInstruction `json:"onshape_instruction,omitempty"`
}

// Analysis holds the reasoning steps that produced the recommendation.
type Analysis struct {
	Logic []string `json:"logic"`
}

type Recommendation struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle,omitempty"`
	PurchaseLink string `json:"purchase_link,omitempty"`
}

// OnshapeInstruction describes how to reach and fill the tool dialog in the
// host CAD application.
type OnshapeInstruction struct {
	HelpURL         string       `json:"help_url,omitempty"`
	NavigationSteps []string     `json:"navigation_steps"`
	ToolName        string       `json:"tool_name"`
	UIPanel         []PanelField `json:"ui_panel"`
	FinalAction     string       `json:"final_action"`
}

// PanelField is one labeled value of the simulated tool dialog.
type PanelField struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Highlight bool   `json:"highlight,omitempty"`
	Note      string `json:"note,omitempty"`
}

// BackendErrorResponse is the uniform negative result used for every
// transport or decode failure.
func BackendErrorResponse() RecommendationResponse {
	return RecommendationResponse{Found: false, Message: BackendErrorMessage}
}

// Complete reports whether a found response carries every section the
// renderer needs. Negative responses are always complete.
func (r RecommendationResponse) Complete() bool {
	if !r.Found {
		return true
	}
	return r.Analysis != nil && r.Recommendation != nil && r.OnshapeInstruction != nil
}
