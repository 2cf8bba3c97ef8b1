package models

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Instruction string          // Current editor value
	Request     RequestSnapshot // Last state pushed by core
	Status      string          // Status bar text
	Width       int             // Terminal width
	Height      int             // Terminal height
	Deployment  string          // Active profile name shown in the header
}
