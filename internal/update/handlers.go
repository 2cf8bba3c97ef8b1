package update

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/cadcopilot/internal/core"
	"github.com/Rorical/cadcopilot/internal/eventbus"
	"github.com/Rorical/cadcopilot/internal/models"
)

const (
	StatusReady     = "Ready"
	StatusComputing = "Computing recommendation"
	StatusBusy      = "A request is already in flight"
)

// Executor forwards an instruction to core.
type Executor interface {
	Execute(instruction string) error
}

// HandleKeyMsg handles the keys the client reacts to. It reports whether the
// key was consumed; unconsumed keys belong to the editor.
func HandleKeyMsg(appModel *models.AppModel, keyMsg tea.KeyMsg, keys KeyMap, ex Executor) (tea.Cmd, bool) {
	switch {
	case key.Matches(keyMsg, keys.Quit):
		return tea.Quit, true
	case key.Matches(keyMsg, keys.Execute):
		if appModel.Instruction == "" {
			return nil, true
		}
		if appModel.Request.Busy() {
			appModel.Status = StatusBusy
			return nil, true
		}
		if err := ex.Execute(appModel.Instruction); err != nil {
			appModel.Status = "Error sending instruction: " + err.Error()
		}
		return nil, true
	}
	return nil, false
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Request = event.Snapshot

		switch {
		case errors.Is(event.Err, core.ErrEmptyInstruction):
			// Nothing to say for an empty editor.
		case errors.Is(event.Err, core.ErrRequestInFlight):
			appModel.Status = StatusBusy
		case event.Err != nil:
			appModel.Status = "Error: " + event.Err.Error()
		case event.Snapshot.Busy():
			appModel.Status = StatusComputing
		default:
			appModel.Status = settledStatus(event.Snapshot)
		}
	}
	return nil
}

func settledStatus(s models.RequestSnapshot) string {
	if s.Response == nil {
		return StatusReady
	}
	if s.Response.Found {
		return "Recommendation ready"
	}
	return "No recommendation"
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}
