package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/cadcopilot/internal/models"
)

// HandleUpdate applies msg to the UI state. The bool result reports whether
// msg was consumed and must not reach the widgets.
func HandleUpdate(appModel *models.AppModel, msg tea.Msg, keys KeyMap, ex Executor) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsg(appModel, msg, keys, ex)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil, false
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg), true
	}
	return nil, false
}
