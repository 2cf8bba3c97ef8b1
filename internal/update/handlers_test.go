package update

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/cadcopilot/internal/core"
	"github.com/Rorical/cadcopilot/internal/eventbus"
	"github.com/Rorical/cadcopilot/internal/models"
)

type recordingExecutor struct {
	sent []string
	err  error
}

func (r *recordingExecutor) Execute(instruction string) error {
	r.sent = append(r.sent, instruction)
	return r.err
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestEnterExecutes(t *testing.T) {
	ex := &recordingExecutor{}
	m := &models.AppModel{Instruction: "Insert screw for Top Die Shoe"}

	cmd, consumed := HandleKeyMsg(m, enter, NewKeyMap(), ex)

	assert.Nil(t, cmd)
	assert.True(t, consumed)
	assert.Equal(t, []string{"Insert screw for Top Die Shoe"}, ex.sent)
}

func TestEnterWithEmptyInstructionIsNoop(t *testing.T) {
	ex := &recordingExecutor{}
	m := &models.AppModel{Instruction: "", Status: StatusReady}

	_, consumed := HandleKeyMsg(m, enter, NewKeyMap(), ex)

	assert.True(t, consumed)
	assert.Empty(t, ex.sent)
	assert.Equal(t, StatusReady, m.Status)
}

func TestEnterWithWhitespaceInstructionExecutes(t *testing.T) {
	ex := &recordingExecutor{}
	m := &models.AppModel{Instruction: " ", Status: StatusReady}

	_, consumed := HandleKeyMsg(m, enter, NewKeyMap(), ex)

	assert.True(t, consumed)
	assert.Equal(t, []string{" "}, ex.sent)
}

func TestEnterWhileBusyIsRefused(t *testing.T) {
	ex := &recordingExecutor{}
	m := &models.AppModel{
		Instruction: "again",
		Request:     models.RequestSnapshot{Lifecycle: models.InFlight},
	}

	HandleKeyMsg(m, enter, NewKeyMap(), ex)

	assert.Empty(t, ex.sent)
	assert.Equal(t, StatusBusy, m.Status)
}

func TestEnterReportsSendError(t *testing.T) {
	ex := &recordingExecutor{err: eventbus.ErrCoreFull}
	m := &models.AppModel{Instruction: "x"}

	HandleKeyMsg(m, enter, NewKeyMap(), ex)

	assert.Contains(t, m.Status, eventbus.ErrCoreFull.Error())
}

func TestQuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		cmd, consumed := HandleKeyMsg(&models.AppModel{}, msg, NewKeyMap(), &recordingExecutor{})
		require.NotNil(t, cmd, msg.String())
		assert.True(t, consumed)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestTypingIsLeftToEditor(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	cmd, consumed := HandleKeyMsg(&models.AppModel{}, msg, NewKeyMap(), &recordingExecutor{})
	assert.Nil(t, cmd)
	assert.False(t, consumed)
}

func TestHandleCoreEventStatus(t *testing.T) {
	found := &models.RecommendationResponse{Found: true}
	negative := &models.RecommendationResponse{Found: false, Message: "Backend error."}

	tests := []struct {
		name   string
		event  eventbus.StateUpdateEvent
		status string
	}{
		{"idle", eventbus.StateUpdateEvent{}, StatusReady},
		{"in flight", eventbus.StateUpdateEvent{Snapshot: models.RequestSnapshot{Lifecycle: models.InFlight}}, StatusComputing},
		{"found", eventbus.StateUpdateEvent{Snapshot: models.RequestSnapshot{Lifecycle: models.Settled, Response: found}}, "Recommendation ready"},
		{"negative", eventbus.StateUpdateEvent{Snapshot: models.RequestSnapshot{Lifecycle: models.Settled, Response: negative}}, "No recommendation"},
		{"overlap", eventbus.StateUpdateEvent{Err: core.ErrRequestInFlight}, StatusBusy},
		{"other error", eventbus.StateUpdateEvent{Err: errors.New("boom")}, "Error: boom"},
		{"empty keeps status", eventbus.StateUpdateEvent{Err: core.ErrEmptyInstruction}, "unchanged"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &models.AppModel{Status: "unchanged"}
			HandleCoreEvent(m, CoreEventMsg{Event: tt.event})
			assert.Equal(t, tt.status, m.Status)
			assert.Equal(t, tt.event.Snapshot, m.Request)
		})
	}
}

func TestHandleUpdateWindowSize(t *testing.T) {
	m := &models.AppModel{}
	_, consumed := HandleUpdate(m, tea.WindowSizeMsg{Width: 120, Height: 40}, NewKeyMap(), &recordingExecutor{})
	assert.False(t, consumed)
	assert.Equal(t, 120, m.Width)
	assert.Equal(t, 40, m.Height)
}

func TestKeyMapHelp(t *testing.T) {
	k := NewKeyMap()
	assert.Len(t, k.ShortHelp(), 3)
	assert.Len(t, k.FullHelp(), 3)
}
