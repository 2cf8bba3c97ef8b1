package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/cadcopilot/internal/dispatcher"
	"github.com/Rorical/cadcopilot/internal/models"
	"github.com/Rorical/cadcopilot/internal/update"
	"github.com/Rorical/cadcopilot/internal/view"
	"github.com/Rorical/cadcopilot/ui/components"
	"github.com/Rorical/cadcopilot/ui/styles"
)

const (
	Placeholder = "Command: e.g. Insert screw for Top Die Shoe"

	defaultWidth  = 80
	defaultHeight = 24
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	keys       update.KeyMap
	input      textinput.Model
	spinner    spinner.Model
	result     viewport.Model
	help       help.Model
}

func NewAppModel(disp *dispatcher.EventDispatcher, profile string) *AppModel {
	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = Placeholder
	input.CharLimit = 500
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	result := viewport.New(defaultWidth, defaultHeight)
	result.MouseWheelEnabled = true

	m := &AppModel{
		appModel: models.AppModel{
			Status:     update.StatusReady,
			Width:      defaultWidth,
			Height:     defaultHeight,
			Deployment: profile,
		},
		dispatcher: disp,
		keys:       update.NewKeyMap(),
		input:      input,
		spinner:    sp,
		result:     result,
		help:       help.New(),
	}
	m.resize()
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	cmd, consumed := update.HandleUpdate(&m.appModel, msg, m.keys, m.dispatcher)
	cmds = append(cmds, cmd)

	switch msg := msg.(type) {
	case update.CoreEventMsg:
		m.resize()
		m.refreshResult()
		cmds = append(cmds, m.dispatcher.ListenForCoreEvents())
	case tea.WindowSizeMsg:
		m.resize()
		m.refreshResult()
	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.KeyMsg:
		if consumed {
			break
		}
		if key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown) {
			m.result, cmd = m.result.Update(msg)
			cmds = append(cmds, cmd)
			break
		}
		m.input, cmd = m.input.Update(msg)
		m.appModel.Instruction = m.input.Value()
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		m.result, cmd = m.result.Update(msg)
		cmds = append(cmds, cmd)
	default:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *AppModel) tree() view.Tree {
	return view.FromSnapshot(m.appModel.Request, m.appModel.Instruction)
}

func (m *AppModel) refreshResult() {
	tree := m.tree()
	m.result.SetContent(components.RenderResult(tree.Result, m.appModel.Width))
	if m.appModel.Request.Busy() {
		m.result.GotoTop()
	}
}

// resize gives the result viewport whatever the fixed rows leave over.
func (m *AppModel) resize() {
	tree := m.tree()
	chrome := lipgloss.Height(m.header()) +
		lipgloss.Height(m.editor(tree)) +
		lipgloss.Height(m.footer())
	if tree.Notice != "" {
		chrome += lipgloss.Height(components.RenderNotice(tree.Notice, m.appModel.Width))
	}
	m.result.Width = m.appModel.Width
	m.result.Height = max(m.appModel.Height-chrome-1, 3)
	m.help.Width = m.appModel.Width
}

func (m *AppModel) header() string {
	return components.RenderHeader(m.appModel.Deployment)
}

func (m *AppModel) editor(tree view.Tree) string {
	return components.RenderEditor(m.input.View(), tree.Editor, m.spinner.View(), m.appModel.Width)
}

func (m *AppModel) footer() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.RenderStatus(m.appModel.Status, m.appModel.Width),
		styles.HelpStyle().Render(m.help.View(m.keys)),
	)
}

func (m *AppModel) View() string {
	tree := m.tree()

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.editor(tree))
	b.WriteString("\n")
	if notice := components.RenderNotice(tree.Notice, m.appModel.Width); notice != "" {
		b.WriteString(notice)
		b.WriteString("\n")
	}
	b.WriteString(m.result.View())
	b.WriteString("\n")
	b.WriteString(m.footer())

	return b.String()
}
