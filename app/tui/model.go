package tui

import (
	"context"

	"replygen/app/service/controller"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// generatedMsg carries the outcome of one gateway call back to Update.
type generatedMsg struct {
	pending controller.Pending
	reply   string
	err     error
}

type Model struct {
	ctx       context.Context
	ctrl      *controller.Service
	exportDir string

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	// index into the filtered history view
	selected  int
	status    string
	statusErr bool
	width     int
}

func New(ctx context.Context, ctrl *controller.Service, exportDir string) *Model {
	ti := textinput.New()
	ti.Placeholder = "Escribe un mensaje para generar una respuesta..."
	ti.Prompt = "❯ "
	ti.CharLimit = 0
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB")).Bold(true)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#B39DDB"))

	ti.SetValue(ctrl.Snapshot().Draft.Message)

	return &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		exportDir: exportDir,
		input:     ti,
		spinner:   sp,
		help:      help.New(),
		keys:      defaultKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
}
