package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/apexmind/internal/trait"
)

type TUI struct {
	program *tea.Program
}

func NewTUI(p *tea.Program) *TUI {
	return &TUI{program: p}
}

func (t *TUI) UpdateStatus(status string) {
	t.program.Send(StatusMsg(status))
}

func (t *TUI) UpdateScores(scores trait.Vector) {
	t.program.Send(ScoresMsg(scores))
}

func (t *TUI) Log(msg string) {
	t.program.Send(LogMsg(msg))
}

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))

	traitStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C4B5FD")).
		Width(14)
)

type Model struct {
	Title    string
	Status   string
	Scores   trait.Vector
	Log      []string
	Bars     map[trait.Name]progress.Model
	Viewport viewport.Model
	Quitting bool
	Ready    bool
	Width    int
	Height   int
}

type LogMsg string
type StatusMsg string
type ScoresMsg trait.Vector

func NewModel(title string) Model {
	bars := make(map[trait.Name]progress.Model, len(trait.Names()))
	for _, name := range trait.Names() {
		bars[name] = progress.New(progress.WithDefaultGradient())
	}
	return Model{
		Title:  title,
		Status: "Ready.",
		Bars:   bars,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Reserve room for the header and the six trait bars.
		chatHeight := msg.Height - len(trait.Names()) - 6
		if chatHeight < 3 {
			chatHeight = 3
		}
		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, chatHeight)
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = chatHeight
		}

	case LogMsg:
		m.Log = append(m.Log, string(msg))
		m.Viewport.SetContent(strings.Join(m.Log, "\n"))
		m.Viewport.GotoBottom()

	case StatusMsg:
		m.Status = string(msg)

	case ScoresMsg:
		m.Scores = trait.Vector(msg)
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.Ready {
		return "\n  Initializing..."
	}

	header := titleStyle.Render(" " + m.Title + " ")
	status := infoStyle.Render(fmt.Sprintf(" Status: %s ", m.Status))

	var bars strings.Builder
	for _, name := range trait.Names() {
		bar := m.Bars[name]
		fmt.Fprintf(&bars, "%s %s %5.1f\n",
			traitStyle.Render(string(name)),
			bar.ViewAs(m.Scores.Get(name)/100.0),
			m.Scores.Get(name))
	}

	view := fmt.Sprintf("%s%s\n\n%s\n\n%s",
		header, status,
		m.Viewport.View(),
		bars.String())

	if m.Quitting {
		return view + "\n  Quitting...\n"
	}

	return view
}
