package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Phase is the display state of one deploy phase.
type Phase struct {
	Name    string
	Done    bool
	Active  bool
	Err     error
	Current int
	Total   int
}

// Model is the Bubble Tea model for the deploy dashboard.
type Model struct {
	Name   string
	Driver string

	Phases []Phase

	Succeeded int
	Failures  []OperationMsg

	// Animation
	SpinnerFrame int
	StartTime    time.Time

	// UI state
	Width int
	Err   error
	Done  bool
}

// NewDeployModel creates a model tracking the given phases in order.
func NewDeployModel(name, driver string, phases []string) Model {
	m := Model{
		Name:      name,
		Driver:    driver,
		StartTime: time.Now(),
		Phases:    make([]Phase, len(phases)),
	}
	for i, p := range phases {
		m.Phases[i] = Phase{Name: p}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width

	case PhaseMsg:
		m.updatePhase(msg)

	case ProgressMsg:
		if p := m.phase(msg.Phase); p != nil {
			p.Current = msg.Current
			p.Total = msg.Total
		}

	case OperationMsg:
		if msg.Err != nil {
			m.Failures = append(m.Failures, msg)
		} else {
			m.Succeeded++
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) phase(name string) *Phase {
	for i := range m.Phases {
		if m.Phases[i].Name == name {
			return &m.Phases[i]
		}
	}
	return nil
}

func (m *Model) updatePhase(msg PhaseMsg) {
	idx := -1
	for i, phase := range m.Phases {
		if phase.Name == msg.Phase {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	// Phases are barriers: every earlier phase has finished.
	for i := 0; i < idx; i++ {
		m.Phases[i].Done = true
		m.Phases[i].Active = false
	}

	p := &m.Phases[idx]
	switch {
	case msg.Err != nil:
		p.Err = msg.Err
		p.Active = false
	case msg.Done:
		p.Done = true
		p.Active = false
	default:
		p.Active = true
	}
}

// completed returns the number of finished phases.
func (m Model) completed() int {
	n := 0
	for _, p := range m.Phases {
		if p.Done {
			n++
		}
	}
	return n
}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
