package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorOK     = lipgloss.Color("#22c55e")
	colorFailed = lipgloss.Color("#ef4444")
	colorWarn   = lipgloss.Color("#eab308")
	colorAccent = lipgloss.Color("#3b82f6")
	colorMuted  = lipgloss.Color("#6b7280")
	colorText   = lipgloss.Color("#f9fafb")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorMuted)
	sectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginTop(1)
	footerStyle   = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)

	readyStyle   = lipgloss.NewStyle().Foreground(colorOK)
	failedStyle  = lipgloss.NewStyle().Foreground(colorFailed)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarn)
	dimStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	activeStyle  = lipgloss.NewStyle().Foreground(colorText).Bold(true)

	barDoneStyle = lipgloss.NewStyle().Foreground(colorOK)
	barTodoStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// phaseStatus is the display state of one deployment phase.
type phaseStatus int

const (
	statusPending phaseStatus = iota
	statusActive
	statusDone
	statusFailed
)

func (p Phase) status() phaseStatus {
	switch {
	case p.Err != nil:
		return statusFailed
	case p.Done:
		return statusDone
	case p.Active:
		return statusActive
	default:
		return statusPending
	}
}

var statusStyles = map[phaseStatus]lipgloss.Style{
	statusPending: dimStyle,
	statusActive:  activeStyle,
	statusDone:    readyStyle,
	statusFailed:  failedStyle,
}

// Markers shown in front of a phase; active phases show a spinner frame.
var statusMarks = map[phaseStatus]string{
	statusPending: "[  ]",
	statusDone:    "[OK]",
	statusFailed:  "[!!]",
}

var spinnerFrames = []string{"[. ]", "[..]", "[ .]", "[  ]"}
