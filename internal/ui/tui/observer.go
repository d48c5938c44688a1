package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/rlcluster/internal/provisioning"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Observer translates provisioning events into dashboard messages.
// Printf output is dropped while the dashboard owns the terminal.
type Observer struct {
	sender Sender
}

// NewObserver creates an observer forwarding to s.
func NewObserver(s Sender) *Observer {
	return &Observer{sender: s}
}

// Printf implements provisioning.Logger.
func (o *Observer) Printf(string, ...any) {}

// Event implements provisioning.Observer.
func (o *Observer) Event(e provisioning.Event) {
	switch e.Type {
	case provisioning.EventPhaseStarted:
		o.sender.Send(PhaseMsg{Phase: phaseName(e.Phase)})
	case provisioning.EventPhaseCompleted:
		o.sender.Send(PhaseMsg{Phase: phaseName(e.Phase), Done: true})
	case provisioning.EventPhaseFailed:
		err := e.Err
		if err == nil {
			err = fmt.Errorf("%s", e.Message)
		}
		o.sender.Send(PhaseMsg{Phase: phaseName(e.Phase), Err: err})
	case provisioning.EventOperationCompleted, provisioning.EventOperationFailed:
		o.sender.Send(OperationMsg{Op: e.Fields["op"], Resource: e.Resource, Err: e.Err})
	}
}

// Progress implements provisioning.Observer.
func (o *Observer) Progress(phase string, current, total int) {
	o.sender.Send(ProgressMsg{Phase: phaseName(phase), Current: current, Total: total})
}

// WithFields implements provisioning.Observer. Fields are not displayed.
func (o *Observer) WithFields(map[string]string) provisioning.Observer {
	return o
}

// phaseName strips the "(i/n)" position suffix RunPhases adds.
func phaseName(phase string) string {
	name, _, _ := strings.Cut(phase, " (")
	return name
}
