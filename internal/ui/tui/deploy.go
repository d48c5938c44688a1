package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/imamik/rlcluster/internal/provisioning"
)

// RunDeployTUI runs deployFn behind the deploy dashboard. deployFn receives
// the observer feeding the dashboard. Quitting the dashboard does not cancel
// the deployment; RunDeployTUI always returns deployFn's result.
func RunDeployTUI(
	deployFn func(observer provisioning.Observer) error,
	name, driver string,
	phases []string,
	opts ...tea.ProgramOption,
) error {
	m := NewDeployModel(name, driver, phases)
	p := tea.NewProgram(m, opts...)

	result := make(chan error, 1)
	go func() {
		err := deployFn(NewObserver(p))
		result <- err
		p.Send(finalMsg(err))
	}()

	if _, err := p.Run(); err != nil {
		return errors.Join(fmt.Errorf("TUI error: %w", err), <-result)
	}
	return <-result
}

// finalMsg ends the dashboard. A bare *OperationErrors still means every
// phase ran; any other error aborted the deployment.
func finalMsg(err error) tea.Msg {
	switch err.(type) { //nolint:errorlint // only the unwrapped aggregate means completion
	case nil, *provisioning.OperationErrors:
		return DoneMsg{}
	default:
		return ErrMsg{Err: err}
	}
}
