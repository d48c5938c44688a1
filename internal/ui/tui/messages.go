// Package tui provides a Bubble Tea-based terminal UI for cluster deployment.
package tui

// PhaseMsg reports that a deploy phase started, finished, or failed.
type PhaseMsg struct {
	Phase string
	Done  bool
	Err   error
}

// OperationMsg reports the outcome of one platform operation.
type OperationMsg struct {
	Op       string
	Resource string
	Err      error
}

// ProgressMsg reports item progress within a phase.
type ProgressMsg struct {
	Phase   string
	Current int
	Total   int
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
