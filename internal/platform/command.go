package platform

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"
)

// Process is one program invocation with its arguments.
type Process struct {
	Program string
	Args    []string
}

// Argv returns the program followed by its arguments.
func (p Process) Argv() []string {
	return append([]string{p.Program}, p.Args...)
}

// Command is the start command of a job: optional sidecar processes started
// in the background, followed by the main process. A zero Command runs the
// image's default entrypoint.
type Command struct {
	Sidecars []Process
	Main     Process
}

// IsZero reports whether the command defers to the image entrypoint.
func (c Command) IsZero() bool {
	return c.Main.Program == "" && len(c.Sidecars) == 0
}

// Validate rejects commands that cannot be serialized safely.
func (c Command) Validate() error {
	if c.IsZero() {
		return nil
	}
	if c.Main.Program == "" {
		return fmt.Errorf("%w: sidecars require a main process", ErrInvalidCommand)
	}
	for _, p := range append(append([]Process{}, c.Sidecars...), c.Main) {
		if p.Program == "" {
			return fmt.Errorf("%w: empty program", ErrInvalidCommand)
		}
		for _, arg := range p.Argv() {
			if strings.ContainsRune(arg, 0) {
				return fmt.Errorf("%w: argument of %s contains a NUL byte", ErrInvalidCommand, p.Program)
			}
		}
	}
	return nil
}

// Shell renders the command as a single POSIX shell line. Every argument is
// quoted; sidecars are backgrounded and the main process replaces the shell.
func (c Command) Shell() string {
	if c.IsZero() {
		return ""
	}
	parts := make([]string, 0, len(c.Sidecars)+1)
	for _, p := range c.Sidecars {
		parts = append(parts, shellescape.QuoteCommand(p.Argv())+" &")
	}
	parts = append(parts, "exec "+shellescape.QuoteCommand(c.Main.Argv()))
	return strings.Join(parts, " ")
}
