package apc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/go-logr/logr"

	"github.com/imamik/rlcluster/internal/util/logwriter"
)

// Runner executes one apc invocation and returns its standard output.
type Runner interface {
	Run(ctx context.Context, args []string) ([]byte, error)
}

// ExecRunner runs the apc binary as a subprocess.
type ExecRunner struct {
	Binary string
	Log    logr.Logger
}

// RunError is a failed apc invocation.
type RunError struct {
	Args   []string
	Output string
	Err    error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("apc %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Run implements Runner. Standard error is logged line by line and kept for
// the returned error.
func (r *ExecRunner) Run(ctx context.Context, args []string) ([]byte, error) {
	source := "apc " + strings.Join(args[:min(2, len(args))], " ")
	stderrLog := logwriter.LinePrefix(r.Log, 1, source)

	var stdout, stderr bytes.Buffer
	// #nosec G204 -- Binary comes from trusted config and args are never shell-interpreted.
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, stderrLog)

	err := cmd.Run()
	_ = stderrLog.Close()
	if err != nil {
		out := strings.TrimSpace(stderr.String())
		if out == "" {
			out = strings.TrimSpace(stdout.String())
		}
		return stdout.Bytes(), &RunError{Args: args, Output: out, Err: err}
	}
	return stdout.Bytes(), nil
}
