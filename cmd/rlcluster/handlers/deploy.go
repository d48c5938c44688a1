package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/orchestration"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/platform/memory"
	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/ui/tui"
)

// Runner is the orchestrator surface used by the handlers.
type Runner interface {
	Plan(ctx context.Context) (*orchestration.Plan, error)
	Deploy(ctx context.Context) error
	Teardown(ctx context.Context) error
}

// Factory function variables - can be replaced in tests.
var (
	// newOrchestrator creates the orchestrator.
	newOrchestrator = func(cfg *config.Config, client platform.Client, opts ...orchestration.Option) Runner {
		return orchestration.New(cfg, client, opts...)
	}

	// runDashboard runs a deployment behind the terminal dashboard.
	runDashboard = func(deploy func(provisioning.Observer) error, name, driver string) error {
		return tui.RunDeployTUI(deploy, name, driver, orchestration.DeployPhaseNames())
	}

	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// Deploy handles the deploy command.
//
// Failed platform operations do not stop the deployment; they are listed
// after every phase ran and the command fails. On an interactive terminal
// progress is shown in a dashboard unless NoTUI is set.
func Deploy(ctx context.Context, out io.Writer, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	client, err := newPlatformClient(ctx, cfg)
	if err != nil {
		return err
	}

	log := logr.FromContextOrDiscard(ctx)
	log.Info("Deploying training cluster", "name", cfg.Name, "instances", cfg.Instances,
		"envId", cfg.EnvID, "driver", cfg.Platform.Driver)

	metrics := provisioning.NewMetrics()
	var deployErr error
	if !opts.NoTUI && !opts.DryRun && isInteractiveTTY() {
		deployErr = runDashboard(func(observer provisioning.Observer) error {
			o := newOrchestrator(cfg, client, orchestration.WithObserver(observer), orchestration.WithMetrics(metrics))
			return o.Deploy(ctx)
		}, cfg.Name, cfg.Platform.Driver)
	} else {
		deployErr = newOrchestrator(cfg, client, orchestration.WithMetrics(metrics)).Deploy(ctx)
	}

	if opts.DryRun {
		if mem, ok := client.(*memory.Client); ok {
			printCalls(out, mem.Calls())
		}
	}

	if err := writeMetrics(metrics, opts.MetricsFile); err != nil {
		log.Error(err, "Failed to write metrics", "path", opts.MetricsFile)
	}

	if deployErr != nil {
		var opErrs *provisioning.OperationErrors
		if errors.As(deployErr, &opErrs) {
			printFailures(out, opErrs)
		}
		return fmt.Errorf("deploy failed: %w", deployErr)
	}

	fmt.Fprintf(out, "Cluster %s deployed\n", cfg.Name)
	return nil
}

func printCalls(out io.Writer, calls []memory.Call) {
	fmt.Fprintln(out, "Platform calls:")
	for _, c := range calls {
		line := fmt.Sprintf("  %3d %s %v", c.Seq, c.Op, c.Args)
		if c.Err != nil {
			line += " error: " + c.Err.Error()
		}
		fmt.Fprintln(out, line)
	}
}

func printFailures(out io.Writer, errs *provisioning.OperationErrors) {
	fmt.Fprintf(out, "%d operations failed:\n", len(errs.Errors))
	for _, e := range errs.Errors {
		fmt.Fprintf(out, "  %s %s: %v\n", e.Op, e.Resource, e.Err)
	}
}

func writeMetrics(m *provisioning.Metrics, path string) error {
	if path == "" {
		return nil
	}
	return m.WriteTextfile(path)
}
