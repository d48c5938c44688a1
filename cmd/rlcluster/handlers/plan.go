package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/orchestration"
	"github.com/imamik/rlcluster/internal/pricing"
)

// Plan handles the plan command. It resolves the platform target but makes
// no changes.
func Plan(ctx context.Context, out io.Writer, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	client, err := newPlatformClient(ctx, cfg)
	if err != nil {
		return err
	}

	plan, err := newOrchestrator(cfg, client).Plan(ctx)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	if err := renderPlan(out, plan); err != nil {
		return err
	}

	if cfg.Platform.Driver == config.DriverHCloud {
		printCostEstimate(ctx, out, cfg, plan)
	}
	return nil
}

// newPriceSource returns the Hetzner price list - can be replaced in tests.
var newPriceSource = func(token string) pricing.Source {
	return pricing.NewSource(token)
}

// printCostEstimate prints the monthly cost of the planned servers. Pricing
// failures only skip the estimate.
func printCostEstimate(ctx context.Context, out io.Writer, cfg *config.Config, plan *orchestration.Plan) {
	prices, err := pricing.FetchPrices(ctx, newPriceSource(cfg.Platform.HCloud.Token))
	if err == nil {
		var estimate *pricing.Estimate
		estimate, err = pricing.NewCalculator(prices).Calculate(cfg.Name, plan.Jobs, cfg.Platform.HCloud)
		if err == nil {
			fmt.Fprint(out, "\n"+pricing.Format(estimate))
			return
		}
	}
	fmt.Fprintf(out, "\nEstimated monthly cost: unavailable (%v)\n", err)
}

func renderPlan(out io.Writer, plan *orchestration.Plan) error {
	fmt.Fprintf(out, "Namespace: %s\n", plan.Target.Namespace)
	fmt.Fprintf(out, "Discovery domain: %s\n\n", plan.Target.DiscoveryDomain)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tGYM\tWORKER\tTAG")
	for i, inst := range plan.Instances {
		tag := inst.PlacementTag
		if tag == "" {
			tag = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, inst.GymName, inst.WorkerName, tag)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nCluster spec:")
	fmt.Fprintf(out, "  ps:     %s\n", strings.Join(plan.Spec.ParameterServers, ", "))
	fmt.Fprintf(out, "  worker: %s\n", strings.Join(plan.Spec.Workers, ", "))
	fmt.Fprintf(out, "  gym:    %s\n", strings.Join(plan.Spec.Gyms, ", "))
	fmt.Fprintf(out, "\n--workers %s\n\n", plan.Spec.WorkersArg())

	fmt.Fprintln(out, "Jobs:")
	for _, job := range plan.Jobs {
		fmt.Fprintf(out, "  %s (%s)\n    %s\n", job.Name, job.Image, job.Command.Shell())
	}
	return nil
}
