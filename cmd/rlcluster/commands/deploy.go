package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rlcluster/cmd/rlcluster/handlers"
)

// Deploy returns the deploy command.
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (hcloud driver)
//	RLCLUSTER_S3_ACCESS_KEY, RLCLUSTER_S3_SECRET_KEY: Object Storage credentials (hcloud driver)
func Deploy() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a training cluster from scratch",
		Long: `Deploy tears down everything in the platform namespace and then
provisions the training cluster:

  1. teardown   delete all jobs, networks, and services
  2. network    create the deployment network
  3. storage    select a storage provider and create the log service
  4. create     create and bind every job, stopped
  5. join       attach every job to the network
  6. affinity   tie each worker to its gym
  7. start      start the parameter server and gyms, then the workers

Failed operations are reported at the end; nothing is rolled back.

Examples:
  # Deploy four instances using rlcluster.yaml
  rlcluster deploy

  # Deploy two instances of another game
  rlcluster deploy -i 2 -e flashgames.NeonRace-v0

  # Show the platform calls a deployment would make
  rlcluster deploy --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	bindDeploymentFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Run against an in-memory platform and print its calls")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Log progress instead of showing the terminal dashboard")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")

	return cmd
}
