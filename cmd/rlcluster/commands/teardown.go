package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rlcluster/cmd/rlcluster/handlers"
)

// Teardown returns the teardown command.
func Teardown() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Delete every job, network, and service in the namespace",
		Long: `Teardown deletes every job, then every network, then every service
visible in the platform namespace. A failed deletion does not stop the
teardown; failures are reported at the end.

WARNING: This removes everything in the namespace, not only resources
created by rlcluster.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Teardown(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: rlcluster.yaml if present)")
	cmd.Flags().StringVar(&opts.Driver, "driver", "", "Platform driver: apc, hcloud, or memory")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	opts.Changed = cmd.Flags().Changed

	return cmd
}
