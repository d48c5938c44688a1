package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rlcluster/cmd/rlcluster/handlers"
)

// Plan returns the plan command.
func Plan() *cobra.Command {
	var opts handlers.Options

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the cluster layout a deployment would create",
		Long: `Plan resolves the platform target and prints the instances, the
cluster spec with every discovery address, the --workers argument, and
the jobs a deployment would create. Nothing is changed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	bindDeploymentFlags(cmd, &opts)

	return cmd
}
