package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rlcluster/cmd/rlcluster/handlers"
	"github.com/imamik/rlcluster/internal/config"
)

// Init returns the command that writes a configuration file interactively.
func Init() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Init asks for the deployment name, environment id, instance count,
placement tags, platform and affinity policy, and writes them with every
other setting at its default. Credentials are never written; they are read
from the environment or a .env file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), cmd.OutOrStdout(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultConfigFilename, "Path of the configuration file to write")

	return cmd
}
