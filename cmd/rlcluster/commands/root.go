// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
)

// Root returns the root command for the rlcluster CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// It installs the logger used by every subcommand; -v raises its verbosity.
func Root() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:           "rlcluster",
		Short:         "Deploy distributed RL training clusters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			w := cmd.ErrOrStderr()
			log := funcr.New(func(prefix, args string) {
				line := args
				if prefix != "" {
					line = prefix + ": " + args
				}
				_, _ = w.Write([]byte(strings.TrimSpace(line) + "\n"))
			}, funcr.Options{Verbosity: verbosity})
			cmd.SetContext(logr.NewContext(cmd.Context(), log))
		},
	}

	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	cmd.AddCommand(Deploy())
	cmd.AddCommand(Teardown())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())

	return cmd
}
