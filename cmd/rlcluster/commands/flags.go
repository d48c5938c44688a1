package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/rlcluster/cmd/rlcluster/handlers"
)

// bindDeploymentFlags registers the flags that override configuration
// values. Only flags given on the command line are applied.
func bindDeploymentFlags(cmd *cobra.Command, opts *handlers.Options) {
	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: rlcluster.yaml if present)")
	f.StringVar(&opts.Name, "name", "", "Deployment name")
	f.StringVarP(&opts.EnvID, "env-id", "e", "", "Game environment id")
	f.IntVarP(&opts.Instances, "instances", "i", 0, "Number of gym/worker pairs")
	f.StringSliceVar(&opts.InstanceNames, "names", nil, "Gym names, in instance order")
	f.StringSliceVar(&opts.Tags, "tags", nil, "Placement tags, in instance order")
	f.StringVar(&opts.Driver, "driver", "", "Platform driver: apc, hcloud, or memory")
	f.StringVar(&opts.Affinity, "affinity", "", "Worker to gym affinity: hard or soft")
	f.IntVar(&opts.Parallelism, "parallelism", 0, "Concurrent platform calls per phase (0: unbounded)")

	opts.Changed = func(name string) bool {
		return f.Changed(name)
	}
}
