// Package handlers implements the business logic for CLI commands.
//
// Each handler loads the configuration, builds a platform client for the
// configured driver, and drives the orchestrator. Constructors are held in
// package variables so tests can replace them.
package handlers

import (
	"fmt"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
)

// Options carries the command-line values shared by all handlers.
type Options struct {
	ConfigPath    string
	Name          string
	EnvID         string
	Instances     int
	InstanceNames []string
	Tags          []string
	Driver        string
	Affinity      string
	Parallelism   int
	DryRun        bool
	NoTUI         bool
	MetricsFile   string

	// Changed reports whether a flag was set on the command line. A nil
	// Changed treats every non-zero value as set.
	Changed func(name string) bool
}

func (o Options) changed(name string, set bool) bool {
	if o.Changed == nil {
		return set
	}
	return o.Changed(name)
}

// loadConfig reads the configuration file, the .env file, and the
// environment, then overlays flags and validates the result.
var loadConfig = func(opts Options) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg, err := config.LoadWithoutValidation(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	applyOverrides(cfg, opts)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.changed("name", opts.Name != "") {
		cfg.Name = opts.Name
	}
	if opts.changed("env-id", opts.EnvID != "") {
		cfg.EnvID = opts.EnvID
	}
	if opts.changed("instances", opts.Instances != 0) {
		cfg.Instances = opts.Instances
	}
	if opts.changed("names", len(opts.InstanceNames) > 0) {
		cfg.InstanceNames = opts.InstanceNames
	}
	if opts.changed("tags", len(opts.Tags) > 0) {
		cfg.Tags = opts.Tags
	}
	if opts.changed("driver", opts.Driver != "") {
		cfg.SetDriver(opts.Driver)
	}
	if opts.changed("affinity", opts.Affinity != "") {
		cfg.Affinity = platform.AffinityPolicy(opts.Affinity)
	}
	if opts.changed("parallelism", opts.Parallelism != 0) {
		cfg.Parallelism = opts.Parallelism
	}
	if opts.DryRun {
		cfg.SetDriver(config.DriverMemory)
	}
}
