package handlers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/platform/apc"
	"github.com/imamik/rlcluster/internal/platform/hcloud"
	"github.com/imamik/rlcluster/internal/platform/memory"
	"github.com/imamik/rlcluster/internal/platform/s3"
	"github.com/imamik/rlcluster/internal/util/prerequisites"
)

// DryRunProvider is the storage provider offered by the dry-run platform.
const DryRunProvider = "dry-run"

// Factory function variables - can be replaced in tests.
var (
	// newPlatformClient creates the client for the configured driver.
	newPlatformClient = platformClient

	// checkTools verifies that the driver's client tools are installed.
	checkTools = prerequisites.CheckDriver

	// newObjectStore creates the object storage backing hcloud services.
	newObjectStore = func(ctx context.Context, o config.ObjectStorageConfig) (hcloud.ObjectStore, error) {
		return s3.NewClient(ctx, o.Endpoint, o.Region, o.AccessKey, o.SecretKey)
	}
)

func platformClient(ctx context.Context, cfg *config.Config) (platform.Client, error) {
	if err := checkTools(cfg.Platform); err != nil {
		return nil, err
	}
	timeouts := config.LoadTimeouts()

	switch cfg.Platform.Driver {
	case config.DriverAPC:
		runner := &apc.ExecRunner{
			Binary: cfg.Platform.APC.Binary,
			Log:    logr.FromContextOrDiscard(ctx).WithName("apc"),
		}
		return apc.NewClient(runner, cfg.Platform.APC.DiscoveryDomain, timeouts), nil

	case config.DriverHCloud:
		opts := []hcloud.ClientOption{hcloud.WithTimeouts(timeouts)}
		if cfg.Platform.HCloud.ObjectStorage.Enabled() {
			store, err := newObjectStore(ctx, cfg.Platform.HCloud.ObjectStorage)
			if err != nil {
				return nil, fmt.Errorf("failed to create object storage client: %w", err)
			}
			opts = append(opts, hcloud.WithObjectStore(store))
		}
		return hcloud.NewClient(cfg.Platform.HCloud, opts...), nil

	case config.DriverMemory:
		return newDryRunClient(cfg), nil

	default:
		return nil, fmt.Errorf("unknown platform driver %q", cfg.Platform.Driver)
	}
}

// newDryRunClient returns an empty in-memory platform offering exactly the
// storage provider the configuration asks for.
func newDryRunClient(cfg *config.Config) *memory.Client {
	name := cfg.Storage.Provider
	if name == "" {
		name = DryRunProvider
	}
	target := platform.Target{
		Namespace:       cfg.Platform.Memory.Namespace,
		DiscoveryDomain: cfg.Platform.Memory.DiscoveryDomain,
	}
	return memory.New(target, memory.WithProviders(platform.StorageProvider{
		Name: name,
		Type: cfg.Storage.ProviderType,
	}))
}
