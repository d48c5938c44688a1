package testing

import (
	"context"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/launch"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/platform/memory"
	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/topology"
)

// TestContext returns a context that is canceled when the test ends or
// after 30 seconds.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Target is the namespace of fixture platforms.
var Target = platform.Target{Namespace: "/sandbox/test", DiscoveryDomain: "apcera.local"}

// PlatformFixture provides an in-memory platform for a configuration.
type PlatformFixture struct {
	Config *config.Config
	Client *memory.Client
}

// NewPlatformFixture creates a fixture whose namespace offers a storage
// provider matching cfg. Extra options are applied after the provider.
func NewPlatformFixture(cfg *config.Config, opts ...memory.Option) *PlatformFixture {
	provider := platform.StorageProvider{
		Name:      cfg.Storage.Provider,
		Namespace: "/",
		Type:      cfg.Storage.ProviderType,
	}
	if provider.Name == "" {
		provider.Name = "default"
	}
	opts = append([]memory.Option{memory.WithProviders(provider)}, opts...)
	return &PlatformFixture{Config: cfg, Client: memory.New(Target, opts...)}
}

// Context returns a provisioning context whose state holds the computed
// topology and job specs, with events logged to the test log.
func (f *PlatformFixture) Context(t *testing.T) *provisioning.Context {
	t.Helper()

	instances, err := topology.NewInstances(f.Config.Instances, f.Config.InstanceNames, f.Config.Tags)
	require.NoError(t, err)
	spec := topology.Build(instances, f.Config.GRPCPort, Target.DiscoveryDomain)
	jobs, err := launch.NewBuilder(f.Config, spec).Jobs(instances)
	require.NoError(t, err)

	ctx := provisioning.NewContext(TestContext(t), f.Config, f.Client,
		provisioning.WithObserver(provisioning.NewLogObserver(testr.New(t))))
	ctx.State.Target = Target
	ctx.State.Instances = instances
	ctx.State.Spec = spec
	ctx.State.Jobs = jobs
	f.Client.ResetCalls()
	return ctx
}

// Ops returns the operation names of the recorded calls, in order.
func (f *PlatformFixture) Ops() []string {
	calls := f.Client.Calls()
	ops := make([]string, len(calls))
	for i, c := range calls {
		ops[i] = c.Op
	}
	return ops
}

// Created creates every job of the context directly on the fixture
// platform and clears the call log.
func (f *PlatformFixture) Created(t *testing.T, ctx *provisioning.Context) {
	t.Helper()
	for _, job := range ctx.State.Jobs {
		require.NoError(t, f.Client.CreateJob(context.Background(), job))
	}
	f.Client.ResetCalls()
}
