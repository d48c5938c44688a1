package testing

import (
	"slices"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
)

// ConfigBuilder provides a fluent interface for constructing test configs.
// Each method returns a new builder (immutable) for chaining.
type ConfigBuilder struct {
	cfg config.Config
}

// NewConfigBuilder creates a new ConfigBuilder for a memory-driver
// deployment named "test" with two instances.
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.Config{
		Name:      "test",
		Instances: 2,
		Platform:  config.PlatformConfig{Driver: config.DriverMemory},
	}
	cfg.ApplyDefaults()
	return &ConfigBuilder{cfg: cfg}
}

// WithName sets the deployment name.
func (b *ConfigBuilder) WithName(name string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Name = name
	return newBuilder
}

// WithInstances sets the instance count.
func (b *ConfigBuilder) WithInstances(n int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Instances = n
	return newBuilder
}

// WithInstanceNames sets the gym names.
func (b *ConfigBuilder) WithInstanceNames(names ...string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.InstanceNames = names
	return newBuilder
}

// WithTags sets the per-instance placement tags.
func (b *ConfigBuilder) WithTags(tags ...string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Tags = tags
	return newBuilder
}

// WithAffinity sets the worker-to-gym affinity policy.
func (b *ConfigBuilder) WithAffinity(policy platform.AffinityPolicy) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Affinity = policy
	return newBuilder
}

// WithParallelism caps concurrent platform calls per phase.
func (b *ConfigBuilder) WithParallelism(n int) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Parallelism = n
	return newBuilder
}

// WithStorage sets the required storage provider type and name.
func (b *ConfigBuilder) WithStorage(providerType, provider string) *ConfigBuilder {
	newBuilder := b.clone()
	newBuilder.cfg.Storage.ProviderType = providerType
	newBuilder.cfg.Storage.Provider = provider
	return newBuilder
}

// Build returns a copy of the configuration.
func (b *ConfigBuilder) Build() *config.Config {
	return &b.clone().cfg
}

func (b *ConfigBuilder) clone() *ConfigBuilder {
	cfg := b.cfg
	cfg.InstanceNames = slices.Clone(b.cfg.InstanceNames)
	cfg.Tags = slices.Clone(b.cfg.Tags)
	cfg.Platform.HCloud.SSHKeys = slices.Clone(b.cfg.Platform.HCloud.SSHKeys)
	return &ConfigBuilder{cfg: cfg}
}
