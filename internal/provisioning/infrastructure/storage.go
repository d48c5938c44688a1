package infrastructure

import (
	"context"
	"fmt"

	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// StorageProvisioner selects the storage provider and creates the
// deployment's log service on it.
type StorageProvisioner struct{}

// NewStorageProvisioner creates a new storage provisioner.
func NewStorageProvisioner() *StorageProvisioner {
	return &StorageProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *StorageProvisioner) Name() string {
	return "storage"
}

// Provision fails when no storage provider matches the configuration.
// Creating the service itself is an ordinary operation.
func (p *StorageProvisioner) Provision(ctx *provisioning.Context) error {
	providers, err := ctx.Platform.ListStorageProviders(ctx)
	ctx.Metrics.RecordOperation(provisioning.OpListStorageProviders, err)
	if err != nil {
		return fmt.Errorf("failed to list storage providers: %w", err)
	}

	storage := ctx.Config.Storage
	provider, err := platform.SelectStorageProvider(providers, storage.ProviderType, storage.Provider)
	if err != nil {
		return err
	}
	ctx.State.Provider = provider
	ctx.Observer.Printf("[%s] Using storage provider %s", p.Name(), provider)

	name := naming.Service(ctx.Config.Name)
	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "service", name)
	err = ctx.Do(provisioning.OpCreateService, name, func(c context.Context) error {
		return ctx.Platform.CreateService(c, name, provider)
	})
	if err == nil {
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "service", name)
	}
	return nil
}
