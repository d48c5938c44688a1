package infrastructure

import (
	"context"

	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// NetworkProvisioner creates the deployment network.
type NetworkProvisioner struct{}

// NewNetworkProvisioner creates a new network provisioner.
func NewNetworkProvisioner() *NetworkProvisioner {
	return &NetworkProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *NetworkProvisioner) Name() string {
	return "network"
}

// Provision implements the provisioning.Phase interface.
func (p *NetworkProvisioner) Provision(ctx *provisioning.Context) error {
	name := naming.Network(ctx.Config.Name)

	provisioning.LogResourceCreating(ctx.Observer, p.Name(), "network", name)
	err := ctx.Do(provisioning.OpCreateNetwork, name, func(c context.Context) error {
		return ctx.Platform.CreateNetwork(c, name)
	})
	if err == nil {
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "network", name)
	}
	return nil
}
