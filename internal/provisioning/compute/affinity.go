package compute

import (
	"context"

	"github.com/imamik/rlcluster/internal/provisioning"
)

// AffinityProvisioner ties every worker to its gym.
type AffinityProvisioner struct{}

// NewAffinityProvisioner creates a new affinity provisioner.
func NewAffinityProvisioner() *AffinityProvisioner {
	return &AffinityProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *AffinityProvisioner) Name() string {
	return "affinity"
}

// Provision sets the affinity of each instance's worker, in instance order.
func (p *AffinityProvisioner) Provision(ctx *provisioning.Context) error {
	policy := ctx.Config.Affinity
	for _, inst := range ctx.State.Instances {
		_ = ctx.Do(provisioning.OpSetAffinity, inst.WorkerName, func(c context.Context) error {
			return ctx.Platform.SetAffinity(c, inst.WorkerName, inst.GymName, policy)
		})
	}
	return nil
}
