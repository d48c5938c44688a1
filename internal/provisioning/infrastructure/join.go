package infrastructure

import (
	"context"

	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/util/async"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// JoinProvisioner attaches every job of the namespace to the deployment
// network under its own name.
type JoinProvisioner struct{}

// NewJoinProvisioner creates a new join provisioner.
func NewJoinProvisioner() *JoinProvisioner {
	return &JoinProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *JoinProvisioner) Name() string {
	return "join"
}

// Provision implements the provisioning.Phase interface.
func (p *JoinProvisioner) Provision(ctx *provisioning.Context) error {
	var jobs []string
	err := ctx.Do(provisioning.OpListJobs, ctx.State.Target.Namespace, func(c context.Context) error {
		var err error
		jobs, err = ctx.Platform.ListJobs(c)
		return err
	})
	if err != nil {
		return nil
	}

	network := naming.Network(ctx.Config.Name)
	results := provisioning.ForEach(ctx, jobs, func(job string) error {
		return ctx.Do(provisioning.OpJoinNetwork, job, func(c context.Context) error {
			return ctx.Platform.JoinNetwork(c, network, job, job)
		})
	})
	ctx.Observer.Printf("[%s] %d jobs joined network %s",
		p.Name(), len(jobs)-len(async.Errors(results)), network)
	return nil
}
