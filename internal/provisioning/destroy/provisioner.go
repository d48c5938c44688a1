package destroy

import (
	"context"

	"github.com/imamik/rlcluster/internal/provisioning"
)

const phase = "teardown"

// Provisioner handles teardown of the namespace.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision deletes all jobs, networks, and services of the namespace.
// It never fails as a phase: every failure is recorded on the context.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	client := ctx.Platform

	p.deleteAll(ctx, "job", provisioning.OpListJobs, client.ListJobs, provisioning.OpDeleteJob, client.DeleteJob)
	p.deleteAll(ctx, "network", provisioning.OpListNetworks, client.ListNetworks, provisioning.OpDeleteNetwork, client.DeleteNetwork)
	p.deleteAll(ctx, "service", provisioning.OpListServices, client.ListServices, provisioning.OpDeleteService, client.DeleteService)
	return nil
}

func (p *Provisioner) deleteAll(
	ctx *provisioning.Context,
	resourceType string,
	listOp string, list func(context.Context) ([]string, error),
	deleteOp string, del func(context.Context, string) error,
) {
	var names []string
	err := ctx.Do(listOp, ctx.State.Target.Namespace, func(c context.Context) error {
		var err error
		names, err = list(c)
		return err
	})
	if err != nil {
		return
	}

	for _, name := range names {
		provisioning.LogResourceDeleting(ctx.Observer, phase, resourceType, name)
		err := ctx.Do(deleteOp, name, func(c context.Context) error {
			return del(c, name)
		})
		if err == nil {
			provisioning.LogResourceDeleted(ctx.Observer, phase, resourceType, name)
		}
	}
}
