package compute

import (
	"context"

	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// StartProvisioner starts every job of the namespace.
type StartProvisioner struct{}

// NewStartProvisioner creates a new start provisioner.
func NewStartProvisioner() *StartProvisioner {
	return &StartProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *StartProvisioner) Name() string {
	return "start"
}

// Provision starts all non-worker jobs, then the workers once every other
// start has returned.
func (p *StartProvisioner) Provision(ctx *provisioning.Context) error {
	var jobs []string
	err := ctx.Do(provisioning.OpListJobs, ctx.State.Target.Namespace, func(c context.Context) error {
		var err error
		jobs, err = ctx.Platform.ListJobs(c)
		return err
	})
	if err != nil {
		return nil
	}

	workers, others := partition(jobs)
	p.startAll(ctx, others)
	p.startAll(ctx, workers)
	return nil
}

func (p *StartProvisioner) startAll(ctx *provisioning.Context, jobs []string) {
	provisioning.ForEach(ctx, jobs, func(job string) error {
		return ctx.Do(provisioning.OpStartJob, job, func(c context.Context) error {
			return ctx.Platform.StartJob(c, job)
		})
	})
}

// partition splits jobs into workers and everything else, keeping order.
func partition(jobs []string) (workers, others []string) {
	for _, job := range jobs {
		if naming.IsWorker(job) {
			workers = append(workers, job)
		} else {
			others = append(others, job)
		}
	}
	return workers, others
}
