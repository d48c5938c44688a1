package compute

import (
	"context"
	"sync/atomic"

	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// CreateProvisioner creates every job and binds it to the log service.
type CreateProvisioner struct{}

// NewCreateProvisioner creates a new create provisioner.
func NewCreateProvisioner() *CreateProvisioner {
	return &CreateProvisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *CreateProvisioner) Name() string {
	return "create"
}

// Provision creates the jobs in State.Jobs. A job whose creation failed
// is not bound.
func (p *CreateProvisioner) Provision(ctx *provisioning.Context) error {
	service := naming.Service(ctx.Config.Name)
	mountPath := ctx.Config.Storage.MountPath
	total := len(ctx.State.Jobs)
	var done atomic.Int32

	provisioning.ForEach(ctx, ctx.State.Jobs, func(spec platform.JobSpec) error {
		defer func() { ctx.Observer.Progress(p.Name(), int(done.Add(1)), total) }()

		provisioning.LogResourceCreating(ctx.Observer, p.Name(), "job", spec.Name)
		err := ctx.Do(provisioning.OpCreateJob, spec.Name, func(c context.Context) error {
			return ctx.Platform.CreateJob(c, spec)
		})
		if err != nil {
			return err
		}
		provisioning.LogResourceCreated(ctx.Observer, p.Name(), "job", spec.Name)

		return ctx.Do(provisioning.OpBindService, spec.Name, func(c context.Context) error {
			return ctx.Platform.BindService(c, service, spec.Name, mountPath)
		})
	})
	return nil
}
