package orchestration

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/launch"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/provisioning"
	"github.com/imamik/rlcluster/internal/provisioning/compute"
	"github.com/imamik/rlcluster/internal/provisioning/destroy"
	"github.com/imamik/rlcluster/internal/provisioning/infrastructure"
	"github.com/imamik/rlcluster/internal/topology"
)

// Orchestrator deploys and tears down a training cluster.
type Orchestrator struct {
	cfg        *config.Config
	client     platform.Client
	calculator *topology.Calculator
	observer   provisioning.Observer
	metrics    *provisioning.Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver sets the observer receiving provisioning events.
func WithObserver(o provisioning.Observer) Option {
	return func(r *Orchestrator) {
		r.observer = o
	}
}

// WithMetrics sets the metrics recorder shared by all runs.
func WithMetrics(m *provisioning.Metrics) Option {
	return func(r *Orchestrator) {
		r.metrics = m
	}
}

// New creates an orchestrator driving client.
func New(cfg *config.Config, client platform.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		client:     client,
		calculator: topology.NewCalculator(client),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.metrics == nil {
		o.metrics = provisioning.NewMetrics()
	}
	return o
}

// Plan is the computed layout of a deployment.
type Plan struct {
	Target    platform.Target
	Instances []topology.Instance
	Spec      *topology.ClusterSpec
	Jobs      []platform.JobSpec
}

// Plan computes the instances, cluster spec, and job definitions. The
// platform target is resolved on every call.
func (o *Orchestrator) Plan(ctx context.Context) (*Plan, error) {
	instances, err := topology.NewInstances(o.cfg.Instances, o.cfg.InstanceNames, o.cfg.Tags)
	if err != nil {
		return nil, fmt.Errorf("invalid instances: %w", err)
	}

	spec, target, err := o.calculator.Compute(ctx, instances, o.cfg.GRPCPort)
	if err != nil {
		return nil, err
	}

	jobs, err := launch.NewBuilder(o.cfg, spec).Jobs(instances)
	if err != nil {
		return nil, fmt.Errorf("failed to build jobs: %w", err)
	}

	return &Plan{Target: target, Instances: instances, Spec: spec, Jobs: jobs}, nil
}

// Deploy tears the namespace down and provisions the cluster from scratch.
//
// A topology or storage precondition failure aborts the deployment. Any
// other failed operation is returned as *provisioning.OperationErrors after
// every phase ran.
func (o *Orchestrator) Deploy(ctx context.Context) error {
	plan, err := o.Plan(ctx)
	if err != nil {
		return err
	}

	pCtx := o.newContext(ctx, plan.Target)
	pCtx.State.Instances = plan.Instances
	pCtx.State.Spec = plan.Spec
	pCtx.State.Jobs = plan.Jobs

	pCtx.Observer.Printf("Deploying %s: %d instances into %s (workers %s)",
		o.cfg.Name, len(plan.Instances), plan.Target.Namespace, plan.Spec.WorkersArg())

	return provisioning.RunPhases(pCtx, deployPhases())
}

func deployPhases() []provisioning.Phase {
	return []provisioning.Phase{
		destroy.NewProvisioner(),
		infrastructure.NewNetworkProvisioner(),
		infrastructure.NewStorageProvisioner(),
		compute.NewCreateProvisioner(),
		infrastructure.NewJoinProvisioner(),
		compute.NewAffinityProvisioner(),
		compute.NewStartProvisioner(),
	}
}

// DeployPhaseNames returns the names of the deploy phases in run order.
func DeployPhaseNames() []string {
	phases := deployPhases()
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Name()
	}
	return names
}

// Teardown deletes every job, network, and service in the namespace.
func (o *Orchestrator) Teardown(ctx context.Context) error {
	target, err := o.client.Target(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve platform target: %w", err)
	}

	return provisioning.RunPhases(o.newContext(ctx, target), []provisioning.Phase{
		destroy.NewProvisioner(),
	})
}

// Metrics returns the metrics recorded by all runs.
func (o *Orchestrator) Metrics() *provisioning.Metrics {
	return o.metrics
}

func (o *Orchestrator) newContext(ctx context.Context, target platform.Target) *provisioning.Context {
	observer := o.observer
	if observer == nil {
		observer = provisioning.NewLogObserver(logr.FromContextOrDiscard(ctx))
	}
	observer = observer.WithFields(map[string]string{
		"deployment": o.cfg.Name,
		"namespace":  target.Namespace,
	})

	pCtx := provisioning.NewContext(ctx, o.cfg, o.client,
		provisioning.WithObserver(observer),
		provisioning.WithMetrics(o.metrics),
	)
	pCtx.State.Target = target
	return pCtx
}
