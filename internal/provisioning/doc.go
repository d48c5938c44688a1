// Package provisioning provides shared types, interfaces, and the phase
// runner for deploying a training cluster.
//
// # Subpackages
//
//   - destroy/: Teardown of every job, network, and service in the namespace
//   - infrastructure/: Deployment network, storage service, and network join
//   - compute/: Job creation, placement affinity, and start
//
// # Core Types
//
// Context carries configuration, state, the platform client, the observer,
// and metrics. Phase defines a provisioning step with Name() and Provision()
// methods. State accumulates results from each phase (target, topology,
// storage provider) together with the per-operation failures.
//
// A Phase returns an error only for failures that make later phases
// pointless. Failures of single platform operations are recorded with
// Context.Do and reported once all phases ran.
package provisioning
