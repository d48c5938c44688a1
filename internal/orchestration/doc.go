// Package orchestration provides high-level workflow coordination for
// deploying a training cluster.
//
// This package orchestrates the deployment by delegating to the phase
// provisioners in the internal/provisioning subpackages. It computes the
// topology, defines the execution order, and passes state between phases.
//
// # Workflow
//
// Deploy executes the following phases in order, each one a barrier:
//  1. Teardown - Delete every job, network, and service in the namespace
//  2. Network - Create the deployment network
//  3. Storage - Select the storage provider and create the log service
//  4. Create - Create and bind every job, stopped
//  5. Join - Attach every job to the deployment network
//  6. Affinity - Tie each worker to its gym
//  7. Start - Start parameter servers and gyms, then workers
//
// # Usage
//
//	o := orchestration.New(cfg, client)
//	if err := o.Deploy(ctx); err != nil {
//	    var failures *provisioning.OperationErrors
//	    if errors.As(err, &failures) { ... }
//	}
//
// Nothing is rolled back or retried. Running Deploy again tears the
// namespace down and starts over.
package orchestration
