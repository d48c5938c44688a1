// Package platform defines the contract between the provisioning orchestrator
// and the remote platform that runs jobs.
//
// The contract is split into capability interfaces (jobs, networks, services,
// storage providers, target) combined into [Client]. Drivers live in
// subpackages:
//
//   - apc/: drives the apc command-line client through structured argv
//   - hcloud/: Hetzner Cloud servers, networks and Object Storage buckets
//   - memory/: in-process namespace used by tests and dry runs
//
// Drivers apply their own call timeouts and never retry. A failed call is
// returned to the caller; resources the driver cannot find are reported with
// an error matching [ErrNotFound].
package platform
