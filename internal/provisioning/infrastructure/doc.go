// Package infrastructure provisions the shared resources of a deployment:
// its network, its log storage service, and the network membership of
// every job.
//
// The storage phase checks its precondition before anything is created.
// Without a storage provider of the configured type the deployment stops.
package infrastructure
