// Package hcloud implements platform.Client on Hetzner Cloud.
//
// Resources map onto the platform model as follows:
//
//   - job: a server named <namespace>-<job>, created powered off. Its
//     cloud-init user data runs the job's container on first boot, so
//     StartJob is a power-on. The placement tag, when set, is the location.
//   - network: an hcloud network named <namespace>-<network> with one cloud
//     subnet. JoinNetwork attaches the server and records the requested
//     discovery name as a label.
//   - affinity: Hetzner cannot co-locate two servers on request. SetAffinity
//     verifies both servers share a datacenter, records the relation as
//     labels and fails under the hard policy when they do not.
//   - service: a bucket named <namespace>-<service> on Hetzner Object
//     Storage. The configured object-storage region is the only storage
//     provider, of type "s3". BindService writes bindings/<job> holding the
//     mount path.
//
// Every resource carries rlcluster.io labels (see the labels package) and is
// discovered by label selector, so several namespaces can share a project.
//
// Locked resources are retried with exponential backoff; all other errors are
// returned to the caller unchanged. Missing resources yield
// platform.ErrNotFound.
package hcloud
