// Package topology maps an instance count and optional names/tags to the
// concrete roles of a training cluster and their discovery addresses.
//
// Every instance is one gym paired with one worker. The cluster always has a
// single parameter server, ps0. The flattened address list produced by
// [ClusterSpec.WorkersArg] fixes task assignment for every agent process, so
// it must be byte-identical across all jobs of one deployment.
package topology
