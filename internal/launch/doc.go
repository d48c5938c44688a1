// Package launch builds the platform job definitions for every role of a
// training cluster.
//
// Each role gets a [platform.JobSpec] with a structured [platform.Command];
// nothing here concatenates shell strings. The builders only read the
// deployment configuration and the resolved [topology.ClusterSpec], so the
// same inputs always produce the same jobs.
package launch
