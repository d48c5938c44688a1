// Package compute provisions the jobs of a deployment.
//
// Jobs are created stopped and bound to the log service in parallel.
// Each worker is then tied to its gym, and finally all jobs are started:
// parameter servers and gyms first, workers once those have returned.
package compute
