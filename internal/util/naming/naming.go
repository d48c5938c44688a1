package naming

import (
	"fmt"
	"strings"
)

// Role names used in job launch arguments.
const (
	RoleParameterServer = "ps"
	RoleWorker          = "worker"
)

const (
	gymPrefix     = "vehicle"
	workerSuffix  = "worker"
	serviceSuffix = "-logs"
)

// Naming functions for deployment resources.

func ParameterServer(index int) string {
	return fmt.Sprintf("%s%d", RoleParameterServer, index)
}

func Gym(index int) string {
	return fmt.Sprintf("%s%d", gymPrefix, index)
}

func Worker(gym string) string {
	return gym + workerSuffix
}

func Network(deployment string) string {
	return deployment
}

func Service(deployment string) string {
	return deployment + serviceSuffix
}

// IsWorker reports whether a job name belongs to the worker role.
func IsWorker(job string) bool {
	return strings.HasSuffix(job, workerSuffix) && job != workerSuffix
}

// DiscoveryAddress returns the platform-local name under which a job is
// reachable once it has joined the deployment network.
func DiscoveryAddress(job, domain string) string {
	if domain == "" {
		return job
	}
	return job + "." + strings.TrimPrefix(domain, ".")
}

// ValidJob reports whether name is usable as a job name: lowercase
// alphanumerics and dashes, starting with a letter, at most 63 characters.
func ValidJob(name string) bool {
	if name == "" || len(name) > 63 {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case (r >= '0' && r <= '9') || r == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return !strings.HasSuffix(name, "-")
}
