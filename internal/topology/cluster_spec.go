package topology

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// ClusterSpec is the resolved network topology of one deployment.
type ClusterSpec struct {
	ParameterServers []string
	Workers          []string
	Gyms             []string

	// Domain is the discovery domain the addresses were derived from.
	Domain string
}

// WorkersArg returns the flattened parameter-server and worker address list
// passed to every agent process. Position in this list is the task identity.
func (s *ClusterSpec) WorkersArg() string {
	all := make([]string, 0, len(s.ParameterServers)+len(s.Workers))
	all = append(all, s.ParameterServers...)
	all = append(all, s.Workers...)
	return strings.Join(all, ",")
}

// Build derives the cluster spec from instances. It performs no I/O.
func Build(instances []Instance, grpcPort int, domain string) *ClusterSpec {
	port := strconv.Itoa(grpcPort)
	spec := &ClusterSpec{
		ParameterServers: []string{net.JoinHostPort(naming.DiscoveryAddress(naming.ParameterServer(0), domain), port)},
		Workers:          make([]string, len(instances)),
		Gyms:             make([]string, len(instances)),
		Domain:           domain,
	}
	for i, inst := range instances {
		spec.Workers[i] = net.JoinHostPort(naming.DiscoveryAddress(inst.WorkerName, domain), port)
		spec.Gyms[i] = naming.DiscoveryAddress(inst.GymName, domain)
	}
	return spec
}

// Calculator computes cluster specs against the platform's current target.
type Calculator struct {
	targeter platform.Targeter
}

// NewCalculator creates a calculator resolving targets through t.
func NewCalculator(t platform.Targeter) *Calculator {
	return &Calculator{targeter: t}
}

// Compute resolves the discovery domain and builds the cluster spec. The
// target is fetched on every call.
func (c *Calculator) Compute(ctx context.Context, instances []Instance, grpcPort int) (*ClusterSpec, platform.Target, error) {
	target, err := c.targeter.Target(ctx)
	if err != nil {
		return nil, platform.Target{}, fmt.Errorf("failed to resolve platform target: %w", err)
	}
	if target.DiscoveryDomain == "" {
		return nil, target, fmt.Errorf("platform target %q has no discovery domain", target.Namespace)
	}
	return Build(instances, grpcPort, target.DiscoveryDomain), target, nil
}
