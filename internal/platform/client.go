package platform

import (
	"context"
	"fmt"
)

// Target describes the namespace the client is pointed at.
type Target struct {
	// Namespace scopes every listed and created resource.
	Namespace string

	// DiscoveryDomain is the platform-local suffix under which jobs that have
	// joined a network are resolvable (e.g. "apcera.local").
	DiscoveryDomain string
}

// StorageProvider is a backend able to host shared-storage services.
type StorageProvider struct {
	Name      string
	Namespace string
	Type      string
}

// String returns the provider reference in the form used by drivers.
func (p StorageProvider) String() string {
	if p.Namespace == "" {
		return p.Name
	}
	return fmt.Sprintf("%s::%s", p.Namespace, p.Name)
}

// AffinityPolicy selects how strictly two jobs must be co-located.
type AffinityPolicy string

// Affinity policies.
const (
	AffinityHard AffinityPolicy = "hard"
	AffinitySoft AffinityPolicy = "soft"
)

// Valid reports whether the policy is known.
func (p AffinityPolicy) Valid() bool {
	return p == AffinityHard || p == AffinitySoft
}

// Targeter resolves the current target.
type Targeter interface {
	Target(ctx context.Context) (Target, error)
}

// JobManager defines the operations on jobs.
type JobManager interface {
	ListJobs(ctx context.Context) ([]string, error)
	// CreateJob creates the job without starting it.
	CreateJob(ctx context.Context, spec JobSpec) error
	DeleteJob(ctx context.Context, name string) error
	StartJob(ctx context.Context, name string) error
	// SetAffinity asks the platform to place job on the same host as toJob.
	SetAffinity(ctx context.Context, job, toJob string, policy AffinityPolicy) error
}

// NetworkManager defines the operations on isolated networks.
type NetworkManager interface {
	ListNetworks(ctx context.Context) ([]string, error)
	CreateNetwork(ctx context.Context, name string) error
	DeleteNetwork(ctx context.Context, name string) error
	// JoinNetwork attaches job to network and requests discoveryName as the
	// name under which other members resolve it.
	JoinNetwork(ctx context.Context, network, job, discoveryName string) error
}

// ServiceManager defines the operations on shared-storage services.
type ServiceManager interface {
	ListServices(ctx context.Context) ([]string, error)
	CreateService(ctx context.Context, name string, provider StorageProvider) error
	DeleteService(ctx context.Context, name string) error
	BindService(ctx context.Context, service, job, mountPath string) error
	ListStorageProviders(ctx context.Context) ([]StorageProvider, error)
}

// Client combines all platform capabilities.
type Client interface {
	Targeter
	JobManager
	NetworkManager
	ServiceManager
}
