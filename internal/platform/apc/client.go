package apc

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
)

// Client drives the platform through apc.
type Client struct {
	runner   Runner
	domain   string
	timeouts *config.Timeouts
}

var _ platform.Client = (*Client)(nil)

// NewClient creates a client. domain is the discovery domain of the cluster
// apc is targeted at.
func NewClient(runner Runner, domain string, timeouts *config.Timeouts) *Client {
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	return &Client{runner: runner, domain: domain, timeouts: timeouts}
}

var notFoundRe = regexp.MustCompile(`(?i)(not found|does not exist|no such)`)

// run invokes apc in batch mode.
func (c *Client) run(ctx context.Context, timeout time.Duration, args ...string) ([]byte, error) {
	return c.invoke(ctx, timeout, append(args, "--batch"))
}

func (c *Client) invoke(ctx context.Context, timeout time.Duration, args []string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := c.runner.Run(ctx, args)
	if err != nil {
		var runErr *RunError
		if errors.As(err, &runErr) && notFoundRe.MatchString(runErr.Output) {
			return out, fmt.Errorf("%w: %w", platform.ErrNotFound, err)
		}
		return out, err
	}
	return out, nil
}

var namespaceRe = regexp.MustCompile(`'(/[^']*)'`)

// Target reads the current namespace from apc.
func (c *Client) Target(ctx context.Context) (platform.Target, error) {
	out, err := c.run(ctx, c.timeouts.Call, "namespace")
	if err != nil {
		return platform.Target{}, err
	}
	m := namespaceRe.FindSubmatch(out)
	if m == nil {
		return platform.Target{}, fmt.Errorf("unexpected apc namespace output: %q", strings.TrimSpace(string(out)))
	}
	return platform.Target{Namespace: string(m[1]), DiscoveryDomain: c.domain}, nil
}

// ListJobs lists jobs in the current namespace.
func (c *Client) ListJobs(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, c.timeouts.Call, "app", "list")
	if err != nil {
		return nil, err
	}
	return names(out), nil
}

// CreateJob creates a stopped docker job.
func (c *Client) CreateJob(ctx context.Context, spec platform.JobSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	_, err := c.run(ctx, c.timeouts.Action, createJobArgs(spec)...)
	return err
}

func createJobArgs(spec platform.JobSpec) []string {
	args := []string{"docker", "run", spec.Name, "--image", spec.Image, "--no-start", "--allow-egress"}
	if spec.MemoryMB > 0 {
		args = append(args, "--memory", strconv.Itoa(spec.MemoryMB)+"MB")
	}
	if spec.StartTimeout > 0 {
		args = append(args, "--timeout", strconv.Itoa(int(spec.StartTimeout.Seconds())))
	}
	for _, p := range spec.Ports {
		args = append(args, "--port", strconv.Itoa(p.Number))
	}
	for _, r := range spec.Routes {
		args = append(args, "--route", r.URL+":"+strconv.Itoa(r.Port))
	}
	for _, k := range slices.Sorted(maps.Keys(spec.Env)) {
		args = append(args, "--env-set", k+"="+spec.Env[k])
	}
	if !spec.Command.IsZero() {
		args = append(args, "--start-cmd", spec.Command.Shell())
	}
	if spec.PlacementTag != "" {
		args = append(args, "--tag", spec.PlacementTag)
	}
	return args
}

// DeleteJob deletes a job.
func (c *Client) DeleteJob(ctx context.Context, name string) error {
	_, err := c.run(ctx, c.timeouts.Delete, "app", "delete", name)
	return err
}

// StartJob starts a job and waits for apc to report it started.
func (c *Client) StartJob(ctx context.Context, name string) error {
	_, err := c.run(ctx, c.timeouts.Action, "app", "start", name)
	return err
}

// SetAffinity pins job to the host of toJob.
func (c *Client) SetAffinity(ctx context.Context, job, toJob string, policy platform.AffinityPolicy) error {
	if !policy.Valid() {
		return fmt.Errorf("unknown affinity policy %q", policy)
	}
	_, err := c.run(ctx, c.timeouts.Call, "app", "update", job, "--affinity", toJob, "--affinity-type", string(policy))
	return err
}

// ListNetworks lists networks in the current namespace.
func (c *Client) ListNetworks(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, c.timeouts.Call, "network", "list")
	if err != nil {
		return nil, err
	}
	return names(out), nil
}

// CreateNetwork creates an isolated virtual network.
func (c *Client) CreateNetwork(ctx context.Context, name string) error {
	_, err := c.run(ctx, c.timeouts.Call, "network", "create", name)
	return err
}

// DeleteNetwork deletes a network.
func (c *Client) DeleteNetwork(ctx context.Context, name string) error {
	_, err := c.run(ctx, c.timeouts.Delete, "network", "delete", name)
	return err
}

// JoinNetwork attaches a job to a network under discoveryName.
func (c *Client) JoinNetwork(ctx context.Context, network, job, discoveryName string) error {
	_, err := c.run(ctx, c.timeouts.Call, "network", "join", network, "--job", job, "--discovery-address", discoveryName)
	return err
}

// ListServices lists services in the current namespace.
func (c *Client) ListServices(ctx context.Context) ([]string, error) {
	out, err := c.run(ctx, c.timeouts.Call, "service", "list")
	if err != nil {
		return nil, err
	}
	return names(out), nil
}

// CreateService creates a shared-storage service on provider.
func (c *Client) CreateService(ctx context.Context, name string, provider platform.StorageProvider) error {
	_, err := c.run(ctx, c.timeouts.Action, "service", "create", name, "--provider", provider.String())
	return err
}

// DeleteService deletes a service.
func (c *Client) DeleteService(ctx context.Context, name string) error {
	_, err := c.run(ctx, c.timeouts.Delete, "service", "delete", name)
	return err
}

// BindService mounts service into job at mountPath.
func (c *Client) BindService(ctx context.Context, service, job, mountPath string) error {
	// Binding parameters follow "--", after every apc flag.
	_, err := c.invoke(ctx, c.timeouts.Action,
		[]string{"service", "bind", service, "--job", job, "--batch", "--", "--mountpath", mountPath})
	return err
}

// ListStorageProviders lists the providers visible from the namespace.
func (c *Client) ListStorageProviders(ctx context.Context) ([]platform.StorageProvider, error) {
	out, err := c.run(ctx, c.timeouts.Call, "provider", "list")
	if err != nil {
		return nil, err
	}
	var providers []platform.StorageProvider
	for _, row := range ParseTable(out) {
		if row["name"] == "" {
			continue
		}
		providers = append(providers, platform.StorageProvider{
			Name:      row["name"],
			Namespace: row["namespace"],
			Type:      row["type"],
		})
	}
	return providers, nil
}
