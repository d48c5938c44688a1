package hcloud

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/util/labels"
)

const keyStartTimeout = "rlcluster.io/start-timeout"

// ListJobs returns the jobs of the namespace.
func (c *Client) ListJobs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	servers, err := c.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: labels.SelectorForNamespace(c.cfg.Namespace, labels.KindJob)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	names := make([]string, 0, len(servers))
	for _, s := range servers {
		names = append(names, s.Labels[labels.KeyName])
	}
	return names, nil
}

// CreateJob creates the job's server powered off.
func (c *Client) CreateJob(ctx context.Context, spec platform.JobSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	userData, err := renderUserData(spec)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Action)
	defer cancel()

	opts, err := c.buildServerCreateOpts(ctx, spec, userData)
	if err != nil {
		return err
	}

	result, _, err := c.client.Server.Create(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to create server for job %s: %w", spec.Name, err)
	}

	if err := waitForActions(ctx, c.client, append([]*hcloud.Action{result.Action}, result.NextActions...)...); err != nil {
		return fmt.Errorf("failed to wait for server creation: %w", err)
	}
	return nil
}

func (c *Client) buildServerCreateOpts(ctx context.Context, spec platform.JobSpec, userData string) (hcloud.ServerCreateOpts, error) {
	serverType, _, err := c.client.ServerType.Get(ctx, c.cfg.ServerType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get server type: %w", err)
	}
	if serverType == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("server type not found: %s", c.cfg.ServerType)
	}

	image, _, err := c.client.Image.GetForArchitecture(ctx, c.cfg.Image, serverType.Architecture)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get image: %w", err)
	}
	if image == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("image not found: %s (%s)", c.cfg.Image, serverType.Architecture)
	}

	sshKeys, err := c.resolveSSHKeys(ctx, c.cfg.SSHKeys)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	location := c.cfg.Location
	if spec.PlacementTag != "" {
		location = spec.PlacementTag
	}
	loc, err := c.resolveLocation(ctx, location)
	if err != nil {
		return hcloud.ServerCreateOpts{}, err
	}

	lb := labels.NewLabelBuilder(c.cfg.Namespace).
		WithKind(labels.KindJob).
		WithName(spec.Name).
		WithIfSet(labels.KeyPlacement, spec.PlacementTag)
	if spec.StartTimeout > 0 {
		lb.WithIfSet(keyStartTimeout, strconv.Itoa(int(spec.StartTimeout.Seconds())))
	}

	return hcloud.ServerCreateOpts{
		Name:             c.resourceName(spec.Name),
		ServerType:       serverType,
		Image:            image,
		SSHKeys:          sshKeys,
		Location:         loc,
		Labels:           lb.Build(),
		UserData:         userData,
		StartAfterCreate: hcloud.Ptr(false),
	}, nil
}

// resolveSSHKeys resolves SSH key names/IDs to SSH key objects.
func (c *Client) resolveSSHKeys(ctx context.Context, sshKeys []string) ([]*hcloud.SSHKey, error) {
	var sshKeyObjs []*hcloud.SSHKey
	for _, key := range sshKeys {
		keyObj, _, err := c.client.SSHKey.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to get ssh key %s: %w", key, err)
		}
		if keyObj == nil {
			return nil, fmt.Errorf("ssh key not found: %s", key)
		}
		sshKeyObjs = append(sshKeyObjs, keyObj)
	}
	return sshKeyObjs, nil
}

// DeleteJob deletes the job's server.
func (c *Client) DeleteJob(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Server]{
		Name:         c.resourceName(name),
		ResourceType: "server",
		Get:          c.client.Server.Get,
		Delete: func(ctx context.Context, server *hcloud.Server) (*hcloud.Action, error) {
			result, _, err := c.client.Server.DeleteWithResult(ctx, server)
			if err != nil {
				return nil, err
			}
			return result.Action, nil
		},
	}).Execute(ctx, c)
}

// getServer returns the job's server or platform.ErrNotFound.
func (c *Client) getServer(ctx context.Context, job string) (*hcloud.Server, error) {
	server, _, err := c.client.Server.Get(ctx, c.resourceName(job))
	if err != nil {
		return nil, fmt.Errorf("failed to get server for job %s: %w", job, err)
	}
	if server == nil {
		return nil, notFound("job", job)
	}
	return server, nil
}

// StartJob powers the job's server on. The wait honors the job's start
// timeout when it exceeds the action timeout.
func (c *Client) StartJob(ctx context.Context, name string) error {
	server, err := c.getServer(ctx, name)
	if err != nil {
		return err
	}

	timeout := c.timeouts.Action
	if s, err := strconv.Atoi(server.Labels[keyStartTimeout]); err == nil {
		timeout = max(timeout, time.Duration(s)*time.Second)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	action, _, err := c.client.Server.Poweron(ctx, server)
	if err != nil {
		return fmt.Errorf("failed to power on job %s: %w", name, mapNotFound(err))
	}
	if err := waitForActions(ctx, c.client, action); err != nil {
		return fmt.Errorf("failed to wait for job %s power on: %w", name, err)
	}
	return nil
}

// SetAffinity verifies job shares toJob's datacenter and records the
// relation on job's server. A mismatch fails under the hard policy and is
// recorded as unsatisfied under the soft policy.
func (c *Client) SetAffinity(ctx context.Context, job, toJob string, policy platform.AffinityPolicy) error {
	if !policy.Valid() {
		return fmt.Errorf("unknown affinity policy %q", policy)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	server, err := c.getServer(ctx, job)
	if err != nil {
		return err
	}
	target, err := c.getServer(ctx, toJob)
	if err != nil {
		return err
	}

	satisfied := sameDatacenter(server, target)
	if !satisfied && policy == platform.AffinityHard {
		return fmt.Errorf("job %s (%s) cannot be co-located with %s (%s)",
			job, datacenterName(server), toJob, datacenterName(target))
	}

	updated := labels.NewLabelBuilder(c.cfg.Namespace).
		Merge(server.Labels).
		WithIfSet(labels.KeyAffinity, toJob).
		WithIfSet(labels.KeyAffinityOK, strconv.FormatBool(satisfied)).
		Build()
	if _, _, err := c.client.Server.Update(ctx, server, hcloud.ServerUpdateOpts{Labels: updated}); err != nil {
		return fmt.Errorf("failed to record affinity of job %s: %w", job, mapNotFound(err))
	}
	return nil
}

func sameDatacenter(a, b *hcloud.Server) bool {
	return a.Datacenter != nil && b.Datacenter != nil && a.Datacenter.Name == b.Datacenter.Name
}

func datacenterName(s *hcloud.Server) string {
	if s.Datacenter == nil {
		return "unknown datacenter"
	}
	return s.Datacenter.Name
}
