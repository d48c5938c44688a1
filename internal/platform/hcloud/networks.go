package hcloud

import (
	"context"
	"fmt"
	"net"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/rlcluster/internal/util/labels"
)

// ListNetworks returns the networks of the namespace.
func (c *Client) ListNetworks(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	networks, err := c.client.Network.AllWithOpts(ctx, hcloud.NetworkListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: labels.SelectorForNamespace(c.cfg.Namespace, labels.KindNetwork)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	names := make([]string, 0, len(networks))
	for _, n := range networks {
		names = append(names, n.Labels[labels.KeyName])
	}
	return names, nil
}

// CreateNetwork creates a network with a single cloud subnet for jobs.
func (c *Client) CreateNetwork(ctx context.Context, name string) error {
	_, ipRange, err := net.ParseCIDR(c.cfg.NetworkCIDR)
	if err != nil {
		return fmt.Errorf("invalid network ip range: %w", err)
	}
	subnet, err := c.cfg.JobSubnet()
	if err != nil {
		return err
	}
	_, subnetRange, err := net.ParseCIDR(subnet)
	if err != nil {
		return fmt.Errorf("invalid subnet ip range: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	_, _, err = c.client.Network.Create(ctx, hcloud.NetworkCreateOpts{
		Name:    c.resourceName(name),
		IPRange: ipRange,
		Labels: labels.NewLabelBuilder(c.cfg.Namespace).
			WithKind(labels.KindNetwork).
			WithName(name).
			Build(),
		Subnets: []hcloud.NetworkSubnet{{
			Type:        hcloud.NetworkSubnetTypeCloud,
			IPRange:     subnetRange,
			NetworkZone: hcloud.NetworkZone(c.cfg.NetworkZone),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to create network %s: %w", name, err)
	}
	return nil
}

// DeleteNetwork deletes a network.
func (c *Client) DeleteNetwork(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Network]{
		Name:         c.resourceName(name),
		ResourceType: "network",
		Get:          c.client.Network.Get,
		Delete:       deleteWithoutAction(c.client.Network.Delete),
	}).Execute(ctx, c)
}

// JoinNetwork attaches the job's server to the network and records the
// discovery name it should be resolvable under.
func (c *Client) JoinNetwork(ctx context.Context, network, job, discoveryName string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Action)
	defer cancel()

	nw, _, err := c.client.Network.Get(ctx, c.resourceName(network))
	if err != nil {
		return fmt.Errorf("failed to get network %s: %w", network, err)
	}
	if nw == nil {
		return notFound("network", network)
	}
	server, err := c.getServer(ctx, job)
	if err != nil {
		return err
	}

	action, _, err := c.client.Server.AttachToNetwork(ctx, server, hcloud.ServerAttachToNetworkOpts{Network: nw})
	if err == nil {
		err = waitForActions(ctx, c.client, action)
	}
	if err != nil {
		return fmt.Errorf("failed to attach job %s to network %s: %w", job, network, mapNotFound(err))
	}

	updated := labels.NewLabelBuilder(c.cfg.Namespace).
		Merge(server.Labels).
		WithIfSet(labels.KeyDiscovery, discoveryName).
		Build()
	if _, _, err := c.client.Server.Update(ctx, server, hcloud.ServerUpdateOpts{Labels: updated}); err != nil {
		return fmt.Errorf("failed to record discovery name of job %s: %w", job, err)
	}
	return nil
}
