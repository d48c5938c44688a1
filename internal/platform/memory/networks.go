package memory

import (
	"context"
	"fmt"
)

// ListNetworks returns the network names in lexical order.
func (c *Client) ListNetworks(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpListNetworks, ""); err != nil {
		return nil, err
	}
	return sortedKeys(c.networks), nil
}

// CreateNetwork creates an isolated network.
func (c *Client) CreateNetwork(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpCreateNetwork, name, name); err != nil {
		return err
	}
	if c.networks[name] {
		return c.fail(fmt.Errorf("network %s already exists", name))
	}
	c.networks[name] = true
	return nil
}

// DeleteNetwork deletes a network and detaches every member.
func (c *Client) DeleteNetwork(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpDeleteNetwork, name, name); err != nil {
		return err
	}
	if !c.networks[name] {
		return c.fail(notFound("network", name))
	}
	delete(c.networks, name)
	for _, j := range c.jobs {
		delete(j.Networks, name)
	}
	return nil
}

// JoinNetwork attaches a job under the requested discovery name. Discovery
// names are unique per network.
func (c *Client) JoinNetwork(_ context.Context, network, job, discoveryName string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpJoinNetwork, job, network, job, discoveryName); err != nil {
		return err
	}
	if !c.networks[network] {
		return c.fail(notFound("network", network))
	}
	j, ok := c.jobs[job]
	if !ok {
		return c.fail(notFound("job", job))
	}
	for name, other := range c.jobs {
		if name != job && other.Networks[network] == discoveryName {
			return c.fail(fmt.Errorf("discovery name %s already taken on network %s by %s", discoveryName, network, name))
		}
	}
	j.Networks[network] = discoveryName
	return nil
}
