package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/imamik/rlcluster/internal/platform"
)

// ListServices returns the service names in lexical order.
func (c *Client) ListServices(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpListServices, ""); err != nil {
		return nil, err
	}
	return sortedKeys(c.services), nil
}

// CreateService creates a service on one of the configured providers.
func (c *Client) CreateService(_ context.Context, name string, provider platform.StorageProvider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpCreateService, name, name, provider.String()); err != nil {
		return err
	}
	if !slices.Contains(c.providers, provider) {
		return c.fail(fmt.Errorf("storage provider %s: %w", provider, platform.ErrNotFound))
	}
	if _, ok := c.services[name]; ok {
		return c.fail(fmt.Errorf("service %s already exists", name))
	}
	c.services[name] = &Service{Name: name, Provider: provider}
	return nil
}

// DeleteService deletes a service and every binding to it.
func (c *Client) DeleteService(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpDeleteService, name, name); err != nil {
		return err
	}
	if _, ok := c.services[name]; !ok {
		return c.fail(notFound("service", name))
	}
	delete(c.services, name)
	for _, j := range c.jobs {
		delete(j.Bindings, name)
	}
	return nil
}

// BindService mounts a service into a job.
func (c *Client) BindService(_ context.Context, service, job, mountPath string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpBindService, job, service, job, mountPath); err != nil {
		return err
	}
	if _, ok := c.services[service]; !ok {
		return c.fail(notFound("service", service))
	}
	j, ok := c.jobs[job]
	if !ok {
		return c.fail(notFound("job", job))
	}
	j.Bindings[service] = mountPath
	return nil
}

// ListStorageProviders returns the configured providers.
func (c *Client) ListStorageProviders(_ context.Context) ([]platform.StorageProvider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpListStorageProviders, ""); err != nil {
		return nil, err
	}
	return slices.Clone(c.providers), nil
}
