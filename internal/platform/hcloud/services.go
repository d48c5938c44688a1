package hcloud

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/platform/s3"
)

// StorageProviderType is the type of the object-storage provider.
const StorageProviderType = config.StorageProviderS3

var errNoObjectStore = errors.New("object storage is not configured")

// bindingKey is the object recording a job's binding to a service.
func bindingKey(job string) string {
	return "bindings/" + job
}

// ListStorageProviders returns the object-storage region when object
// storage is configured, and nothing otherwise.
func (c *Client) ListStorageProviders(_ context.Context) ([]platform.StorageProvider, error) {
	if c.store == nil {
		return nil, nil
	}
	return []platform.StorageProvider{{Name: c.store.Region(), Type: StorageProviderType}}, nil
}

// ListServices returns the services of the namespace.
func (c *Client) ListServices(ctx context.Context) ([]string, error) {
	if c.store == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	prefix := c.resourceName("")
	buckets, err := c.store.ListBuckets(ctx, prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, strings.TrimPrefix(b, prefix))
	}
	return names, nil
}

// CreateService creates the service's bucket.
func (c *Client) CreateService(ctx context.Context, name string, provider platform.StorageProvider) error {
	if c.store == nil {
		return errNoObjectStore
	}
	if provider.Type != StorageProviderType || provider.Name != c.store.Region() {
		return fmt.Errorf("storage provider %s: %w", provider, platform.ErrNotFound)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()
	return c.store.CreateBucket(ctx, c.resourceName(name))
}

// DeleteService empties and deletes the service's bucket.
func (c *Client) DeleteService(ctx context.Context, name string) error {
	if c.store == nil {
		return errNoObjectStore
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	if err := c.store.DeleteBucket(ctx, c.resourceName(name)); err != nil {
		if s3.IsNotFound(err) {
			return fmt.Errorf("%w: %w", platform.ErrNotFound, err)
		}
		return err
	}
	return nil
}

// BindService records that job mounts service at mountPath.
func (c *Client) BindService(ctx context.Context, service, job, mountPath string) error {
	if c.store == nil {
		return errNoObjectStore
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	if _, err := c.getServer(ctx, job); err != nil {
		return err
	}
	if err := c.store.PutObject(ctx, c.resourceName(service), bindingKey(job), []byte(mountPath)); err != nil {
		if s3.IsNotFound(err) {
			return fmt.Errorf("%w: %w", platform.ErrNotFound, err)
		}
		return err
	}
	return nil
}
