package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
)

// ObjectStore is the bucket storage backing services.
type ObjectStore interface {
	Region() string
	CreateBucket(ctx context.Context, name string) error
	ListBuckets(ctx context.Context, prefix string) ([]string, error)
	PutObject(ctx context.Context, bucket, key string, data []byte) error
	DeleteBucket(ctx context.Context, name string) error
}

// Client implements platform.Client using the Hetzner Cloud API.
type Client struct {
	client   *hcloud.Client
	cfg      config.HCloudConfig
	timeouts *config.Timeouts
	store    ObjectStore
}

var _ platform.Client = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithObjectStore enables services backed by store.
func WithObjectStore(store ObjectStore) ClientOption {
	return func(c *Client) {
		c.store = store
	}
}

// NewClient creates a Client for the given configuration.
func NewClient(cfg config.HCloudConfig, opts ...ClientOption) *Client {
	c := &Client{
		cfg:      cfg,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = hcloud.NewClient(
			hcloud.WithToken(cfg.Token),
			hcloud.WithApplication("rlcluster", ""),
			hcloud.WithPollOpts(hcloud.PollOpts{BackoffFunc: hcloud.ConstantBackoff(c.timeouts.PollInterval)}),
			// A failed call is reported, never repeated.
			hcloud.WithRetryOpts(hcloud.RetryOpts{MaxRetries: 0}),
		)
	}
	return c
}

// Target checks the token against the configured location and returns the
// configured namespace.
func (c *Client) Target(ctx context.Context) (platform.Target, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Call)
	defer cancel()

	if _, err := c.resolveLocation(ctx, c.cfg.Location); err != nil {
		return platform.Target{}, err
	}
	return platform.Target{Namespace: c.cfg.Namespace, DiscoveryDomain: c.cfg.DiscoveryDomain}, nil
}

// resourceName is the project-wide name of a namespaced resource.
func (c *Client) resourceName(name string) string {
	return c.cfg.Namespace + "-" + name
}

// resolveLocation resolves a location name to a location object.
func (c *Client) resolveLocation(ctx context.Context, location string) (*hcloud.Location, error) {
	locObj, _, err := c.client.Location.Get(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to get location %s: %w", location, err)
	}
	if locObj == nil {
		return nil, fmt.Errorf("location not found: %s", location)
	}
	return locObj, nil
}
