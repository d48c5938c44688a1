package hcloud

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// DeleteOperation encapsulates deletion logic for any hcloud resource.
// It provides consistent timeout and error handling across resource types.
//
// Usage example:
//
//	func (c *Client) DeleteNetwork(ctx context.Context, name string) error {
//	    return (&DeleteOperation[*hcloud.Network]{
//	        Name:         c.resourceName(name),
//	        ResourceType: "network",
//	        Get:          c.client.Network.Get,
//	        Delete:       deleteWithoutAction(c.client.Network.Delete),
//	    }).Execute(ctx, c)
//	}
type DeleteOperation[T any] struct {
	Name         string
	ResourceType string

	// Get retrieves the resource by name
	Get func(ctx context.Context, name string) (T, *hcloud.Response, error)

	// Delete removes the resource and returns the action to wait for, if any
	Delete func(ctx context.Context, resource T) (*hcloud.Action, error)
}

// Execute performs the delete operation within the delete timeout. A missing
// resource is reported as platform.ErrNotFound. Every failure, a locked
// resource included, is returned to the caller as is.
func (op *DeleteOperation[T]) Execute(ctx context.Context, c *Client) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	resource, _, err := op.Get(ctx, op.Name)
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", op.ResourceType, err)
	}
	if reflect.ValueOf(resource).IsNil() {
		return notFound(op.ResourceType, op.Name)
	}

	action, err := op.Delete(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.Name, err)
	}
	return waitForActions(ctx, c.client, action)
}

// deleteWithoutAction adapts delete calls that complete synchronously.
func deleteWithoutAction[T any](fn func(context.Context, T) (*hcloud.Response, error)) func(context.Context, T) (*hcloud.Action, error) {
	return func(ctx context.Context, resource T) (*hcloud.Action, error) {
		_, err := fn(ctx, resource)
		return nil, err
	}
}

// waitForActions waits for the non-nil actions to complete.
func waitForActions(ctx context.Context, client *hcloud.Client, actions ...*hcloud.Action) error {
	pending := make([]*hcloud.Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	return client.Action.WaitFor(ctx, pending...)
}
