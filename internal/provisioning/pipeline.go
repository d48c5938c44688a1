package provisioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/imamik/rlcluster/internal/util/async"
)

// Phase is one barrier step of a deployment.
type Phase interface {
	Name() string

	// Provision runs the phase against ctx.Client. Failures of single
	// operations are recorded in ctx.State; a returned error aborts the run.
	Provision(ctx *Context) error
}

// RunPhases executes all provisioning phases sequentially. Each phase is a
// barrier: it returns only once all of its operations finished.
//
// A phase error stops the run. Otherwise the failed operations recorded
// during the run are returned as *OperationErrors.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting provisioning with %d phases...", len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		LogPhaseStart(ctx.Observer, name)
		err := phase.Provision(ctx)
		ctx.Metrics.ObservePhase(phase.Name(), time.Since(phaseStart))

		if err != nil {
			LogPhaseFailed(ctx.Observer, name, err)
			err = fmt.Errorf("%s phase failed: %w", phase.Name(), err)
			if failures := ctx.State.Failures(); failures != nil {
				return errors.Join(err, failures)
			}
			return err
		}
		LogPhaseComplete(ctx.Observer, name, time.Since(phaseStart))
	}

	if failures := ctx.State.Failures(); failures != nil {
		ctx.Observer.Printf("Provisioning finished in %v with %d failed operations",
			time.Since(start).Round(time.Millisecond), len(failures.Errors))
		return failures
	}
	ctx.Observer.Printf("Provisioning completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

// Do runs a single platform operation on resource. A failure is logged,
// recorded in the state, and returned; the outcome is counted either way.
func (c *Context) Do(op, resource string, fn func(context.Context) error) error {
	err := fn(c)
	c.Metrics.RecordOperation(op, err)
	if err != nil {
		c.Observer.Event(Event{
			Type:     EventOperationFailed,
			Resource: resource,
			Message:  op + " failed",
			Err:      err,
			Fields:   map[string]string{"op": op},
		})
		c.State.AddFailure(&OperationError{Op: op, Resource: resource, Err: err})
		return err
	}
	c.Observer.Event(Event{
		Type:     EventOperationCompleted,
		Resource: resource,
		Message:  op,
		Fields:   map[string]string{"op": op},
	})
	return nil
}

// ForEach calls fn for every item on a worker pool sized by
// Config.Parallelism and waits for all calls to return.
func ForEach[T any](ctx *Context, items []T, fn func(T) error) []async.Result[T] {
	return async.Apply(ctx, items, func(_ context.Context, item T) error {
		return fn(item)
	}, ctx.Config.Parallelism)
}
