package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of applying a function to one input.
type Result[T any] struct {
	Input T
	Err   error
}

// Apply calls fn for every item on a pool of at most limit goroutines and
// blocks until all calls have returned. A limit <= 0 sizes the pool to the
// number of items. Errors are reported per item; one failing item does not
// stop or cancel the others.
//
// Results are returned in input order, but execution order is unspecified.
//
// Example:
//
//	results := async.Apply(ctx, jobs, func(ctx context.Context, job string) error {
//	    return client.StartJob(ctx, job)
//	}, 8)
func Apply[T any](ctx context.Context, items []T, fn func(context.Context, T) error, limit int) []Result[T] {
	if len(items) == 0 {
		return nil
	}
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}

	results := make([]Result[T], len(items))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			results[i] = Result[T]{Input: item, Err: fn(ctx, item)}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Errors returns the non-nil errors of results, in input order.
func Errors[T any](results []Result[T]) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
