package provisioning

import (
	"context"
	"sync"

	"github.com/go-logr/logr"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/topology"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// Topology results (populated before the first phase)
	Target    platform.Target
	Instances []topology.Instance
	Spec      *topology.ClusterSpec
	Jobs      []platform.JobSpec

	// Storage results (populated by the storage phase)
	Provider platform.StorageProvider

	mu       sync.Mutex
	failures OperationErrors
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}

// AddFailure records a failed platform operation. Safe for concurrent use.
func (s *State) AddFailure(err *OperationError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures.Add(err)
}

// Failures returns the recorded failures, or nil if there are none.
func (s *State) Failures() *OperationErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.failures.HasErrors() {
		return nil
	}
	return &OperationErrors{Errors: append([]*OperationError(nil), s.failures.Errors...)}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Platform platform.Client
	Observer Observer
	Metrics  *Metrics
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithObserver sets the observer receiving provisioning events.
func WithObserver(o Observer) ContextOption {
	return func(c *Context) {
		c.Observer = o
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *Metrics) ContextOption {
	return func(c *Context) {
		c.Metrics = m
	}
}

// NewContext creates a new provisioning context. Without options, events
// go to the logger stored in ctx and metrics to a private registry.
func NewContext(ctx context.Context, cfg *config.Config, client platform.Client, opts ...ContextOption) *Context {
	c := &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Platform: client,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Observer == nil {
		c.Observer = NewLogObserver(logr.FromContextOrDiscard(ctx))
	}
	if c.Metrics == nil {
		c.Metrics = NewMetrics()
	}
	return c
}
