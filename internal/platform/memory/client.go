package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/imamik/rlcluster/internal/platform"
)

// Operation names recorded in the call log.
const (
	OpTarget               = "Target"
	OpListJobs             = "ListJobs"
	OpCreateJob            = "CreateJob"
	OpDeleteJob            = "DeleteJob"
	OpStartJob             = "StartJob"
	OpSetAffinity          = "SetAffinity"
	OpListNetworks         = "ListNetworks"
	OpCreateNetwork        = "CreateNetwork"
	OpDeleteNetwork        = "DeleteNetwork"
	OpJoinNetwork          = "JoinNetwork"
	OpListServices         = "ListServices"
	OpCreateService        = "CreateService"
	OpDeleteService        = "DeleteService"
	OpBindService          = "BindService"
	OpListStorageProviders = "ListStorageProviders"
)

// Call is one recorded client invocation.
type Call struct {
	Seq  int
	Op   string
	Args []string
	Err  error
}

// String formats the call as "Op(arg, arg)".
func (c Call) String() string {
	s := fmt.Sprintf("%s(%s)", c.Op, strings.Join(c.Args, ", "))
	if c.Err != nil {
		s += " -> " + c.Err.Error()
	}
	return s
}

// Job is the state of one job in the namespace.
type Job struct {
	Spec     platform.JobSpec
	Started  bool
	Networks map[string]string // network -> discovery name
	Bindings map[string]string // service -> mount path

	AffinityTo     string
	AffinityPolicy platform.AffinityPolicy
}

// Service is one shared-storage service.
type Service struct {
	Name     string
	Provider platform.StorageProvider
}

// Client is an in-memory platform.Client.
type Client struct {
	mu sync.Mutex

	target    platform.Target
	providers []platform.StorageProvider
	jobs      map[string]*Job
	networks  map[string]bool
	services  map[string]*Service

	faults map[string]error
	calls  []Call
}

var _ platform.Client = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithProviders sets the storage providers offered by the namespace.
func WithProviders(providers ...platform.StorageProvider) Option {
	return func(c *Client) {
		c.providers = append(c.providers, providers...)
	}
}

// WithJobs pre-populates the namespace with created, stopped jobs.
func WithJobs(names ...string) Option {
	return func(c *Client) {
		for _, n := range names {
			c.jobs[n] = newJob(platform.JobSpec{Name: n})
		}
	}
}

// WithNetworks pre-populates the namespace with networks.
func WithNetworks(names ...string) Option {
	return func(c *Client) {
		for _, n := range names {
			c.networks[n] = true
		}
	}
}

// WithServices pre-populates the namespace with services.
func WithServices(names ...string) Option {
	return func(c *Client) {
		for _, n := range names {
			c.services[n] = &Service{Name: n}
		}
	}
}

// New creates an empty namespace.
func New(target platform.Target, opts ...Option) *Client {
	c := &Client{
		target:   target,
		jobs:     make(map[string]*Job),
		networks: make(map[string]bool),
		services: make(map[string]*Service),
		faults:   make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newJob(spec platform.JobSpec) *Job {
	return &Job{
		Spec:     spec,
		Networks: make(map[string]string),
		Bindings: make(map[string]string),
	}
}

// Fail makes every later call of op on resource return err. The resource of
// job-scoped operations (including JoinNetwork and BindService) is the job;
// otherwise it is the network or service name. An empty resource matches
// every call of op.
func (c *Client) Fail(op, resource string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.faults[faultKey(op, resource)] = err
}

// ClearFaults removes every injected failure.
func (c *Client) ClearFaults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.faults)
}

func faultKey(op, resource string) string {
	return op + "/" + resource
}

// record appends a call to the log, applying faults injected for op on
// resource. The caller holds c.mu. The returned error is the fault, if any.
func (c *Client) record(op, resource string, args ...string) error {
	err := c.faults[faultKey(op, resource)]
	if err == nil && resource != "" {
		err = c.faults[faultKey(op, "")]
	}
	c.calls = append(c.calls, Call{Seq: len(c.calls) + 1, Op: op, Args: args, Err: err})
	return err
}

// fail overwrites the error of the last recorded call. The caller holds c.mu.
func (c *Client) fail(err error) error {
	c.calls[len(c.calls)-1].Err = err
	return err
}

// Calls returns a copy of the call log.
func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Call, len(c.calls))
	for i, call := range c.calls {
		call.Args = slices.Clone(call.Args)
		out[i] = call
	}
	return out
}

// CallsTo returns the logged calls of op, in order.
func (c *Client) CallsTo(op string) []Call {
	var out []Call
	for _, call := range c.Calls() {
		if call.Op == op {
			out = append(out, call)
		}
	}
	return out
}

// ResetCalls clears the call log.
func (c *Client) ResetCalls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

// Job returns a copy of a job's state.
func (c *Client) Job(name string) (Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	j, ok := c.jobs[name]
	if !ok {
		return Job{}, false
	}
	out := *j
	out.Networks = maps.Clone(j.Networks)
	out.Bindings = maps.Clone(j.Bindings)
	return out, true
}

// Service returns a copy of a service's state.
func (c *Client) Service(name string) (Service, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.services[name]
	if !ok {
		return Service{}, false
	}
	return *s, true
}

// Target implements platform.Targeter.
func (c *Client) Target(_ context.Context) (platform.Target, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpTarget, ""); err != nil {
		return platform.Target{}, err
	}
	return c.target, nil
}

func notFound(kind, name string) error {
	return fmt.Errorf("%s %s: %w", kind, name, platform.ErrNotFound)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
