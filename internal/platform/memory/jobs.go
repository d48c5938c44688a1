package memory

import (
	"context"
	"fmt"

	"github.com/imamik/rlcluster/internal/platform"
)

// ListJobs returns the job names in lexical order.
func (c *Client) ListJobs(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpListJobs, ""); err != nil {
		return nil, err
	}
	return sortedKeys(c.jobs), nil
}

// CreateJob stores a stopped job.
func (c *Client) CreateJob(_ context.Context, spec platform.JobSpec) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpCreateJob, spec.Name, spec.Name); err != nil {
		return err
	}
	if err := spec.Validate(); err != nil {
		return c.fail(err)
	}
	if _, ok := c.jobs[spec.Name]; ok {
		return c.fail(fmt.Errorf("job %s already exists", spec.Name))
	}
	c.jobs[spec.Name] = newJob(spec)
	return nil
}

// DeleteJob removes a job and every affinity pointing at it.
func (c *Client) DeleteJob(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpDeleteJob, name, name); err != nil {
		return err
	}
	if _, ok := c.jobs[name]; !ok {
		return c.fail(notFound("job", name))
	}
	delete(c.jobs, name)
	for _, j := range c.jobs {
		if j.AffinityTo == name {
			j.AffinityTo, j.AffinityPolicy = "", ""
		}
	}
	return nil
}

// StartJob marks a job started.
func (c *Client) StartJob(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpStartJob, name, name); err != nil {
		return err
	}
	j, ok := c.jobs[name]
	if !ok {
		return c.fail(notFound("job", name))
	}
	j.Started = true
	return nil
}

// SetAffinity records that job must be placed with toJob.
func (c *Client) SetAffinity(_ context.Context, job, toJob string, policy platform.AffinityPolicy) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record(OpSetAffinity, job, job, toJob, string(policy)); err != nil {
		return err
	}
	if !policy.Valid() {
		return c.fail(fmt.Errorf("unknown affinity policy %q", policy))
	}
	j, ok := c.jobs[job]
	if !ok {
		return c.fail(notFound("job", job))
	}
	if _, ok := c.jobs[toJob]; !ok {
		return c.fail(notFound("job", toJob))
	}
	j.AffinityTo, j.AffinityPolicy = toJob, policy
	return nil
}
