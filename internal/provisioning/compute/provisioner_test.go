package compute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/platform/memory"
	"github.com/imamik/rlcluster/internal/provisioning"
	rltesting "github.com/imamik/rlcluster/internal/testing"
	"github.com/imamik/rlcluster/internal/topology"
)

var allJobs = []string{"ps0", "vehicle0", "vehicle0worker", "vehicle1", "vehicle1worker"}

func TestNames(t *testing.T) {
	assert.Equal(t, "create", NewCreateProvisioner().Name())
	assert.Equal(t, "affinity", NewAffinityProvisioner().Name())
	assert.Equal(t, "start", NewStartProvisioner().Name())
}

func TestCreateProvisioner(t *testing.T) {
	f := rltesting.NewPlatformFixture(rltesting.NewConfigBuilder().Build(), memory.WithServices("test-logs"))
	ctx := f.Context(t)

	require.NoError(t, NewCreateProvisioner().Provision(ctx))

	assert.Len(t, f.Client.CallsTo(memory.OpCreateJob), 5)
	assert.Len(t, f.Client.CallsTo(memory.OpBindService), 5)
	for _, name := range allJobs {
		job, ok := f.Client.Job(name)
		require.True(t, ok, name)
		assert.False(t, job.Started, "jobs are created stopped")
		assert.Equal(t, "/tmp/agent", job.Bindings["test-logs"])
	}
	assert.Nil(t, ctx.State.Failures())
}

func TestCreateProvisioner_FailedCreateSkipsBind(t *testing.T) {
	f := rltesting.NewPlatformFixture(rltesting.NewConfigBuilder().Build(), memory.WithServices("test-logs"))
	f.Client.Fail(memory.OpCreateJob, "vehicle1", errors.New("no capacity"))
	ctx := f.Context(t)

	require.NoError(t, NewCreateProvisioner().Provision(ctx))

	for _, c := range f.Client.CallsTo(memory.OpBindService) {
		assert.NotContains(t, c.Args, "vehicle1")
	}
	assert.Len(t, f.Client.CallsTo(memory.OpBindService), 4)

	failures := ctx.State.Failures()
	require.NotNil(t, failures)
	require.Len(t, failures.Errors, 1)
	assert.Equal(t, provisioning.OpCreateJob, failures.Errors[0].Op)
	assert.Equal(t, "vehicle1", failures.Errors[0].Resource)
}

func TestAffinityProvisioner(t *testing.T) {
	cfg := rltesting.NewConfigBuilder().WithAffinity(platform.AffinitySoft).Build()
	f := rltesting.NewPlatformFixture(cfg)
	ctx := f.Context(t)
	f.Created(t, ctx)

	require.NoError(t, NewAffinityProvisioner().Provision(ctx))

	calls := f.Client.CallsTo(memory.OpSetAffinity)
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"vehicle0worker", "vehicle0", "soft"}, calls[0].Args)
	assert.Equal(t, []string{"vehicle1worker", "vehicle1", "soft"}, calls[1].Args)

	job, _ := f.Client.Job("vehicle1worker")
	assert.Equal(t, "vehicle1", job.AffinityTo)
	assert.Equal(t, platform.AffinitySoft, job.AffinityPolicy)
}

func TestAffinityProvisioner_DefaultHard(t *testing.T) {
	cfg := rltesting.NewConfigBuilder().Build()
	m := &rltesting.MockPlatform{}
	m.On("SetAffinity", mock.Anything, "vehicle0worker", "vehicle0", platform.AffinityHard).Return(nil).Once()
	m.On("SetAffinity", mock.Anything, "vehicle1worker", "vehicle1", platform.AffinityHard).Return(errors.New("full")).Once()
	ctx := provisioning.NewContext(rltesting.TestContext(t), cfg, m)
	instances, err := topology.NewInstances(2, nil, nil)
	require.NoError(t, err)
	ctx.State.Instances = instances

	require.NoError(t, NewAffinityProvisioner().Provision(ctx))

	m.AssertExpectations(t)
	assert.Len(t, ctx.State.Failures().Of(provisioning.OpSetAffinity), 1)
}

func TestStartProvisioner_WorkersLast(t *testing.T) {
	f := rltesting.NewPlatformFixture(rltesting.NewConfigBuilder().WithInstances(3).Build())
	ctx := f.Context(t)
	f.Created(t, ctx)

	require.NoError(t, NewStartProvisioner().Provision(ctx))

	starts := f.Client.CallsTo(memory.OpStartJob)
	require.Len(t, starts, 7)
	lastOther, firstWorker := 0, len(f.Client.Calls())+1
	for _, c := range starts {
		if isWorkerCall(c) {
			firstWorker = min(firstWorker, c.Seq)
		} else {
			lastOther = max(lastOther, c.Seq)
		}
	}
	assert.Less(t, lastOther, firstWorker, "every non-worker starts before any worker")

	for _, c := range starts {
		job, _ := f.Client.Job(c.Args[0])
		assert.True(t, job.Started, c.Args[0])
	}
}

func TestStartProvisioner_FailedStartDoesNotBlockWorkers(t *testing.T) {
	f := rltesting.NewPlatformFixture(rltesting.NewConfigBuilder().Build())
	f.Client.Fail(memory.OpStartJob, "ps0", errors.New("image pull failed"))
	ctx := f.Context(t)
	f.Created(t, ctx)

	require.NoError(t, NewStartProvisioner().Provision(ctx))

	job, _ := f.Client.Job("vehicle0worker")
	assert.True(t, job.Started)
	assert.Len(t, ctx.State.Failures().Of(provisioning.OpStartJob), 1)
}

func TestStartProvisioner_ListFails(t *testing.T) {
	f := rltesting.NewPlatformFixture(rltesting.NewConfigBuilder().Build())
	f.Client.Fail(memory.OpListJobs, "", errors.New("unavailable"))
	ctx := f.Context(t)

	require.NoError(t, NewStartProvisioner().Provision(ctx))

	assert.Empty(t, f.Client.CallsTo(memory.OpStartJob))
	assert.Len(t, ctx.State.Failures().Of(provisioning.OpListJobs), 1)
}

func TestPartition(t *testing.T) {
	workers, others := partition([]string{"ps0", "vehicle0", "vehicle0worker", "pong", "pongworker"})
	assert.Equal(t, []string{"vehicle0worker", "pongworker"}, workers)
	assert.Equal(t, []string{"ps0", "vehicle0", "pong"}, others)
}

func isWorkerCall(c memory.Call) bool {
	_, others := partition(c.Args[:1])
	return len(others) == 0
}
