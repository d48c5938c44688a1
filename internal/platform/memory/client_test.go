package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rlcluster/internal/platform"
)

var (
	testTarget   = platform.Target{Namespace: "/sandbox/test", DiscoveryDomain: "apcera.local"}
	testProvider = platform.StorageProvider{Name: "nfs-1", Namespace: "/", Type: "nfs"}
)

func job(name string) platform.JobSpec {
	return platform.JobSpec{Name: name, Image: "busybox"}
}

func TestClient_JobLifecycle(t *testing.T) {
	ctx := context.Background()
	c := New(testTarget)

	require.NoError(t, c.CreateJob(ctx, job("vehicle0")))
	require.NoError(t, c.CreateJob(ctx, job("vehicle0worker")))
	require.Error(t, c.CreateJob(ctx, job("vehicle0")), "duplicate create")

	jobs, err := c.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"vehicle0", "vehicle0worker"}, jobs)

	j, ok := c.Job("vehicle0")
	require.True(t, ok)
	assert.False(t, j.Started, "jobs are created stopped")

	require.NoError(t, c.SetAffinity(ctx, "vehicle0worker", "vehicle0", platform.AffinityHard))
	require.NoError(t, c.StartJob(ctx, "vehicle0"))

	j, _ = c.Job("vehicle0")
	assert.True(t, j.Started)
	w, _ := c.Job("vehicle0worker")
	assert.Equal(t, "vehicle0", w.AffinityTo)
	assert.Equal(t, platform.AffinityHard, w.AffinityPolicy)

	require.NoError(t, c.DeleteJob(ctx, "vehicle0"))
	w, _ = c.Job("vehicle0worker")
	assert.Empty(t, w.AffinityTo)

	err = c.DeleteJob(ctx, "vehicle0")
	require.Error(t, err)
	assert.True(t, platform.IsNotFound(err))
}

func TestClient_SetAffinity_Errors(t *testing.T) {
	ctx := context.Background()
	c := New(testTarget, WithJobs("a"))

	assert.True(t, platform.IsNotFound(c.SetAffinity(ctx, "a", "b", platform.AffinitySoft)))
	assert.Error(t, c.SetAffinity(ctx, "a", "a", "strict"))
}

func TestClient_Networks(t *testing.T) {
	ctx := context.Background()
	c := New(testTarget, WithJobs("ps0", "vehicle0"))

	require.NoError(t, c.CreateNetwork(ctx, "universe"))
	require.Error(t, c.CreateNetwork(ctx, "universe"))

	require.NoError(t, c.JoinNetwork(ctx, "universe", "ps0", "ps0"))
	require.Error(t, c.JoinNetwork(ctx, "universe", "vehicle0", "ps0"), "discovery name taken")
	assert.True(t, platform.IsNotFound(c.JoinNetwork(ctx, "other", "ps0", "ps0")))
	assert.True(t, platform.IsNotFound(c.JoinNetwork(ctx, "universe", "ghost", "ghost")))

	j, _ := c.Job("ps0")
	assert.Equal(t, map[string]string{"universe": "ps0"}, j.Networks)

	require.NoError(t, c.DeleteNetwork(ctx, "universe"))
	j, _ = c.Job("ps0")
	assert.Empty(t, j.Networks)

	networks, err := c.ListNetworks(ctx)
	require.NoError(t, err)
	assert.Empty(t, networks)
}

func TestClient_Services(t *testing.T) {
	ctx := context.Background()
	c := New(testTarget, WithProviders(testProvider), WithJobs("ps0"))

	providers, err := c.ListStorageProviders(ctx)
	require.NoError(t, err)
	assert.Equal(t, []platform.StorageProvider{testProvider}, providers)

	unknown := platform.StorageProvider{Name: "other", Type: "nfs"}
	assert.True(t, platform.IsNotFound(c.CreateService(ctx, "universe-logs", unknown)))

	require.NoError(t, c.CreateService(ctx, "universe-logs", testProvider))
	require.NoError(t, c.BindService(ctx, "universe-logs", "ps0", "/tmp/agent"))

	j, _ := c.Job("ps0")
	assert.Equal(t, map[string]string{"universe-logs": "/tmp/agent"}, j.Bindings)

	svc, ok := c.Service("universe-logs")
	require.True(t, ok)
	assert.Equal(t, testProvider, svc.Provider)

	require.NoError(t, c.DeleteService(ctx, "universe-logs"))
	j, _ = c.Job("ps0")
	assert.Empty(t, j.Bindings)
	assert.True(t, platform.IsNotFound(c.DeleteService(ctx, "universe-logs")))
}

func TestClient_Fail(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	c := New(testTarget)

	c.Fail(OpCreateJob, "vehicle1", boom)
	require.NoError(t, c.CreateJob(ctx, job("vehicle0")))
	require.ErrorIs(t, c.CreateJob(ctx, job("vehicle1")), boom)
	_, ok := c.Job("vehicle1")
	assert.False(t, ok, "a failed create leaves no job")

	c.Fail(OpTarget, "", boom)
	_, err := c.Target(ctx)
	require.ErrorIs(t, err, boom)

	c.ClearFaults()
	target, err := c.Target(ctx)
	require.NoError(t, err)
	assert.Equal(t, testTarget, target)
}

func TestClient_CallLog(t *testing.T) {
	ctx := context.Background()
	c := New(testTarget)

	require.NoError(t, c.CreateNetwork(ctx, "n"))
	_ = c.DeleteJob(ctx, "ghost")

	calls := c.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, Call{Seq: 1, Op: OpCreateNetwork, Args: []string{"n"}}, calls[0])
	assert.Equal(t, 2, calls[1].Seq)
	assert.True(t, platform.IsNotFound(calls[1].Err), "failures are logged")
	assert.Equal(t, "CreateNetwork(n)", calls[0].String())

	assert.Len(t, c.CallsTo(OpDeleteJob), 1)

	c.ResetCalls()
	assert.Empty(t, c.Calls())
}

func TestClient_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	c := New(testTarget)

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, n := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.CreateJob(ctx, job(n)))
		}()
	}
	wg.Wait()

	jobs, err := c.ListJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, names, jobs)

	seqs := make(map[int]bool)
	for _, call := range c.Calls() {
		seqs[call.Seq] = true
	}
	assert.Len(t, seqs, len(names)+1)
}
