package apc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
)

// fakeRunner answers invocations by their first two arguments.
type fakeRunner struct {
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeRunner) Run(_ context.Context, args []string) ([]byte, error) {
	f.calls = append(f.calls, args)
	key := strings.Join(args[:min(2, len(args))], " ")
	return []byte(f.outputs[key]), f.errs[key]
}

func newTestClient(r Runner) *Client {
	return NewClient(r, "apcera.local", &config.Timeouts{
		Call: time.Second, Delete: time.Second, Action: time.Second, PollInterval: time.Millisecond,
	})
}

const appList = `Working in "/sandbox/admin"
+----------------+---------+-------+
| Name           | Health  | State |
+----------------+---------+-------+
| ps0            | 100%    | started |
| vehicle0       | 100%    | stopped |
+----------------+---------+-------+
`

func TestTarget(t *testing.T) {
	r := newFakeRunner()
	r.outputs["namespace --batch"] = "Current namespace: '/sandbox/admin'\n"
	c := newTestClient(r)

	target, err := c.Target(context.Background())
	require.NoError(t, err)
	assert.Equal(t, platform.Target{Namespace: "/sandbox/admin", DiscoveryDomain: "apcera.local"}, target)
	assert.Equal(t, [][]string{{"namespace", "--batch"}}, r.calls)
}

func TestTarget_Unparseable(t *testing.T) {
	r := newFakeRunner()
	r.outputs["namespace --batch"] = "garbage"

	_, err := newTestClient(r).Target(context.Background())
	require.Error(t, err)
}

func TestListJobs(t *testing.T) {
	r := newFakeRunner()
	r.outputs["app list"] = appList

	jobs, err := newTestClient(r).ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ps0", "vehicle0"}, jobs)
}

func TestCreateJob_Args(t *testing.T) {
	r := newFakeRunner()
	c := newTestClient(r)

	spec := platform.JobSpec{
		Name:  "ps0",
		Image: "agent",
		Command: platform.Command{
			Sidecars: []platform.Process{{Program: "tensorboard", Args: []string{"--logdir", "/tmp/agent"}}},
			Main:     platform.Process{Program: "python", Args: []string{"worker.py", "--env-id", "a b"}},
		},
		Env:          map[string]string{"B": "2", "A": "1"},
		Ports:        []platform.Port{{Number: 2222}, {Number: 6006}},
		Routes:       []platform.Route{{URL: "http://ps0.apcera.local", Port: 6006}},
		MemoryMB:     2048,
		StartTimeout: 2 * time.Minute,
		PlacementTag: "siteA",
	}
	require.NoError(t, c.CreateJob(context.Background(), spec))

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{
		"docker", "run", "ps0", "--image", "agent", "--no-start", "--allow-egress",
		"--memory", "2048MB",
		"--timeout", "120",
		"--port", "2222", "--port", "6006",
		"--route", "http://ps0.apcera.local:6006",
		"--env-set", "A=1", "--env-set", "B=2",
		"--start-cmd", "tensorboard --logdir /tmp/agent & exec python worker.py --env-id 'a b'",
		"--tag", "siteA",
		"--batch",
	}, r.calls[0])
}

func TestCreateJob_InvalidSpecNeverRuns(t *testing.T) {
	r := newFakeRunner()
	err := newTestClient(r).CreateJob(context.Background(), platform.JobSpec{Name: "x"})
	require.ErrorIs(t, err, platform.ErrInvalidJob)
	assert.Empty(t, r.calls)
}

func TestOperations_Args(t *testing.T) {
	ctx := context.Background()
	provider := platform.StorageProvider{Name: "nfs-1", Namespace: "/apcera/providers", Type: "nfs"}

	tests := []struct {
		name string
		call func(*Client) error
		want []string
	}{
		{"delete job", func(c *Client) error { return c.DeleteJob(ctx, "ps0") }, []string{"app", "delete", "ps0", "--batch"}},
		{"start job", func(c *Client) error { return c.StartJob(ctx, "ps0") }, []string{"app", "start", "ps0", "--batch"}},
		{
			"set affinity",
			func(c *Client) error { return c.SetAffinity(ctx, "vehicle0worker", "vehicle0", platform.AffinityHard) },
			[]string{"app", "update", "vehicle0worker", "--affinity", "vehicle0", "--affinity-type", "hard", "--batch"},
		},
		{"create network", func(c *Client) error { return c.CreateNetwork(ctx, "universe") }, []string{"network", "create", "universe", "--batch"}},
		{"delete network", func(c *Client) error { return c.DeleteNetwork(ctx, "universe") }, []string{"network", "delete", "universe", "--batch"}},
		{
			"join network",
			func(c *Client) error { return c.JoinNetwork(ctx, "universe", "ps0", "ps0") },
			[]string{"network", "join", "universe", "--job", "ps0", "--discovery-address", "ps0", "--batch"},
		},
		{
			"create service",
			func(c *Client) error { return c.CreateService(ctx, "universe-logs", provider) },
			[]string{"service", "create", "universe-logs", "--provider", "/apcera/providers::nfs-1", "--batch"},
		},
		{"delete service", func(c *Client) error { return c.DeleteService(ctx, "universe-logs") }, []string{"service", "delete", "universe-logs", "--batch"}},
		{
			"bind service",
			func(c *Client) error { return c.BindService(ctx, "universe-logs", "ps0", "/tmp/agent") },
			[]string{"service", "bind", "universe-logs", "--job", "ps0", "--batch", "--", "--mountpath", "/tmp/agent"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner()
			require.NoError(t, tt.call(newTestClient(r)))
			require.Len(t, r.calls, 1)
			assert.Equal(t, tt.want, r.calls[0])
		})
	}
}

func TestSetAffinity_InvalidPolicy(t *testing.T) {
	r := newFakeRunner()
	require.Error(t, newTestClient(r).SetAffinity(context.Background(), "a", "b", "strict"))
	assert.Empty(t, r.calls)
}

func TestNotFound(t *testing.T) {
	r := newFakeRunner()
	r.errs["app delete"] = &RunError{
		Args:   []string{"app", "delete", "ghost"},
		Output: `Error: job "job::/sandbox/admin::ghost" not found`,
		Err:    errors.New("exit status 1"),
	}
	r.errs["app start"] = &RunError{Args: []string{"app", "start"}, Output: "permission denied", Err: errors.New("exit status 1")}
	c := newTestClient(r)

	err := c.DeleteJob(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, platform.IsNotFound(err))
	assert.Contains(t, err.Error(), "not found")

	err = c.StartJob(context.Background(), "ps0")
	require.Error(t, err)
	assert.False(t, platform.IsNotFound(err))
}

func TestListStorageProviders(t *testing.T) {
	r := newFakeRunner()
	r.outputs["provider list"] = `+-------+------+-------------------+
| Name  | Type | Namespace         |
+-------+------+-------------------+
| nfs-1 | nfs  | /apcera/providers |
| s3    | s3   | /                 |
+-------+------+-------------------+
`
	providers, err := newTestClient(r).ListStorageProviders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []platform.StorageProvider{
		{Name: "nfs-1", Type: "nfs", Namespace: "/apcera/providers"},
		{Name: "s3", Type: "s3", Namespace: "/"},
	}, providers)
}

func TestListNetworksAndServices(t *testing.T) {
	r := newFakeRunner()
	r.outputs["network list"] = "| Name |\n| universe |\n"
	r.outputs["service list"] = "No services found.\n"
	c := newTestClient(r)

	networks, err := c.ListNetworks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"universe"}, networks)

	services, err := c.ListServices(context.Background())
	require.NoError(t, err)
	assert.Empty(t, services)
}
