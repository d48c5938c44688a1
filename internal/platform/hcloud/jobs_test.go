package hcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rlcluster/internal/platform"
)

func TestTarget(t *testing.T) {
	ts := newTestServer(t)
	ts.handleFunc("GET /locations", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") == "nbg1" {
			jsonResponse(w, http.StatusOK, schema.LocationListResponse{Locations: []schema.Location{{ID: 1, Name: "nbg1"}}})
			return
		}
		jsonResponse(w, http.StatusOK, schema.LocationListResponse{})
	})

	target, err := ts.client().Target(context.Background())
	require.NoError(t, err)
	assert.Equal(t, platform.Target{Namespace: "rlcluster", DiscoveryDomain: "rl.internal"}, target)
}

func TestTarget_Unauthorized(t *testing.T) {
	ts := newTestServer(t)
	ts.handleFunc("GET /locations", func(w http.ResponseWriter, _ *http.Request) {
		errorResponse(w, http.StatusUnauthorized, hcloud.ErrorCodeUnauthorized)
	})

	_, err := ts.client().Target(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get location nbg1")
}

func TestListJobs(t *testing.T) {
	ts := newTestServer(t)
	ts.handleFunc("GET /servers", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rlcluster.io/namespace=rlcluster,rlcluster.io/kind=job", r.URL.Query().Get("label_selector"))
		jsonResponse(w, http.StatusOK, schema.ServerListResponse{Servers: []schema.Server{
			jobServer(1, "ps0", "nbg1-dc3", nil),
			jobServer(2, "vehicle0", "nbg1-dc3", nil),
		}})
	})

	jobs, err := ts.client().ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ps0", "vehicle0"}, jobs)
}

func TestCreateJob(t *testing.T) {
	ts := newTestServer(t)
	ts.handleFunc("GET /server_types", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.ServerTypeListResponse{ServerTypes: []schema.ServerType{{ID: 1, Name: "cx32", Architecture: "x86"}}})
	})
	ts.handleFunc("GET /images", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, schema.ImageListResponse{Images: []schema.Image{
			{ID: 2, Name: hcloud.Ptr("docker-ce"), Architecture: "x86", Status: "available", Type: "app"},
		}})
	})
	ts.handleFunc("GET /locations", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		jsonResponse(w, http.StatusOK, schema.LocationListResponse{Locations: []schema.Location{{ID: 3, Name: name}}})
	})

	var body map[string]any
	ts.handleFunc("POST /servers", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		jsonResponse(w, http.StatusCreated, schema.ServerCreateResponse{
			Server: jobServer(10, "vehicle0", "fsn1-dc14", nil),
			Action: doneAction(1),
		})
	})

	spec := platform.JobSpec{
		Name:         "vehicle0",
		Image:        "telechong/universe-flashgames:0.20.21",
		Ports:        []platform.Port{{Number: 5900}, {Number: 15900}},
		MemoryMB:     2048,
		StartTimeout: 2 * time.Minute,
		PlacementTag: "fsn1",
	}
	require.NoError(t, ts.client().CreateJob(context.Background(), spec))

	assert.Equal(t, "rlcluster-vehicle0", body["name"])
	assert.Equal(t, false, body["start_after_create"])
	assert.Equal(t, "fsn1", body["location"], "placement tag selects the location")
	lbls, ok := body["labels"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "vehicle0", lbls["rlcluster.io/name"])
	assert.Equal(t, "fsn1", lbls["rlcluster.io/placement"])
	assert.Equal(t, "120", lbls["rlcluster.io/start-timeout"])
	userData, _ := body["user_data"].(string)
	assert.True(t, strings.HasPrefix(userData, "#cloud-config\n"))
	assert.Contains(t, userData, "telechong/universe-flashgames:0.20.21")
}

func TestCreateJob_InvalidSpec(t *testing.T) {
	ts := newTestServer(t)
	err := ts.client().CreateJob(context.Background(), platform.JobSpec{Name: "x"})
	require.ErrorIs(t, err, platform.ErrInvalidJob)
}

func TestDeleteJob(t *testing.T) {
	ts := newTestServer(t)
	ts.serveServers(jobServer(7, "ps0", "nbg1-dc3", nil))
	var deleted atomic.Bool
	ts.handleFunc("DELETE /servers/7", func(w http.ResponseWriter, _ *http.Request) {
		deleted.Store(true)
		jsonResponse(w, http.StatusOK, schema.ServerDeleteResponse{Action: doneAction(5)})
	})
	c := ts.client()

	require.NoError(t, c.DeleteJob(context.Background(), "ps0"))
	assert.True(t, deleted.Load())

	err := c.DeleteJob(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, platform.IsNotFound(err))
}

func TestDeleteJob_LockedIsReported(t *testing.T) {
	ts := newTestServer(t)
	ts.serveServers(jobServer(7, "ps0", "nbg1-dc3", nil))
	var attempts atomic.Int32
	ts.handleFunc("DELETE /servers/7", func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		errorResponse(w, http.StatusLocked, hcloud.ErrorCodeLocked)
	})

	err := ts.client().DeleteJob(context.Background(), "ps0")
	require.Error(t, err)
	assert.True(t, isHCloudErrorCode(err, hcloud.ErrorCodeLocked))
	assert.Equal(t, int32(1), attempts.Load(), "a locked server is not asked again")
}

func TestStartJob_LockedIsReported(t *testing.T) {
	ts := newTestServer(t)
	ts.serveServers(jobServer(7, "ps0", "nbg1-dc3", nil))
	var attempts atomic.Int32
	ts.handleFunc("POST /servers/7/actions/poweron", func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		errorResponse(w, http.StatusLocked, hcloud.ErrorCodeLocked)
	})

	err := ts.client().StartJob(context.Background(), "ps0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to power on job ps0")
	assert.True(t, isHCloudErrorCode(err, hcloud.ErrorCodeLocked))
	assert.Equal(t, int32(1), attempts.Load())
}

func TestStartJob(t *testing.T) {
	ts := newTestServer(t)
	ts.serveServers(jobServer(7, "ps0", "nbg1-dc3", map[string]string{"rlcluster.io/start-timeout": "120"}))
	var poweredOn atomic.Bool
	ts.handleFunc("POST /servers/7/actions/poweron", func(w http.ResponseWriter, _ *http.Request) {
		poweredOn.Store(true)
		jsonResponse(w, http.StatusCreated, schema.ServerActionPoweronResponse{Action: doneAction(9)})
	})
	c := ts.client()

	require.NoError(t, c.StartJob(context.Background(), "ps0"))
	assert.True(t, poweredOn.Load())

	assert.True(t, platform.IsNotFound(c.StartJob(context.Background(), "ghost")))
}

func TestSetAffinity(t *testing.T) {
	tests := []struct {
		name        string
		gymDC       string
		policy      platform.AffinityPolicy
		wantErr     bool
		wantLabelOK string
	}{
		{name: "same datacenter", gymDC: "fsn1-dc14", policy: platform.AffinityHard, wantLabelOK: "true"},
		{name: "hard mismatch", gymDC: "nbg1-dc3", policy: platform.AffinityHard, wantErr: true},
		{name: "soft mismatch", gymDC: "nbg1-dc3", policy: platform.AffinitySoft, wantLabelOK: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.serveServers(
				jobServer(1, "vehicle0", tt.gymDC, nil),
				jobServer(2, "vehicle0worker", "fsn1-dc14", nil),
			)
			var update schema.ServerUpdateRequest
			var updated atomic.Bool
			ts.handleFunc("PUT /servers/2", func(w http.ResponseWriter, r *http.Request) {
				updated.Store(true)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&update))
				jsonResponse(w, http.StatusOK, schema.ServerUpdateResponse{Server: jobServer(2, "vehicle0worker", "fsn1-dc14", nil)})
			})

			err := ts.client().SetAffinity(context.Background(), "vehicle0worker", "vehicle0", tt.policy)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "cannot be co-located")
				assert.False(t, updated.Load())
				return
			}
			require.NoError(t, err)
			require.True(t, updated.Load())
			require.NotNil(t, update.Labels)
			assert.Equal(t, "vehicle0", (*update.Labels)["rlcluster.io/affinity"])
			assert.Equal(t, tt.wantLabelOK, (*update.Labels)["rlcluster.io/affinity-satisfied"])
			assert.Equal(t, "vehicle0worker", (*update.Labels)["rlcluster.io/name"], "existing labels are kept")
		})
	}
}

func TestSetAffinity_MissingJob(t *testing.T) {
	ts := newTestServer(t)
	ts.serveServers(jobServer(2, "vehicle0worker", "fsn1-dc14", nil))

	err := ts.client().SetAffinity(context.Background(), "vehicle0worker", "vehicle0", platform.AffinitySoft)
	assert.True(t, platform.IsNotFound(err))
}
