package hcloud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/schema"

	"github.com/imamik/rlcluster/internal/config"
)

// testServer mocks the Hetzner Cloud API.
type testServer struct {
	server *httptest.Server
	mux    *http.ServeMux
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return &testServer{server: server, mux: mux}
}

// client returns a Client configured to use the test server.
func (ts *testServer) client(opts ...ClientOption) *Client {
	cfg := config.Default().Platform.HCloud
	cfg.Token = "test-token"
	hc := hcloud.NewClient(
		hcloud.WithToken("test-token"),
		hcloud.WithEndpoint(ts.server.URL),
		hcloud.WithRetryOpts(hcloud.RetryOpts{MaxRetries: 0}),
	)
	opts = append([]ClientOption{WithHCloudClient(hc), WithTimeouts(config.TestTimeouts())}, opts...)
	return NewClient(cfg, opts...)
}

func (ts *testServer) handleFunc(pattern string, handler http.HandlerFunc) {
	ts.mux.HandleFunc(pattern, handler)
}

// jsonResponse writes a JSON response with the given status code and body.
func jsonResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func errorResponse(w http.ResponseWriter, statusCode int, code hcloud.ErrorCode) {
	jsonResponse(w, statusCode, schema.ErrorResponse{Error: schema.Error{Code: string(code), Message: string(code)}})
}

func doneAction(id int64) schema.Action {
	return schema.Action{ID: id, Status: string(hcloud.ActionStatusSuccess), Progress: 100}
}

// jobServer returns the API representation of a job's server.
func jobServer(id int64, job, datacenter string, extra map[string]string) schema.Server {
	lbls := map[string]string{
		"rlcluster.io/namespace":  "rlcluster",
		"rlcluster.io/kind":       "job",
		"rlcluster.io/name":       job,
		"rlcluster.io/managed-by": "rlcluster",
	}
	for k, v := range extra {
		lbls[k] = v
	}
	return schema.Server{
		ID:         id,
		Name:       "rlcluster-" + job,
		Status:     "off",
		Labels:     lbls,
		Datacenter: &schema.Datacenter{ID: 1, Name: datacenter, Location: schema.Location{Name: datacenter[:4]}},
	}
}

// serveServers answers GET /servers?name=... from the given servers.
func (ts *testServer) serveServers(servers ...schema.Server) {
	ts.handleFunc("GET /servers", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		var found []schema.Server
		for _, s := range servers {
			if name == "" || s.Name == name {
				found = append(found, s)
			}
		}
		jsonResponse(w, http.StatusOK, schema.ServerListResponse{Servers: found})
	})
}
