package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/rlcluster/internal/platform"
)

// MockPlatform is a mock implementation of platform.Client.
// It can be used across all tests that need exact control over platform responses.
type MockPlatform struct {
	mock.Mock
}

var _ platform.Client = (*MockPlatform)(nil)

// Target returns the mocked target.
func (m *MockPlatform) Target(ctx context.Context) (platform.Target, error) {
	args := m.Called(ctx)
	return args.Get(0).(platform.Target), args.Error(1)
}

// ListJobs returns the mocked job names.
func (m *MockPlatform) ListJobs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return stringsArg(args, 0), args.Error(1)
}

// CreateJob records the job creation.
func (m *MockPlatform) CreateJob(ctx context.Context, spec platform.JobSpec) error {
	return m.Called(ctx, spec).Error(0)
}

// DeleteJob records the job deletion.
func (m *MockPlatform) DeleteJob(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// StartJob records the job start.
func (m *MockPlatform) StartJob(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// SetAffinity records the affinity.
func (m *MockPlatform) SetAffinity(ctx context.Context, job, toJob string, policy platform.AffinityPolicy) error {
	return m.Called(ctx, job, toJob, policy).Error(0)
}

// ListNetworks returns the mocked network names.
func (m *MockPlatform) ListNetworks(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return stringsArg(args, 0), args.Error(1)
}

// CreateNetwork records the network creation.
func (m *MockPlatform) CreateNetwork(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// DeleteNetwork records the network deletion.
func (m *MockPlatform) DeleteNetwork(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// JoinNetwork records the network join.
func (m *MockPlatform) JoinNetwork(ctx context.Context, network, job, discoveryName string) error {
	return m.Called(ctx, network, job, discoveryName).Error(0)
}

// ListServices returns the mocked service names.
func (m *MockPlatform) ListServices(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return stringsArg(args, 0), args.Error(1)
}

// CreateService records the service creation.
func (m *MockPlatform) CreateService(ctx context.Context, name string, provider platform.StorageProvider) error {
	return m.Called(ctx, name, provider).Error(0)
}

// DeleteService records the service deletion.
func (m *MockPlatform) DeleteService(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

// BindService records the service binding.
func (m *MockPlatform) BindService(ctx context.Context, service, job, mountPath string) error {
	return m.Called(ctx, service, job, mountPath).Error(0)
}

// ListStorageProviders returns the mocked providers.
func (m *MockPlatform) ListStorageProviders(ctx context.Context) ([]platform.StorageProvider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platform.StorageProvider), args.Error(1)
}

func stringsArg(args mock.Arguments, i int) []string {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]string)
}
