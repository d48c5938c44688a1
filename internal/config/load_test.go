package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/rlcluster/internal/platform"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "universe", cfg.Name)
	assert.Equal(t, "flashgames.DuskDrive-v0", cfg.EnvID)
	assert.Equal(t, 4, cfg.Instances)
	assert.Equal(t, "/tmp/agent", cfg.LogDir)
	assert.Equal(t, 2222, cfg.GRPCPort)
	assert.Equal(t, PortPair{Display: 5900, Control: 15900}, cfg.GymPorts)
	assert.Equal(t, 6006, cfg.DashboardPort)
	assert.Equal(t, "nfs", cfg.Storage.ProviderType)
	assert.Equal(t, cfg.LogDir, cfg.Storage.MountPath)
	assert.Equal(t, platform.AffinityHard, cfg.Affinity)
	assert.Equal(t, DriverAPC, cfg.Platform.Driver)
	assert.Equal(t, "apcera.local", cfg.Platform.APC.DiscoveryDomain)
	assert.Equal(t, "https://fsn1.your-objectstorage.com", cfg.Platform.HCloud.ObjectStorage.Endpoint)

	require.NoError(t, cfg.Validate())
}

func TestLoadFromBytes(t *testing.T) {
	data := []byte(`
name: duskdrive
envId: flashgames.NeonRace-v0
instances: 2
tags: [siteA]
logDir: /data/logs
affinity: soft
parallelism: 3
platform:
  driver: memory
`)

	cfg, err := LoadFromBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "duskdrive", cfg.Name)
	assert.Equal(t, "flashgames.NeonRace-v0", cfg.EnvID)
	assert.Equal(t, 2, cfg.Instances)
	assert.Equal(t, []string{"siteA"}, cfg.Tags)
	assert.Equal(t, "/data/logs", cfg.Storage.MountPath, "mount path defaults to the log directory")
	assert.Equal(t, platform.AffinitySoft, cfg.Affinity)
	assert.Equal(t, 3, cfg.Parallelism)
	assert.Equal(t, DriverMemory, cfg.Platform.Driver)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	_, err := LoadFromBytes([]byte("instances: [not, a, number]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")

	_, err = LoadFromBytes([]byte("affinity: maybe"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFilename)
	require.NoError(t, os.WriteFile(path, []byte("name: test\nplatform:\n  driver: memory\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithoutValidation_EmptyPath(t *testing.T) {
	cfg, err := LoadWithoutValidation("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvHCloudToken, "token")
	t.Setenv(EnvS3AccessKey, "access")
	t.Setenv(EnvS3SecretKey, "secret")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "token", cfg.Platform.HCloud.Token)
	assert.True(t, cfg.Platform.HCloud.ObjectStorage.Enabled())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RLCLUSTER_TEST_DOTENV=loaded\n"), 0o600))
	t.Setenv("RLCLUSTER_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("RLCLUSTER_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "loaded", os.Getenv("RLCLUSTER_TEST_DOTENV"))
}

func TestProviderTypeFollowsDriver(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("platform:\n  driver: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultStorageProviderType, cfg.Storage.ProviderType)

	cfg, err = parseConfig([]byte("platform:\n  driver: hcloud\n"))
	require.NoError(t, err)
	assert.Equal(t, StorageProviderS3, cfg.Storage.ProviderType)

	cfg = Default()
	cfg.SetDriver(DriverHCloud)
	assert.Equal(t, StorageProviderS3, cfg.Storage.ProviderType)

	cfg = Default()
	cfg.Storage.ProviderType = "ceph"
	cfg.SetDriver(DriverHCloud)
	assert.Equal(t, "ceph", cfg.Storage.ProviderType, "explicit type is kept")
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Name = "racer"
	cfg.Platform.HCloud.Token = "secret-token"
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)

	require.NoError(t, Save(cfg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-token")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "racer", loaded.Name)
	assert.Equal(t, cfg.Instances, loaded.Instances)
}
