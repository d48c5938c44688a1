package config

// Defaults applied by Config.ApplyDefaults.
const (
	DefaultName      = "universe"
	DefaultEnvID     = "flashgames.DuskDrive-v0"
	DefaultInstances = 4
	DefaultLogDir    = "/tmp/agent"

	DefaultGRPCPort       = 2222
	DefaultGymDisplayPort = 5900
	DefaultGymControlPort = 15900
	DefaultDashboardPort  = 6006

	DefaultAgentImage = "jderehag/apcera-universe-starter-agent"
	DefaultGymImage   = "telechong/universe-flashgames:0.20.21"

	DefaultStorageProviderType = "nfs"
	StorageProviderS3          = "s3"

	DefaultAPCDiscoveryDomain    = "apcera.local"
	DefaultHCloudDiscoveryDomain = "rl.internal"
)
