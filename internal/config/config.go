package config

import "github.com/imamik/rlcluster/internal/platform"

// Driver names.
const (
	DriverAPC    = "apc"
	DriverHCloud = "hcloud"
	DriverMemory = "memory"
)

// Config is the desired state of one deployment.
type Config struct {
	// Name of the deployment. Names the isolated network and the shared
	// storage service.
	Name string `yaml:"name"`

	// EnvID is the game environment id passed through to agent processes.
	EnvID string `yaml:"envId"`

	Instances     int      `yaml:"instances"`
	InstanceNames []string `yaml:"instanceNames,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`

	LogDir        string   `yaml:"logDir"`
	GRPCPort      int      `yaml:"grpcPort"`
	GymPorts      PortPair `yaml:"gymPorts"`
	DashboardPort int      `yaml:"dashboardPort"`

	AgentImage string `yaml:"agentImage"`
	GymImage   string `yaml:"gymImage"`

	Storage StorageConfig `yaml:"storage"`

	// Affinity is the co-location policy between a worker and its gym.
	Affinity platform.AffinityPolicy `yaml:"affinity"`

	// Parallelism caps concurrent platform calls per phase. 0 means one
	// goroutine per item.
	Parallelism int `yaml:"parallelism"`

	Platform PlatformConfig `yaml:"platform"`
}

// PortPair is the display/control port pair every gym exposes.
type PortPair struct {
	Display int `yaml:"display"`
	Control int `yaml:"control"`
}

// StorageConfig selects the shared-storage provider and mount path.
type StorageConfig struct {
	ProviderType string `yaml:"providerType"`
	Provider     string `yaml:"provider,omitempty"`
	MountPath    string `yaml:"mountPath"`
}

// PlatformConfig selects and configures the platform driver.
type PlatformConfig struct {
	Driver string       `yaml:"driver"`
	APC    APCConfig    `yaml:"apc"`
	HCloud HCloudConfig `yaml:"hcloud"`
	Memory MemoryConfig `yaml:"memory"`
}

// APCConfig configures the apc command-line driver.
type APCConfig struct {
	Binary          string `yaml:"binary"`
	DiscoveryDomain string `yaml:"discoveryDomain"`
}

// HCloudConfig configures the Hetzner Cloud driver.
type HCloudConfig struct {
	Token           string              `yaml:"-"`
	Namespace       string              `yaml:"namespace"`
	Location        string              `yaml:"location"`
	ServerType      string              `yaml:"serverType"`
	Image           string              `yaml:"image"`
	SSHKeys         []string            `yaml:"sshKeys,omitempty"`
	NetworkCIDR     string              `yaml:"networkCidr"`
	NetworkZone     string              `yaml:"networkZone"`
	DiscoveryDomain string              `yaml:"discoveryDomain"`
	ObjectStorage   ObjectStorageConfig `yaml:"objectStorage"`
}

// ObjectStorageConfig configures the S3-compatible storage backing services.
type ObjectStorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// Enabled reports whether credentials for object storage are present.
func (o ObjectStorageConfig) Enabled() bool {
	return o.Endpoint != "" && o.AccessKey != "" && o.SecretKey != ""
}

// MemoryConfig configures the in-memory driver used for dry runs.
type MemoryConfig struct {
	Namespace       string `yaml:"namespace"`
	DiscoveryDomain string `yaml:"discoveryDomain"`
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.EnvID == "" {
		c.EnvID = DefaultEnvID
	}
	if c.Instances == 0 {
		c.Instances = DefaultInstances
	}
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir
	}
	if c.GRPCPort == 0 {
		c.GRPCPort = DefaultGRPCPort
	}
	if c.GymPorts.Display == 0 {
		c.GymPorts.Display = DefaultGymDisplayPort
	}
	if c.GymPorts.Control == 0 {
		c.GymPorts.Control = DefaultGymControlPort
	}
	if c.DashboardPort == 0 {
		c.DashboardPort = DefaultDashboardPort
	}
	if c.AgentImage == "" {
		c.AgentImage = DefaultAgentImage
	}
	if c.GymImage == "" {
		c.GymImage = DefaultGymImage
	}
	if c.Platform.Driver == "" {
		c.Platform.Driver = DriverAPC
	}
	if c.Storage.ProviderType == "" {
		c.Storage.ProviderType = DefaultProviderType(c.Platform.Driver)
	}
	if c.Storage.MountPath == "" {
		c.Storage.MountPath = c.LogDir
	}
	if c.Affinity == "" {
		c.Affinity = platform.AffinityHard
	}
	c.Platform.applyDefaults()
}

// DefaultProviderType returns the storage provider type a driver offers.
func DefaultProviderType(driver string) string {
	if driver == DriverHCloud {
		return StorageProviderS3
	}
	return DefaultStorageProviderType
}

// SetDriver switches the platform driver. A storage provider type still at
// the previous driver's default follows the new driver.
func (c *Config) SetDriver(driver string) {
	if c.Storage.ProviderType == DefaultProviderType(c.Platform.Driver) {
		c.Storage.ProviderType = DefaultProviderType(driver)
	}
	c.Platform.Driver = driver
}

func (p *PlatformConfig) applyDefaults() {
	if p.APC.Binary == "" {
		p.APC.Binary = "apc"
	}
	if p.APC.DiscoveryDomain == "" {
		p.APC.DiscoveryDomain = DefaultAPCDiscoveryDomain
	}

	h := &p.HCloud
	if h.Namespace == "" {
		h.Namespace = "rlcluster"
	}
	if h.Location == "" {
		h.Location = "nbg1"
	}
	if h.ServerType == "" {
		h.ServerType = "cx32"
	}
	if h.Image == "" {
		h.Image = "docker-ce"
	}
	if h.NetworkCIDR == "" {
		h.NetworkCIDR = "10.0.0.0/16"
	}
	if h.NetworkZone == "" {
		h.NetworkZone = "eu-central"
	}
	if h.DiscoveryDomain == "" {
		h.DiscoveryDomain = DefaultHCloudDiscoveryDomain
	}
	if h.ObjectStorage.Region == "" {
		h.ObjectStorage.Region = "fsn1"
	}
	if h.ObjectStorage.Endpoint == "" {
		h.ObjectStorage.Endpoint = "https://" + h.ObjectStorage.Region + ".your-objectstorage.com"
	}

	if p.Memory.Namespace == "" {
		p.Memory.Namespace = "/sandbox/dry-run"
	}
	if p.Memory.DiscoveryDomain == "" {
		p.Memory.DiscoveryDomain = DefaultAPCDiscoveryDomain
	}
}
