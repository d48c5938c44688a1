package config

import (
	"fmt"
	"path"

	"github.com/imamik/rlcluster/internal/util/naming"
)

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if !naming.ValidJob(c.Name) {
		return fmt.Errorf("name %q must be lowercase alphanumerics and dashes, starting with a letter", c.Name)
	}
	if c.EnvID == "" {
		return fmt.Errorf("envId is required")
	}

	if err := c.validateInstances(); err != nil {
		return fmt.Errorf("instance validation failed: %w", err)
	}

	if err := c.validatePorts(); err != nil {
		return fmt.Errorf("port validation failed: %w", err)
	}

	if c.AgentImage == "" || c.GymImage == "" {
		return fmt.Errorf("agentImage and gymImage are required")
	}

	if err := c.validateStorage(); err != nil {
		return fmt.Errorf("storage validation failed: %w", err)
	}

	if !c.Affinity.Valid() {
		return fmt.Errorf("affinity must be %q or %q, got %q", "hard", "soft", c.Affinity)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}

	if err := c.validatePlatform(); err != nil {
		return fmt.Errorf("platform validation failed: %w", err)
	}

	return nil
}

func (c *Config) validateInstances() error {
	if c.Instances < 1 {
		return fmt.Errorf("instances must be at least 1, got %d", c.Instances)
	}
	if len(c.InstanceNames) > c.Instances {
		return fmt.Errorf("%d instance names given for %d instances", len(c.InstanceNames), c.Instances)
	}
	if len(c.Tags) > c.Instances {
		return fmt.Errorf("%d tags given for %d instances", len(c.Tags), c.Instances)
	}
	for _, name := range c.InstanceNames {
		if naming.IsWorker(name) {
			return fmt.Errorf("instance name %q must not end in %q", name, naming.Worker(""))
		}
	}
	return nil
}

func (c *Config) validatePorts() error {
	ports := map[string]int{
		"grpcPort":         c.GRPCPort,
		"dashboardPort":    c.DashboardPort,
		"gymPorts.display": c.GymPorts.Display,
		"gymPorts.control": c.GymPorts.Control,
	}
	for name, p := range ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("%s %d out of range", name, p)
		}
	}
	if c.GRPCPort == c.DashboardPort {
		return fmt.Errorf("grpcPort and dashboardPort must differ (both %d)", c.GRPCPort)
	}
	if c.GymPorts.Display == c.GymPorts.Control {
		return fmt.Errorf("gym display and control ports must differ (both %d)", c.GymPorts.Display)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.ProviderType == "" {
		return fmt.Errorf("providerType is required")
	}
	if !path.IsAbs(c.Storage.MountPath) {
		return fmt.Errorf("mountPath %q must be absolute", c.Storage.MountPath)
	}
	if !path.IsAbs(c.LogDir) {
		return fmt.Errorf("logDir %q must be absolute", c.LogDir)
	}
	return nil
}

func (c *Config) validatePlatform() error {
	switch c.Platform.Driver {
	case DriverAPC:
		if c.Platform.APC.Binary == "" {
			return fmt.Errorf("apc.binary is required")
		}
	case DriverHCloud:
		if c.Platform.HCloud.Token == "" {
			return fmt.Errorf("%s is required for the hcloud driver", EnvHCloudToken)
		}
		if c.Platform.HCloud.Namespace == "" {
			return fmt.Errorf("hcloud.namespace is required")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown driver %q (expected %s, %s or %s)", c.Platform.Driver, DriverAPC, DriverHCloud, DriverMemory)
	}
	return nil
}
