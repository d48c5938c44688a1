package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// WizardResult holds the answers given to the init wizard.
type WizardResult struct {
	Name      string
	EnvID     string
	Instances string
	Tags      string
	Driver    string
	Affinity  platform.AffinityPolicy
}

// NewWizardResult returns a result preset with the defaults shown by the wizard.
func NewWizardResult() *WizardResult {
	return &WizardResult{
		Name:      DefaultName,
		EnvID:     DefaultEnvID,
		Instances: strconv.Itoa(DefaultInstances),
		Driver:    DriverAPC,
		Affinity:  platform.AffinityHard,
	}
}

// RunWizard asks for the essential deployment settings.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := NewWizardResult()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Deployment name").
				Description("Names the network and the shared log service").
				Value(&result.Name).
				Validate(validateDeploymentName),
			huh.NewInput().
				Title("Environment id").
				Description("Game environment the agents train on").
				Value(&result.EnvID).
				Validate(validateRequired("environment id")),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Instances").
				Description("Number of gym/worker pairs").
				Value(&result.Instances).
				Validate(validateInstanceCount),
			huh.NewInput().
				Title("Placement tags (optional)").
				Description("Comma separated, one per instance in order").
				Placeholder("gpu,gpu").
				Value(&result.Tags),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Platform").
				Options(
					huh.NewOption("Apcera (apc command line)", DriverAPC),
					huh.NewOption("Hetzner Cloud", DriverHCloud),
					huh.NewOption("In-memory (dry run)", DriverMemory),
				).
				Value(&result.Driver),
			huh.NewSelect[platform.AffinityPolicy]().
				Title("Worker/gym affinity").
				Description("hard: must share a host | soft: prefer to").
				Options(
					huh.NewOption("Hard", platform.AffinityHard),
					huh.NewOption("Soft", platform.AffinitySoft),
				).
				Value(&result.Affinity),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the answers into a defaulted configuration. Credentials
// are not part of the result; they are read from the environment on load.
func (r *WizardResult) ToConfig() (*Config, error) {
	if err := validateDeploymentName(r.Name); err != nil {
		return nil, err
	}
	if err := validateInstanceCount(r.Instances); err != nil {
		return nil, err
	}
	instances, _ := strconv.Atoi(strings.TrimSpace(r.Instances))

	cfg := &Config{
		Name:      strings.TrimSpace(r.Name),
		EnvID:     strings.TrimSpace(r.EnvID),
		Instances: instances,
		Tags:      splitTags(r.Tags),
		Affinity:  r.Affinity,
		Platform:  PlatformConfig{Driver: r.Driver},
	}
	cfg.ApplyDefaults()

	if err := cfg.validateInstances(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func validateDeploymentName(s string) error {
	if !naming.ValidJob(strings.TrimSpace(s)) {
		return fmt.Errorf("name must be lowercase alphanumerics and dashes, starting with a letter")
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateInstanceCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("instances must be a positive number")
	}
	return nil
}
