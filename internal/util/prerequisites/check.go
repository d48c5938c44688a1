// Package prerequisites provides utilities for checking required client tools.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/imamik/rlcluster/internal/config"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name, or path, to look for.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DriverTools returns the tools a platform driver needs. The apc driver
// shells out to the apc binary; the other drivers are self-contained.
func DriverTools(cfg config.PlatformConfig) []Tool {
	if cfg.Driver != config.DriverAPC {
		return nil
	}
	return []Tool{
		{
			Name:        cfg.APC.Binary,
			Required:    true,
			Description: "Required by the apc platform driver",
			InstallURL:  "https://docs.apcera.com/quickstart/installing-apc/",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "hcloud",
			Required:    false,
			Description: "Useful for inspecting servers created by the hcloud driver",
			InstallURL:  "https://github.com/hetznercloud/cli",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = getToolVersion(path)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDriver checks the tools required by the configured driver.
func CheckDriver(cfg config.PlatformConfig) error {
	return Check(DriverTools(cfg)).Error()
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(path string) string {
	for _, flag := range []string{"--version", "version", "-v"} {
		// #nosec G204 - path comes from the tool list, resolved by LookPath
		output, err := exec.Command(path, flag).Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
