package hcloud

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/imamik/rlcluster/internal/platform"
)

const envFilePath = "/etc/rlcluster/job.env"

type cloudConfig struct {
	WriteFiles []writeFile `yaml:"write_files,omitempty"`
	RunCmd     [][]string  `yaml:"runcmd"`
}

type writeFile struct {
	Path        string `yaml:"path"`
	Permissions string `yaml:"permissions"`
	Content     string `yaml:"content"`
}

// renderUserData renders the cloud-config that runs the job's container on
// first boot. The container uses the host network, so exposed ports are the
// server's ports.
func renderUserData(spec platform.JobSpec) (string, error) {
	run := []string{"docker", "run", "--detach", "--name", spec.Name, "--restart", "unless-stopped", "--network", "host"}

	var cc cloudConfig
	if len(spec.Env) > 0 {
		var env strings.Builder
		for _, k := range slices.Sorted(maps.Keys(spec.Env)) {
			v := spec.Env[k]
			if strings.ContainsAny(k+v, "\n\r") || strings.Contains(k, "=") {
				return "", fmt.Errorf("%w: job %s: env %s cannot be written to an env file", platform.ErrInvalidJob, spec.Name, k)
			}
			fmt.Fprintf(&env, "%s=%s\n", k, v)
		}
		cc.WriteFiles = append(cc.WriteFiles, writeFile{Path: envFilePath, Permissions: "0600", Content: env.String()})
		run = append(run, "--env-file", envFilePath)
	}
	if spec.MemoryMB > 0 {
		run = append(run, "--memory", strconv.Itoa(spec.MemoryMB)+"m")
	}
	run = append(run, spec.Image)
	if !spec.Command.IsZero() {
		run = append(run, "sh", "-c", spec.Command.Shell())
	}
	cc.RunCmd = [][]string{run}

	out, err := yaml.Marshal(&cc)
	if err != nil {
		return "", fmt.Errorf("failed to render user data: %w", err)
	}
	return "#cloud-config\n" + string(out), nil
}
