package launch

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/topology"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// Gym resource requirements.
const (
	GymMemoryMB     = 2048
	GymStartTimeout = 120 * time.Second
)

// Agent process invocation.
const (
	agentPython = "python"
	agentScript = "/universe-starter-agent/worker.py"
	dashboard   = "tensorboard"
)

// agentEnv hides GPUs from the agent processes; training runs on CPU.
var agentEnv = map[string]string{"CUDA_VISIBLE_DEVICES": ""}

// Builder produces job specs for one deployment run.
type Builder struct {
	cfg  *config.Config
	spec *topology.ClusterSpec
}

// NewBuilder creates a builder for the given configuration and topology.
func NewBuilder(cfg *config.Config, spec *topology.ClusterSpec) *Builder {
	return &Builder{cfg: cfg, spec: spec}
}

// Jobs returns the specs of every job in creation order: the parameter
// server, then each instance's gym and worker.
func (b *Builder) Jobs(instances []topology.Instance) ([]platform.JobSpec, error) {
	if len(instances) != len(b.spec.Gyms) || len(instances) != len(b.spec.Workers) {
		return nil, fmt.Errorf("topology has %d gyms and %d workers for %d instances",
			len(b.spec.Gyms), len(b.spec.Workers), len(instances))
	}

	jobs := make([]platform.JobSpec, 0, 1+2*len(instances))
	jobs = append(jobs, b.ParameterServer())
	for i, inst := range instances {
		jobs = append(jobs, b.Gym(i, inst), b.Worker(i, inst))
	}
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
	}
	return jobs, nil
}

// Gym returns the spec of the i-th instance's simulation environment.
func (b *Builder) Gym(i int, inst topology.Instance) platform.JobSpec {
	ports := b.cfg.GymPorts
	return platform.JobSpec{
		Name:  inst.GymName,
		Image: b.cfg.GymImage,
		Ports: []platform.Port{
			{Number: ports.Display, Protocol: "tcp"},
			{Number: ports.Control, Protocol: "tcp"},
		},
		Routes: []platform.Route{
			{URL: "http://" + b.spec.Gyms[i], Port: ports.Control},
		},
		MemoryMB:     GymMemoryMB,
		StartTimeout: GymStartTimeout,
		PlacementTag: inst.PlacementTag,
	}
}

// ParameterServer returns the spec of ps0, which also serves the training
// dashboard.
func (b *Builder) ParameterServer() platform.JobSpec {
	name := naming.ParameterServer(0)
	return platform.JobSpec{
		Name:  name,
		Image: b.cfg.AgentImage,
		Command: platform.Command{
			Sidecars: []platform.Process{{
				Program: dashboard,
				Args: []string{
					"--logdir", b.cfg.LogDir,
					"--port", strconv.Itoa(b.cfg.DashboardPort),
					"--host", "0.0.0.0",
				},
			}},
			Main: b.agent(naming.RoleParameterServer),
		},
		Env: maps.Clone(agentEnv),
		Ports: []platform.Port{
			{Number: b.cfg.GRPCPort, Protocol: "tcp"},
			{Number: b.cfg.DashboardPort, Protocol: "tcp"},
		},
		Routes: []platform.Route{
			{URL: "http://" + naming.DiscoveryAddress(name, b.spec.Domain), Port: b.cfg.DashboardPort},
		},
	}
}

// Worker returns the spec of the i-th instance's agent. Its task index is
// its position among the workers and its remote is its paired gym.
func (b *Builder) Worker(i int, inst topology.Instance) platform.JobSpec {
	main := b.agent(naming.RoleWorker)
	main.Args = append(main.Args,
		"--task", strconv.Itoa(i),
		"--remotes", Remote(b.spec.Gyms[i], b.cfg.GymPorts),
	)
	return platform.JobSpec{
		Name:         inst.WorkerName,
		Image:        b.cfg.AgentImage,
		Command:      platform.Command{Main: main},
		Env:          maps.Clone(agentEnv),
		Ports:        []platform.Port{{Number: b.cfg.GRPCPort, Protocol: "tcp"}},
		PlacementTag: inst.PlacementTag,
	}
}

func (b *Builder) agent(role string) platform.Process {
	return platform.Process{
		Program: agentPython,
		Args: []string{
			agentScript,
			"--job-name", role,
			"--env-id", b.cfg.EnvID,
			"--workers", b.spec.WorkersArg(),
			"--log-dir", b.cfg.LogDir,
		},
	}
}

// Remote formats the VNC remote of a gym: vnc://<host>:<display>+<control>.
func Remote(gym string, ports config.PortPair) string {
	return fmt.Sprintf("vnc://%s:%d+%d", gym, ports.Display, ports.Control)
}
