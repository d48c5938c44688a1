package topology

import (
	"fmt"

	"github.com/imamik/rlcluster/internal/util/naming"
)

// Instance is one gym paired with exactly one worker.
type Instance struct {
	GymName      string
	WorkerName   string
	PlacementTag string
}

// NewInstance pairs a gym with its worker.
func NewInstance(gym, tag string) Instance {
	return Instance{
		GymName:      gym,
		WorkerName:   naming.Worker(gym),
		PlacementTag: tag,
	}
}

// NewInstances builds count instances. Gym names default to vehicle<i>;
// names and tags, when given, apply to the first len(names)/len(tags)
// instances. An empty tag means no placement hint.
func NewInstances(count int, names, tags []string) ([]Instance, error) {
	if count < 1 {
		return nil, fmt.Errorf("instance count must be at least 1, got %d", count)
	}
	if len(names) > count {
		return nil, fmt.Errorf("%d instance names given for %d instances", len(names), count)
	}
	if len(tags) > count {
		return nil, fmt.Errorf("%d placement tags given for %d instances", len(tags), count)
	}

	reserved := map[string]string{naming.ParameterServer(0): "parameter server"}
	instances := make([]Instance, count)
	for i := range instances {
		gym := naming.Gym(i)
		if i < len(names) && names[i] != "" {
			gym = names[i]
		}
		var tag string
		if i < len(tags) {
			tag = tags[i]
		}

		// Start ordering tells workers apart by name, so a gym must not
		// look like one.
		if naming.IsWorker(gym) {
			return nil, fmt.Errorf("instance %d: gym name %q must not end in %q", i, gym, naming.Worker(""))
		}

		inst := NewInstance(gym, tag)
		for _, name := range []string{inst.GymName, inst.WorkerName} {
			if !naming.ValidJob(name) {
				return nil, fmt.Errorf("instance %d: invalid job name %q", i, name)
			}
			if owner, taken := reserved[name]; taken {
				return nil, fmt.Errorf("instance %d: job name %q already used by %s", i, name, owner)
			}
			reserved[name] = fmt.Sprintf("instance %d", i)
		}
		instances[i] = inst
	}
	return instances, nil
}

// JobNames returns every job of the deployment: the parameter server, then
// each instance's gym and worker in instance order.
func JobNames(instances []Instance) []string {
	names := make([]string, 0, 1+2*len(instances))
	names = append(names, naming.ParameterServer(0))
	for _, inst := range instances {
		names = append(names, inst.GymName, inst.WorkerName)
	}
	return names
}
