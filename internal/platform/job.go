package platform

import (
	"fmt"
	"time"
)

// Port is a port exposed by a job.
type Port struct {
	Number   int
	Protocol string // "tcp" when empty
}

// Route maps inbound traffic for a URL to a job port.
type Route struct {
	URL  string
	Port int
}

// JobSpec is everything a driver needs to create a job.
type JobSpec struct {
	Name         string
	Image        string
	Command      Command
	Env          map[string]string
	Ports        []Port
	Routes       []Route
	MemoryMB     int
	StartTimeout time.Duration

	// PlacementTag is an optional hint for the host class the job should be
	// scheduled on.
	PlacementTag string
}

// Validate checks the spec before it is handed to a driver.
func (s JobSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: job name is required", ErrInvalidJob)
	}
	if s.Image == "" {
		return fmt.Errorf("%w: job %s: image is required", ErrInvalidJob, s.Name)
	}
	for _, p := range s.Ports {
		if p.Number < 1 || p.Number > 65535 {
			return fmt.Errorf("%w: job %s: port %d out of range", ErrInvalidJob, s.Name, p.Number)
		}
	}
	for _, r := range s.Routes {
		if !s.exposes(r.Port) {
			return fmt.Errorf("%w: job %s: route %s targets unexposed port %d", ErrInvalidJob, s.Name, r.URL, r.Port)
		}
	}
	if err := s.Command.Validate(); err != nil {
		return fmt.Errorf("job %s: %w", s.Name, err)
	}
	return nil
}

func (s JobSpec) exposes(port int) bool {
	for _, p := range s.Ports {
		if p.Number == port {
			return true
		}
	}
	return false
}
