package config

import (
	"os"
	"time"
)

// Timeouts holds the timeouts drivers apply to individual platform calls.
// The orchestrator itself never times out or retries a call.
type Timeouts struct {
	Call   time.Duration // Timeout for a single platform call
	Delete time.Duration // Timeout for delete calls
	Action time.Duration // Timeout for waiting on asynchronous platform actions

	// PollInterval is how often asynchronous actions are polled.
	PollInterval time.Duration
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - RLCLUSTER_TIMEOUT_CALL (default: 2m)
//   - RLCLUSTER_TIMEOUT_DELETE (default: 5m)
//   - RLCLUSTER_TIMEOUT_ACTION (default: 10m)
//   - RLCLUSTER_POLL_INTERVAL (default: 500ms)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Call:         parseDuration("RLCLUSTER_TIMEOUT_CALL", 2*time.Minute),
		Delete:       parseDuration("RLCLUSTER_TIMEOUT_DELETE", 5*time.Minute),
		Action:       parseDuration("RLCLUSTER_TIMEOUT_ACTION", 10*time.Minute),
		PollInterval: parseDuration("RLCLUSTER_POLL_INTERVAL", 500*time.Millisecond),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// TestTimeouts returns short timeouts for unit tests.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		Call:         5 * time.Second,
		Delete:       5 * time.Second,
		Action:       5 * time.Second,
		PollInterval: time.Millisecond,
	}
}
