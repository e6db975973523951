package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all orchestrator configuration loaded from environment variables.
type Config struct {
	// PublicIP is the externally reachable address used to compose service
	// URLs. When empty the application discovers it at startup.
	PublicIP string

	// Port is the HTTP API listen port.
	Port int

	// Secret, when set, is required in the X-Orchestrator-Secret header.
	Secret string

	// PortRangeStart and PortRangeEnd bound the host ports handed to
	// instances: [start, end).
	PortRangeStart int
	PortRangeEnd   int

	// DockerBinary is the engine CLI executable.
	DockerBinary string

	// PullTimeout bounds image pulls; CommandTimeout bounds every other
	// engine command.
	PullTimeout    time.Duration
	CommandTimeout time.Duration

	// LogDir is the directory for log files; empty logs to stdout only.
	LogDir string
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:           8000,
		PortRangeStart: 50000,
		PortRangeEnd:   60000,
		DockerBinary:   "docker",
		PullTimeout:    5 * time.Minute,
		CommandTimeout: 30 * time.Second,
	}
}

// Load reads configuration from environment variables, applying defaults
// for anything not explicitly set. Returns an error if a value is malformed.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	cfg.PublicIP = strings.TrimSpace(os.Getenv("PUBLIC_IP"))
	cfg.Secret = strings.TrimSpace(os.Getenv("ORCHESTRATOR_SECRET"))

	if v := os.Getenv("ORCHESTRATOR_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid ORCHESTRATOR_PORT: %s", v)
		}
		cfg.Port = port
	}

	if v := os.Getenv("ORCHESTRATOR_PORT_RANGE"); v != "" {
		start, end, err := parsePortRange(v)
		if err != nil {
			return nil, err
		}
		cfg.PortRangeStart = start
		cfg.PortRangeEnd = end
	}

	if v := os.Getenv("ORCHESTRATOR_DOCKER"); v != "" {
		cfg.DockerBinary = v
	}

	if v := os.Getenv("ORCHESTRATOR_PULL_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 1 {
			return nil, fmt.Errorf("invalid ORCHESTRATOR_PULL_TIMEOUT: %s", v)
		}
		cfg.PullTimeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv("ORCHESTRATOR_CMD_TIMEOUT"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds < 1 {
			return nil, fmt.Errorf("invalid ORCHESTRATOR_CMD_TIMEOUT: %s", v)
		}
		cfg.CommandTimeout = time.Duration(seconds) * time.Second
	}

	if v := os.Getenv("ORCHESTRATOR_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}

	return cfg, nil
}

func parsePortRange(raw string) (int, int, error) {
	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid ORCHESTRATOR_PORT_RANGE: %s", raw)
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range start: %s", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid range end: %s", parts[1])
	}

	if start < 1 || end > 65536 || start >= end {
		return 0, 0, fmt.Errorf("invalid port range: %d-%d", start, end)
	}
	return start, end, nil
}
