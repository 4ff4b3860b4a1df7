package deps

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/winauto/bridge/pkg/config"
)

const probeTimeout = 5 * time.Second

// Dependency is the probed state of one external requirement.
type Dependency struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Snapshot is one probe sweep over every declared dependency.
type Snapshot struct {
	Timestamp    time.Time             `json:"timestamp"`
	Dependencies map[string]Dependency `json:"dependencies"`
}

func (s Snapshot) Healthy() bool {
	for _, dep := range s.Dependencies {
		if !dep.Available {
			return false
		}
	}
	return true
}

// Failing names the dependencies that did not pass, sorted for stable output.
func (s Snapshot) Failing() []string {
	var names []string
	for name, dep := range s.Dependencies {
		if !dep.Available {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Checker probes the automation engine, the script-retrieval tool and the
// playbook file. With probing enabled it refreshes a cached snapshot on a
// cron schedule; disabled, every Snapshot call probes synchronously.
type Checker struct {
	health  config.HealthConfig
	ansible config.AnsibleConfig
	logger  *zap.Logger
	cron    *cron.Cron

	mu       sync.RWMutex
	snapshot Snapshot
}

func NewChecker(health config.HealthConfig, ansible config.AnsibleConfig, logger *zap.Logger) *Checker {
	return &Checker{
		health:  health,
		ansible: ansible,
		logger:  logger,
		cron:    cron.New(),
	}
}

// Start runs an initial probe so health is accurate immediately, then
// schedules periodic refreshes.
func (c *Checker) Start() error {
	if !c.health.ProbeEnabled {
		c.logger.Info("dependency prober is disabled, probing per request")
		return nil
	}

	c.refresh()

	if _, err := c.cron.AddFunc(c.health.ProbeSchedule, c.refresh); err != nil {
		return fmt.Errorf("failed to schedule dependency probe: %w", err)
	}
	c.cron.Start()

	c.logger.Info("dependency prober started",
		zap.String("schedule", c.health.ProbeSchedule))
	return nil
}

func (c *Checker) Stop() {
	if !c.health.ProbeEnabled {
		return
	}
	<-c.cron.Stop().Done()
	c.logger.Info("dependency prober stopped")
}

func (c *Checker) Snapshot() Snapshot {
	if !c.health.ProbeEnabled {
		return c.probe()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Checker) refresh() {
	snapshot := c.probe()
	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	for _, name := range snapshot.Failing() {
		c.logger.Warn("dependency check failed",
			zap.String("dependency", name),
			zap.String("error", snapshot.Dependencies[name].Error))
	}
}

func (c *Checker) probe() Snapshot {
	return Snapshot{
		Timestamp: time.Now(),
		Dependencies: map[string]Dependency{
			"ansible":  versionProbe(c.ansible.Binary),
			"git":      versionProbe(c.ansible.GitBinary),
			"playbook": fileProbe(c.ansible.PlaybookPath),
		},
	}
}

// versionProbe runs `<binary> --version` and keeps the first output line.
func versionProbe(binary string) Dependency {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return Dependency{Error: err.Error()}
	}

	version := strings.TrimSpace(strings.SplitN(string(out), "\n", 2)[0])
	return Dependency{Available: true, Version: version}
}

func fileProbe(path string) Dependency {
	if _, err := os.Stat(path); err != nil {
		return Dependency{Error: err.Error()}
	}
	return Dependency{Available: true}
}
