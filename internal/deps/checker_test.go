package deps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winauto/bridge/pkg/config"
	"github.com/winauto/bridge/pkg/logger"
)

func writePlaybook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "playbook.yml")
	require.NoError(t, os.WriteFile(path, []byte("---\n"), 0644))
	return path
}

// git doubles as a stand-in engine binary in tests: it exists everywhere the
// tests run and answers --version.
func healthyConfig(t *testing.T) config.AnsibleConfig {
	return config.AnsibleConfig{
		Binary:       "git",
		GitBinary:    "git",
		PlaybookPath: writePlaybook(t),
	}
}

func TestCheckerHealthy(t *testing.T) {
	checker := NewChecker(
		config.HealthConfig{ProbeEnabled: false},
		healthyConfig(t),
		logger.NewNop(),
	)

	snapshot := checker.Snapshot()
	assert.True(t, snapshot.Healthy())
	assert.Empty(t, snapshot.Failing())

	dep := snapshot.Dependencies["ansible"]
	assert.True(t, dep.Available)
	assert.Contains(t, dep.Version, "git version")
	assert.True(t, snapshot.Dependencies["playbook"].Available)
}

func TestCheckerMissingEngine(t *testing.T) {
	cfg := healthyConfig(t)
	cfg.Binary = "/nonexistent/ansible-playbook"

	checker := NewChecker(config.HealthConfig{ProbeEnabled: false}, cfg, logger.NewNop())

	snapshot := checker.Snapshot()
	assert.False(t, snapshot.Healthy())
	assert.Equal(t, []string{"ansible"}, snapshot.Failing())
	assert.NotEmpty(t, snapshot.Dependencies["ansible"].Error)
}

func TestCheckerMissingPlaybook(t *testing.T) {
	cfg := healthyConfig(t)
	cfg.PlaybookPath = filepath.Join(t.TempDir(), "missing.yml")

	checker := NewChecker(config.HealthConfig{ProbeEnabled: false}, cfg, logger.NewNop())

	snapshot := checker.Snapshot()
	assert.False(t, snapshot.Healthy())
	assert.Equal(t, []string{"playbook"}, snapshot.Failing())
}

func TestCheckerScheduledProbeCachesSnapshot(t *testing.T) {
	checker := NewChecker(
		config.HealthConfig{ProbeEnabled: true, ProbeSchedule: "@every 1h"},
		healthyConfig(t),
		logger.NewNop(),
	)

	require.NoError(t, checker.Start())
	defer checker.Stop()

	// Start probes once up front, so the cached snapshot is populated.
	snapshot := checker.Snapshot()
	assert.True(t, snapshot.Healthy())
	assert.False(t, snapshot.Timestamp.IsZero())
}

func TestCheckerBadSchedule(t *testing.T) {
	checker := NewChecker(
		config.HealthConfig{ProbeEnabled: true, ProbeSchedule: "not a schedule"},
		healthyConfig(t),
		logger.NewNop(),
	)

	assert.Error(t, checker.Start())
}
