package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 4000\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.IP)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "ansible-playbook", cfg.Ansible.Binary)
	assert.Equal(t, 300*time.Second, cfg.Ansible.DefaultTimeout)
	assert.Equal(t, 60*time.Second, cfg.Ansible.TimeoutBuffer)
	assert.True(t, cfg.Health.ProbeEnabled)
	assert.Equal(t, "@every 30s", cfg.Health.ProbeSchedule)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8443
log:
  level: debug
  format: console
ansible:
  playbook_path: /opt/bridge/playbook.yml
  default_timeout: 120s
  binary: /usr/local/bin/ansible-playbook
health:
  probe_enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/opt/bridge/playbook.yml", cfg.Ansible.PlaybookPath)
	assert.Equal(t, 120*time.Second, cfg.Ansible.DefaultTimeout)
	assert.Equal(t, "/usr/local/bin/ansible-playbook", cfg.Ansible.Binary)
	assert.False(t, cfg.Health.ProbeEnabled)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BRIDGE_SERVER_PORT", "9100")
	path := writeConfig(t, "server:\n  port: 4000\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
