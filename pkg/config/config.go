package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Ansible AnsibleConfig `mapstructure:"ansible"`
	Health  HealthConfig  `mapstructure:"health"`
}

type ServerConfig struct {
	IP             string        `mapstructure:"ip"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
	File   string `mapstructure:"file"`
}

// AnsibleConfig describes the wrapped automation engine: where the playbook
// lives, which binaries to invoke, and the per-run defaults applied when a
// request leaves the corresponding option unset.
type AnsibleConfig struct {
	PlaybookPath      string        `mapstructure:"playbook_path"`
	InventoryPath     string        `mapstructure:"inventory_path"`
	DefaultGitRepo    string        `mapstructure:"default_git_repo"`
	DefaultScriptPath string        `mapstructure:"default_script_path"`
	DefaultTimeout    time.Duration `mapstructure:"default_timeout"`
	// TimeoutBuffer is added on top of the requested timeout before the
	// subprocess is killed, so the engine's own async timeout can fire first
	// and still report per-host results.
	TimeoutBuffer    time.Duration `mapstructure:"timeout_buffer"`
	TerminationGrace time.Duration `mapstructure:"termination_grace"`
	Binary           string        `mapstructure:"binary"`
	GitBinary        string        `mapstructure:"git_binary"`
}

type HealthConfig struct {
	ProbeEnabled  bool   `mapstructure:"probe_enabled"`
	ProbeSchedule string `mapstructure:"probe_schedule"`
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("server.ip", "0.0.0.0")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", "30s")
	// Write timeout must cover a full engine run (request timeout + buffer).
	viper.SetDefault("server.write_timeout", "600s")
	viper.SetDefault("server.max_header_bytes", 1048576)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output", "stdout")

	viper.SetDefault("ansible.playbook_path", "ansible/playbooks/execute-powershell-script.yml")
	viper.SetDefault("ansible.inventory_path", "ansible/inventory/hosts.yml")
	viper.SetDefault("ansible.default_git_repo", "https://github.com/keepithuman/ansible-powershell-automation.git")
	viper.SetDefault("ansible.default_script_path", "scripts/Manage-WindowsSystem.ps1")
	viper.SetDefault("ansible.default_timeout", "300s")
	viper.SetDefault("ansible.timeout_buffer", "60s")
	viper.SetDefault("ansible.termination_grace", "5s")
	viper.SetDefault("ansible.binary", "ansible-playbook")
	viper.SetDefault("ansible.git_binary", "git")

	viper.SetDefault("health.probe_enabled", true)
	viper.SetDefault("health.probe_schedule", "@every 30s")

	viper.SetEnvPrefix("BRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
