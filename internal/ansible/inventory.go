package ansible

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const winrmPort = 5985

type hostVars struct {
	AnsibleHost           string `yaml:"ansible_host"`
	AnsibleConnection     string `yaml:"ansible_connection"`
	AnsibleWinRMTransport string `yaml:"ansible_winrm_transport"`
	AnsiblePort           int    `yaml:"ansible_port"`
}

type hostGroup struct {
	Hosts map[string]hostVars `yaml:"hosts"`
}

type inventory struct {
	Windows hostGroup `yaml:"windows"`
}

// WriteTempInventory renders a one-shot inventory file mapping each target to
// a WinRM-connected host in the windows group. The caller removes the file.
func WriteTempInventory(targets []string) (string, error) {
	inv := inventory{Windows: hostGroup{Hosts: make(map[string]hostVars, len(targets))}}
	for _, target := range targets {
		inv.Windows.Hosts[target] = hostVars{
			AnsibleHost:           target,
			AnsibleConnection:     "winrm",
			AnsibleWinRMTransport: "basic",
			AnsiblePort:           winrmPort,
		}
	}

	data, err := yaml.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("failed to marshal inventory: %w", err)
	}

	f, err := os.CreateTemp("", "bridge-inventory-*.yml")
	if err != nil {
		return "", fmt.Errorf("failed to create inventory file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write inventory file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close inventory file: %w", err)
	}

	return f.Name(), nil
}
