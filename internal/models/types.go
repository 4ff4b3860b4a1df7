package models

import "encoding/json"

// Action is an automation operation understood by the PowerShell script the
// engine downloads and runs on the target hosts.
type Action string

const (
	ActionServiceManagement Action = "ServiceManagement"
	ActionFeatureManagement Action = "FeatureManagement"
	ActionEventLogCheck     Action = "EventLogCheck"
	ActionSystemInfo        Action = "SystemInfo"
	ActionFileOperations    Action = "FileOperations"
	ActionRegistryCheck     Action = "RegistryCheck"
)

func SupportedActions() []Action {
	return []Action{
		ActionServiceManagement,
		ActionFeatureManagement,
		ActionEventLogCheck,
		ActionSystemInfo,
		ActionFileOperations,
		ActionRegistryCheck,
	}
}

func (a Action) Valid() bool {
	for _, s := range SupportedActions() {
		if a == s {
			return true
		}
	}
	return false
}

type ExecutionStatus string

const (
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusFailed  ExecutionStatus = "failed"
	ExecutionStatusTimeout ExecutionStatus = "timeout"
)

type HostStatus string

const (
	HostStatusSuccess     HostStatus = "success"
	HostStatusFailed      HostStatus = "failed"
	HostStatusUnreachable HostStatus = "unreachable"
	HostStatusUnknown     HostStatus = "unknown"
)

// JSONMap carries free-form action parameters. They are passed through to the
// engine untyped; only the minimal required keys are ever inspected.
type JSONMap map[string]any

func (j JSONMap) String(key string) (string, bool) {
	v, ok := j[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (j JSONMap) Encode() (string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
