package models

import "fmt"

// ValidationError rejects a request before any process is spawned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ExecutionOptions are per-run overrides; zero values fall back to the
// configured defaults.
type ExecutionOptions struct {
	// Timeout in seconds handed to the engine as its async timeout.
	Timeout    int    `json:"timeout"`
	GitRepo    string `json:"gitRepo"`
	ScriptPath string `json:"scriptPath"`
	Cleanup    bool   `json:"cleanup"`
}

// ExecuteScriptRequest is the body of POST /execute-script.
type ExecuteScriptRequest struct {
	Targets    []string         `json:"targets"`
	Action     Action           `json:"action"`
	Parameters JSONMap          `json:"parameters"`
	Options    ExecutionOptions `json:"options"`
}

func (r *ExecuteScriptRequest) Validate() error {
	if len(r.Targets) == 0 {
		return &ValidationError{Field: "targets", Reason: "field is required"}
	}
	for _, t := range r.Targets {
		if t == "" {
			return &ValidationError{Field: "targets", Reason: "must not contain empty host names"}
		}
	}
	if r.Action == "" {
		return &ValidationError{Field: "action", Reason: "field is required"}
	}
	if !r.Action.Valid() {
		return &ValidationError{
			Field:  "action",
			Reason: fmt.Sprintf("must be one of %v", SupportedActions()),
		}
	}
	if r.Options.Timeout < 0 {
		return &ValidationError{Field: "options.timeout", Reason: "must be a positive number of seconds"}
	}
	return nil
}

// ManageServicesRequest is the body of POST /manage-services.
type ManageServicesRequest struct {
	Targets     []string `json:"targets"`
	ServiceName string   `json:"serviceName"`
	Action      string   `json:"action"`
	Timeout     int      `json:"timeout"`
}

func (r *ManageServicesRequest) Validate() error {
	if len(r.Targets) == 0 {
		return &ValidationError{Field: "targets", Reason: "field is required"}
	}
	if r.ServiceName == "" {
		return &ValidationError{Field: "serviceName", Reason: "field is required"}
	}
	if r.Action == "" {
		return &ValidationError{Field: "action", Reason: "field is required"}
	}
	return nil
}

// SystemInfoRequest is the body of POST /system-info.
type SystemInfoRequest struct {
	Targets    []string `json:"targets"`
	OutputPath string   `json:"outputPath"`
}

func (r *SystemInfoRequest) Validate() error {
	if len(r.Targets) == 0 {
		return &ValidationError{Field: "targets", Reason: "field is required"}
	}
	return nil
}
