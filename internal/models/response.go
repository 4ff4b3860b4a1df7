package models

// HostResult is the per-host outcome extracted from the engine's output.
type HostResult struct {
	Host     string     `json:"host"`
	Status   HostStatus `json:"status"`
	Output   string     `json:"output"`
	Changed  bool       `json:"changed"`
	Duration float64    `json:"duration"`
}

type Summary struct {
	TotalHosts    int     `json:"totalHosts"`
	Successful    int     `json:"successful"`
	Failed        int     `json:"failed"`
	Unreachable   int     `json:"unreachable"`
	TotalDuration float64 `json:"totalDuration"`
}

// ExecutionResult is built once per request, returned in the response, and
// discarded. The execution id is correlation-only; nothing is stored.
type ExecutionResult struct {
	Success     bool            `json:"success"`
	Status      ExecutionStatus `json:"status"`
	Message     string          `json:"message"`
	ExecutionID string          `json:"executionId"`
	// Output holds the engine's stdout decoded as JSON when it is a single
	// JSON document, the raw text otherwise.
	Output        any          `json:"output"`
	Results       []HostResult `json:"results"`
	Summary       Summary      `json:"summary"`
	AnsibleStdout string       `json:"ansible_stdout,omitempty"`
	AnsibleStderr string       `json:"ansible_stderr,omitempty"`
}

// ServiceResult is the per-host view returned by /manage-services.
type ServiceResult struct {
	Host           string `json:"host"`
	ServiceName    string `json:"serviceName"`
	PreviousStatus string `json:"previousStatus"`
	CurrentStatus  string `json:"currentStatus"`
	Changed        bool   `json:"changed"`
	Message        string `json:"message"`
}

// SystemInfoResult is the per-host view returned by /system-info.
type SystemInfoResult struct {
	Host       string  `json:"host"`
	SystemInfo JSONMap `json:"systemInfo"`
	DiskInfo   []any   `json:"diskInfo"`
	ReportPath string  `json:"reportPath"`
}
