package ansible

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/winauto/bridge/internal/models"
	"github.com/winauto/bridge/pkg/config"
)

// Executor turns one validated request into one engine run: temp inventory,
// argv, subprocess, per-host result parsing. Requests share nothing; the
// execution id is generated here and never stored.
type Executor struct {
	cfg    config.AnsibleConfig
	runner Runner
	logger *zap.Logger
}

func NewExecutor(cfg config.AnsibleConfig, runner Runner, logger *zap.Logger) *Executor {
	return &Executor{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}
}

func (e *Executor) Execute(ctx context.Context, req *models.ExecuteScriptRequest) (*models.ExecutionResult, error) {
	executionID := uuid.NewString()
	timeoutSecs := TimeoutSeconds(e.cfg, req.Options)

	inventoryPath, err := WriteTempInventory(req.Targets)
	if err != nil {
		return nil, err
	}
	defer os.Remove(inventoryPath)

	argv, err := BuildArgs(e.cfg, inventoryPath, req, executionID)
	if err != nil {
		return nil, err
	}

	e.logger.Info("executing playbook",
		zap.String("execution_id", executionID),
		zap.String("action", string(req.Action)),
		zap.Strings("targets", req.Targets),
		zap.Int("timeout_seconds", timeoutSecs))

	runResult, err := e.runner.Run(ctx, RunSpec{
		Argv:    argv,
		Timeout: time.Duration(timeoutSecs)*time.Second + e.cfg.TimeoutBuffer,
	})
	if err != nil {
		e.logger.Error("engine invocation failed",
			zap.String("execution_id", executionID),
			zap.Error(err))
		return nil, err
	}

	if runResult.TimedOut {
		e.logger.Warn("execution timed out",
			zap.String("execution_id", executionID),
			zap.Strings("targets", req.Targets))
		return timeoutResult(executionID, req, runResult, timeoutSecs), nil
	}

	hostResults := ParseHostResults(runResult.Stdout, req.Targets)
	success := runResult.ExitCode == 0

	result := &models.ExecutionResult{
		Success:     success,
		ExecutionID: executionID,
		Output:      decodeOutput(runResult.Stdout),
		Results:     hostResults,
		Summary:     summarize(hostResults, runResult.Duration),
	}
	if success {
		result.Status = models.ExecutionStatusSuccess
		result.Message = "PowerShell script execution completed"
	} else {
		result.Status = models.ExecutionStatusFailed
		result.Message = "PowerShell script execution failed"
		result.AnsibleStdout = runResult.Stdout
	}
	if runResult.Stderr != "" {
		result.AnsibleStderr = runResult.Stderr
	}

	e.logger.Info("execution finished",
		zap.String("execution_id", executionID),
		zap.String("status", string(result.Status)),
		zap.Int("exit_code", runResult.ExitCode),
		zap.Duration("duration", runResult.Duration))

	return result, nil
}

func timeoutResult(executionID string, req *models.ExecuteScriptRequest, runResult RunResult, timeoutSecs int) *models.ExecutionResult {
	result := &models.ExecutionResult{
		Status:      models.ExecutionStatusTimeout,
		Message:     fmt.Sprintf("Execution timed out after %d seconds", timeoutSecs),
		ExecutionID: executionID,
		Results:     []models.HostResult{},
		Summary: models.Summary{
			TotalHosts:    len(req.Targets),
			Unreachable:   len(req.Targets),
			TotalDuration: float64(timeoutSecs),
		},
	}
	// Keep whatever the engine printed before it was killed.
	if runResult.Stdout != "" {
		result.Output = decodeOutput(runResult.Stdout)
		result.AnsibleStdout = runResult.Stdout
	}
	if runResult.Stderr != "" {
		result.AnsibleStderr = runResult.Stderr
	}
	return result
}

func summarize(hostResults []models.HostResult, duration time.Duration) models.Summary {
	summary := models.Summary{
		TotalHosts:    len(hostResults),
		TotalDuration: duration.Seconds(),
	}
	for _, hr := range hostResults {
		switch hr.Status {
		case models.HostStatusSuccess:
			summary.Successful++
		case models.HostStatusFailed:
			summary.Failed++
		case models.HostStatusUnreachable:
			summary.Unreachable++
		}
	}
	return summary
}

// decodeOutput returns stdout as structured JSON when it is a single JSON
// document, the raw text otherwise.
func decodeOutput(stdout string) any {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil
	}
	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		return decoded
	}
	return trimmed
}
