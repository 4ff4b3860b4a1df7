package ansible

import (
	"fmt"
	"strings"

	"github.com/winauto/bridge/internal/models"
	"github.com/winauto/bridge/pkg/config"
)

// BuildArgs composes the ansible-playbook argv for one execution. Targets,
// action and parameters travel as extra vars; the playbook itself fetches the
// PowerShell script from the git repo and runs it over WinRM.
func BuildArgs(cfg config.AnsibleConfig, inventoryPath string, req *models.ExecuteScriptRequest, executionID string) ([]string, error) {
	gitRepo := req.Options.GitRepo
	if gitRepo == "" {
		gitRepo = cfg.DefaultGitRepo
	}
	scriptPath := req.Options.ScriptPath
	if scriptPath == "" {
		scriptPath = cfg.DefaultScriptPath
	}

	args := []string{
		cfg.Binary,
		cfg.PlaybookPath,
		"-i", inventoryPath,
		"--limit", strings.Join(req.Targets, ","),
		"-e", "ps_action=" + string(req.Action),
		"-e", "execution_id=" + executionID,
		"-e", "git_repo=" + gitRepo,
		"-e", "script_file=" + scriptPath,
		"-e", fmt.Sprintf("async_timeout=%d", TimeoutSeconds(cfg, req.Options)),
	}

	if len(req.Parameters) > 0 {
		encoded, err := req.Parameters.Encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode parameters: %w", err)
		}
		args = append(args, "-e", "ps_parameters="+encoded)
	}

	if outputPath, ok := req.Parameters.String("outputPath"); ok && outputPath != "" {
		args = append(args, "-e", "output_path="+outputPath)
	}

	args = append(args, "-e", fmt.Sprintf("cleanup_temp=%t", req.Options.Cleanup))

	return args, nil
}

// TimeoutSeconds resolves the engine-side timeout for a run.
func TimeoutSeconds(cfg config.AnsibleConfig, opts models.ExecutionOptions) int {
	if opts.Timeout > 0 {
		return opts.Timeout
	}
	return int(cfg.DefaultTimeout.Seconds())
}
