package ansible

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// RunSpec describes one subprocess invocation of the automation engine.
type RunSpec struct {
	Argv []string
	// Timeout is the hard deadline for the whole process tree; zero means
	// wait indefinitely.
	Timeout time.Duration
}

// RunResult carries what the subprocess produced. A nonzero exit code is not
// an error at this layer; the caller maps it.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
}

// Runner runs the automation engine. The interface exists so tests can
// substitute a stub and count spawns.
type Runner interface {
	Run(ctx context.Context, spec RunSpec) (RunResult, error)
}

// ProcessRunner executes the engine as a child process in its own process
// group, so a timeout can terminate the engine together with any WinRM
// children it forked.
type ProcessRunner struct {
	grace  time.Duration
	logger *zap.Logger
}

func NewProcessRunner(grace time.Duration, logger *zap.Logger) *ProcessRunner {
	if grace <= 0 {
		grace = 5 * time.Second
	}
	return &ProcessRunner{grace: grace, logger: logger}
}

func (r *ProcessRunner) Run(ctx context.Context, spec RunSpec) (RunResult, error) {
	if len(spec.Argv) == 0 {
		return RunResult{}, fmt.Errorf("empty argv")
	}

	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	// Own process group so TERM/KILL reaches the engine's descendants.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return RunResult{}, fmt.Errorf("%w: %s", ErrEngineNotFound, spec.Argv[0])
		}
		return RunResult{}, fmt.Errorf("failed to start process: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var deadline <-chan time.Time
	if spec.Timeout > 0 {
		timer := time.NewTimer(spec.Timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	timedOut := false
	select {
	case <-done:
	case <-ctx.Done():
		timedOut = true
		r.terminate(cmd.Process.Pid, done)
	case <-deadline:
		timedOut = true
		r.terminate(cmd.Process.Pid, done)
	}

	exitCode := -1
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}

	result := RunResult{
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
		TimedOut: timedOut,
	}

	if timedOut {
		r.logger.Warn("process terminated on deadline",
			zap.String("argv0", spec.Argv[0]),
			zap.Duration("timeout", spec.Timeout))
	}

	return result, nil
}

// terminate signals the whole process group: TERM first, KILL after the grace
// period. Blocks until Wait has reaped the process.
func (r *ProcessRunner) terminate(pid int, done <-chan error) {
	_ = syscall.Kill(-pid, syscall.SIGTERM)

	select {
	case <-done:
		return
	case <-time.After(r.grace):
	}

	_ = syscall.Kill(-pid, syscall.SIGKILL)
	<-done
}
