// Package process runs one child process with piped stdin, bounded output
// capture and a hard wall-clock deadline.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Spec describes what to execute.
type Spec struct {
	Path string
	Args []string
	Dir  string
	// Env replaces the environment of the child when non-nil.
	Env []string
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %v", s.Path, s.Args)
}

// Result is what one execution produced.
type Result struct {
	// ExitCode is -1 when the process was killed by a signal or timed out.
	ExitCode int
	// Signal names the terminating signal, if any.
	Signal string

	Stdout          string
	Stderr          string
	StdoutTruncated bool
	StderrTruncated bool

	Elapsed  time.Duration
	TimedOut bool
}

// Success reports whether the process ran to completion with exit code 0.
func (r *Result) Success() bool {
	return !r.TimedOut && r.ExitCode == 0 && r.Signal == ""
}

type Runner struct {
	logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger.With("component", "process")}
}

// Execute spawns exactly one child described by spec, writes stdin to it and
// waits until it exits or limits.WallTime elapses. On deadline the child's
// whole process group is killed and the result has TimedOut set.
//
// An error is returned only when the process could not be started or when
// ctx was cancelled before the deadline. Execute never retries.
func (r *Runner) Execute(ctx context.Context, spec Spec, stdin []byte, limits Limits) (*Result, error) {
	if err := limits.validate(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, limits.WallTime)
	defer cancel()

	cmd := exec.CommandContext(runCtx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = spec.Env
	}
	cmd.Stdin = bytes.NewReader(stdin)
	stdout := newCappedBuffer(limits.OutputBytes)
	stderr := newCappedBuffer(limits.OutputBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}
	cmd.WaitDelay = limits.KillGrace

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", spec.Path, err)
	}
	r.logger.Debug("process started", "pid", cmd.Process.Pid, "cmd", spec.String())

	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	// Whatever is left of the group (background grandchildren) goes too.
	if err := killProcessGroup(cmd); err != nil {
		r.logger.Warn("failed to kill process group", "pid", cmd.Process.Pid, "error", err)
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("execution aborted: %w", ctx.Err())
	}

	res := &Result{
		ExitCode:        -1,
		Stdout:          stdout.String(),
		Stderr:          stderr.String(),
		StdoutTruncated: stdout.truncated,
		StderrTruncated: stderr.truncated,
		Elapsed:         elapsed,
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		r.logger.Debug("process timed out", "pid", cmd.Process.Pid, "elapsed", elapsed)
		return res, nil
	}

	if waitErr != nil && !errors.Is(waitErr, exec.ErrWaitDelay) {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return nil, fmt.Errorf("failed to wait for %s: %w", spec.Path, waitErr)
		}
	}

	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
		res.Signal = exitSignal(cmd.ProcessState)
	}
	r.logger.Debug("process finished",
		"pid", cmd.Process.Pid,
		"exit_code", res.ExitCode,
		"signal", res.Signal,
		"elapsed", elapsed)
	return res, nil
}

// Executor runs one process to completion. *Runner implements it.
type Executor interface {
	Execute(ctx context.Context, spec Spec, stdin []byte, limits Limits) (*Result, error)
}

var _ Executor = (*Runner)(nil)
