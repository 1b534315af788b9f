//go:build unix

package process_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/oa-drill/evaluator/internal/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sh(script string) process.Spec {
	return process.Spec{Path: "/bin/sh", Args: []string{"-c", script}}
}

func TestExecuteEchoesStdin(t *testing.T) {
	r := process.NewRunner(nil)
	res, err := r.Execute(context.Background(), sh("cat"), []byte("1 2\n3\n"), process.DefaultLimits())
	require.NoError(t, err)

	assert.True(t, res.Success())
	assert.Equal(t, "1 2\n3\n", res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.False(t, res.TimedOut)
	assert.Positive(t, res.Elapsed)
}

func TestExecuteReportsExitCodeAndStderr(t *testing.T) {
	r := process.NewRunner(nil)
	res, err := r.Execute(context.Background(), sh("echo boom >&2; exit 3"), nil, process.DefaultLimits())
	require.NoError(t, err)

	assert.False(t, res.Success())
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "boom\n", res.Stderr)
	assert.Empty(t, res.Signal)
}

func TestExecuteReportsSignal(t *testing.T) {
	r := process.NewRunner(nil)
	res, err := r.Execute(context.Background(), sh("kill -SEGV $$"), nil, process.DefaultLimits())
	require.NoError(t, err)

	assert.False(t, res.Success())
	assert.Equal(t, -1, res.ExitCode)
	assert.Equal(t, syscall.SIGSEGV.String(), res.Signal)
}

func TestExecuteRunsInDir(t *testing.T) {
	dir := t.TempDir()
	spec := sh("pwd")
	spec.Dir = dir

	r := process.NewRunner(nil)
	res, err := r.Execute(context.Background(), spec, nil, process.DefaultLimits())
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(res.Stdout))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecuteTimeoutKillsWholeGroup(t *testing.T) {
	pidFile := filepath.Join(t.TempDir(), "pid")
	limits := process.DefaultLimits()
	limits.WallTime = 300 * time.Millisecond

	r := process.NewRunner(nil)
	start := time.Now()
	res, err := r.Execute(context.Background(),
		sh("sleep 30 & echo $! > "+pidFile+"; wait"), nil, limits)
	took := time.Since(start)
	require.NoError(t, err)

	assert.True(t, res.TimedOut)
	assert.Equal(t, -1, res.ExitCode)
	assert.False(t, res.Success())
	assert.Less(t, took, limits.WallTime+2*time.Second, "call must return shortly after the deadline")

	raw, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return errors.Is(syscall.Kill(pid, 0), syscall.ESRCH)
	}, 3*time.Second, 20*time.Millisecond, "grandchild %d still running", pid)
}

func TestExecuteBackgroundChildDoesNotHoldCall(t *testing.T) {
	limits := process.DefaultLimits()
	limits.WallTime = 5 * time.Second

	r := process.NewRunner(nil)
	start := time.Now()
	res, err := r.Execute(context.Background(), sh("sleep 30 & echo done"), nil, limits)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 3*time.Second)
	assert.False(t, res.TimedOut)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "done\n", res.Stdout)
}

func TestExecuteTruncatesOutput(t *testing.T) {
	limits := process.DefaultLimits()
	limits.OutputBytes = 1024

	r := process.NewRunner(nil)
	res, err := r.Execute(context.Background(), sh("yes | head -c 1000000"), nil, limits)
	require.NoError(t, err)

	assert.Len(t, res.Stdout, 1024)
	assert.True(t, res.StdoutTruncated)
	assert.False(t, res.StderrTruncated)
}

func TestExecuteMissingBinary(t *testing.T) {
	r := process.NewRunner(nil)
	_, err := r.Execute(context.Background(),
		process.Spec{Path: "/definitely/not/here"}, nil, process.DefaultLimits())
	require.Error(t, err)
}

func TestExecuteRejectsInvalidLimits(t *testing.T) {
	r := process.NewRunner(nil)
	_, err := r.Execute(context.Background(), sh("true"), nil, process.Limits{})
	require.Error(t, err)
}
