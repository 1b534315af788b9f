//go:build unix

package process

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// killProcessGroup sends SIGKILL to the group led by the child, which takes
// down any grandchildren it spawned.
func killProcessGroup(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	// ESRCH: the group is already gone. EPERM: the pgid was reused by a
	// process we do not own after ours was reaped.
	if err == nil || errors.Is(err, syscall.ESRCH) || errors.Is(err, syscall.EPERM) {
		return nil
	}
	return err
}

func exitSignal(state *os.ProcessState) string {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return ""
	}
	return ws.Signal().String()
}
