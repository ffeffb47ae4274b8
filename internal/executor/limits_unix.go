//go:build !windows && !linux

package executor

import (
	"os/exec"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// setProcessGroup starts the shell as the leader of a new process group so
// system_profiler and awk can be stopped together.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killProcessGroup(cmd *exec.Cmd, logger *zap.Logger) error {
	if cmd.Process == nil {
		return nil
	}
	pid := cmd.Process.Pid
	pgid, err := unix.Getpgid(pid)
	if err != nil {
		logger.Debug("process group lookup failed, killing shell only", zap.Int("pid", pid), zap.Error(err))
		return cmd.Process.Kill()
	}
	logger.Debug("killing process group", zap.Int("pid", pid), zap.Int("pgid", pgid))
	return unix.Kill(-pgid, unix.SIGKILL)
}
