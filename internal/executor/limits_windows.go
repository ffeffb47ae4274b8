//go:build windows

package executor

import (
	"os/exec"

	"go.uber.org/zap"
)

// setProcessGroup is a no-op; on timeout the PowerShell process is killed directly.
func setProcessGroup(cmd *exec.Cmd) {}

func killProcessGroup(cmd *exec.Cmd, logger *zap.Logger) error {
	if cmd.Process == nil {
		return nil
	}
	logger.Debug("killing powershell", zap.Int("pid", cmd.Process.Pid))
	return cmd.Process.Kill()
}
