package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/breeze-rmm/envdoctor/internal/logging"
)

const (
	// MaxOutputSize is the maximum size of stdout to capture
	MaxOutputSize = 8 * 1024 * 1024 // 8MB

	// maxStderrSize bounds the stderr kept for diagnostics
	maxStderrSize = 4 * 1024

	// waitDelay bounds how long Run waits for output pipes after a kill
	waitDelay = 2 * time.Second
)

// ErrExecution is returned when a command could not be run or exited non-zero.
var ErrExecution = errors.New("command execution failed")

// Runner runs a shell command and returns its captured standard output.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// Shell runs commands through the platform shell.
type Shell struct {
	goos    string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Shell runner. A zero timeout waits for the command indefinitely.
func New(timeout time.Duration, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = logging.L("executor")
	}
	if timeout < 0 {
		timeout = 0
	}
	return &Shell{
		goos:    runtime.GOOS,
		timeout: timeout,
		logger:  logger,
	}
}

// Run executes command and returns its stdout. On any failure the returned
// output is empty, the error wraps ErrExecution and a warning is logged.
func (s *Shell) Run(ctx context.Context, command string) (string, error) {
	if strings.TrimSpace(command) == "" {
		return "", fmt.Errorf("%w: empty command", ErrExecution)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	shellCmd, shellArgs := ShellCommand(s.goos)
	args := append(append([]string{}, shellArgs...), command)
	cmd := exec.CommandContext(ctx, shellCmd, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitedWriter{buf: &stdout, limit: MaxOutputSize}
	cmd.Stderr = &limitedWriter{buf: &stderr, limit: maxStderrSize}

	// Kill the whole process group so pipelines do not leave orphans behind
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd, s.logger)
	}
	cmd.WaitDelay = waitDelay

	startTime := time.Now()
	err := cmd.Run()
	elapsed := time.Since(startTime)

	if err != nil {
		fields := []zap.Field{
			zap.String(logging.KeyCommand, command),
			zap.Int64(logging.KeyDurationMs, elapsed.Milliseconds()),
			zap.Error(err),
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			fields = append(fields, zap.String("stderr", msg))
		}

		var exitErr *exec.ExitError
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			s.logger.Warn("command timed out", append(fields, zap.Duration("timeout", s.timeout))...)
			return "", fmt.Errorf("%w: %s: timed out after %s", ErrExecution, command, s.timeout)
		case errors.As(err, &exitErr):
			s.logger.Warn("command exited with error", append(fields, zap.Int("exitCode", exitErr.ExitCode()))...)
		default:
			s.logger.Warn("command could not be started", fields...)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrExecution, command, err)
	}

	s.logger.Debug("command completed",
		zap.String(logging.KeyCommand, command),
		zap.Int64(logging.KeyDurationMs, elapsed.Milliseconds()),
		zap.Int("bytes", stdout.Len()),
	)

	return stdout.String(), nil
}

// limitedWriter wraps a buffer with a size limit
type limitedWriter struct {
	buf     *bytes.Buffer
	limit   int
	written int
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	total := len(p)
	if w.written >= w.limit {
		// Discard additional data but don't error
		return total, nil
	}

	remaining := w.limit - w.written
	if len(p) > remaining {
		p = p[:remaining]
	}

	n, err := w.buf.Write(p)
	w.written += n
	if err != nil {
		return n, err
	}
	// Report the original length so exec does not see a short write
	return total, nil
}
