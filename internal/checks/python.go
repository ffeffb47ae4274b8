package checks

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/breeze-rmm/envdoctor/internal/executor"
	"github.com/breeze-rmm/envdoctor/internal/inventory"
	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// Python inspects a Python interpreter through the command executor.
type Python struct {
	runner     executor.Runner
	executable string
	goos       string
}

// NewPython creates a Python inspector for the given interpreter.
func NewPython(runner executor.Runner, executable string) *Python {
	return &Python{
		runner:     runner,
		executable: executable,
		goos:       runtime.GOOS,
	}
}

// Version returns the interpreter version, e.g. "3.12.1".
func (p *Python) Version(ctx context.Context) (string, error) {
	out, err := p.runner.Run(ctx, p.command("--version"))
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(out), "Python"))
	if version == "" {
		return "", fmt.Errorf("%s --version printed no version", p.executable)
	}
	return version, nil
}

// Packages returns the distributions installed for the interpreter.
func (p *Python) Packages(ctx context.Context) ([]models.SoftwareRecord, error) {
	out, err := p.runner.Run(ctx, p.command("-m pip list --format=freeze --disable-pip-version-check"))
	if err != nil {
		return nil, err
	}
	return inventory.ParseFreeze(out), nil
}

// Info collects version and packages. Failures are recorded in the Error
// field rather than returned.
func (p *Python) Info(ctx context.Context) (models.RuntimeInfo, error) {
	info := models.RuntimeInfo{Executable: p.executable, Packages: []models.SoftwareRecord{}}

	version, err := p.Version(ctx)
	if err != nil {
		info.Error = fmt.Sprintf("python not available: %v", err)
		return info, err
	}
	info.Version = version

	packages, err := p.Packages(ctx)
	if err != nil {
		info.Error = fmt.Sprintf("pip not available: %v", err)
		return info, err
	}
	info.Packages = packages

	return info, nil
}

func (p *Python) command(args string) string {
	return quoteExecutable(p.goos, p.executable) + " " + args
}

// quoteExecutable quotes paths containing spaces for the platform shell.
func quoteExecutable(goos, path string) string {
	if !strings.ContainsAny(path, " \t") {
		return path
	}
	if goos == "windows" {
		return "& '" + strings.ReplaceAll(path, "'", "''") + "'"
	}
	return "'" + strings.ReplaceAll(path, "'", `'\''`) + "'"
}
