package checks

import (
	"context"
	"fmt"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// VenvCheck reports whether a Python virtual environment or conda
// environment is active in the current shell.
func VenvCheck(getenv func(string) string) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "venv"

		if venv := getenv("VIRTUAL_ENV"); venv != "" {
			return pass(name, fmt.Sprintf("virtual environment active: %s", venv))
		}
		if conda := getenv("CONDA_PREFIX"); conda != "" {
			env := getenv("CONDA_DEFAULT_ENV")
			if env == "" {
				env = conda
			}
			return pass(name, fmt.Sprintf("conda environment active: %s", env))
		}

		return warn(name, "no virtual environment is active",
			"python3 -m venv .venv and activate it before installing dependencies")
	}
}
