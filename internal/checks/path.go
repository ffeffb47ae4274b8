package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// PathCheck verifies that every required command resolves on PATH.
func PathCheck(commands []string, lookPath func(string) (string, error)) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "path"
		if len(commands) == 0 {
			return skip(name, "no required commands configured")
		}

		var missing []string
		for _, command := range commands {
			command = strings.TrimSpace(command)
			if command == "" {
				continue
			}
			if _, err := lookPath(command); err != nil {
				missing = append(missing, command)
			}
		}

		if len(missing) > 0 {
			return fail(name,
				fmt.Sprintf("not found on PATH: %s", strings.Join(missing, ", ")),
				"install the missing tools or add their directories to PATH")
		}
		return pass(name, fmt.Sprintf("all %d required commands found on PATH", len(commands)))
	}
}
