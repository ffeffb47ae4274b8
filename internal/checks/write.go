package checks

import (
	"context"
	"fmt"
	"os"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// WriteCheck verifies that the current user can create files in dir.
func WriteCheck(dir string) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "write"

		info, err := os.Stat(dir)
		if err != nil {
			return fail(name, fmt.Sprintf("cannot access %s: %v", dir, err), "create the project directory")
		}
		if !info.IsDir() {
			return fail(name, fmt.Sprintf("%s is not a directory", dir), "")
		}

		if err := writable(dir); err != nil {
			return fail(name,
				fmt.Sprintf("%s is not writable: %v", dir, err),
				fmt.Sprintf("grant write permission on %s to the current user", dir))
		}

		return pass(name, fmt.Sprintf("%s is writable", dir))
	}
}
