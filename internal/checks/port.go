package checks

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// PortCheck verifies that the TCP port can be bound on all interfaces.
func PortCheck(port int) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "port"

		var lc net.ListenConfig
		ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort("", strconv.Itoa(port)))
		if err != nil {
			return fail(name,
				fmt.Sprintf("port %d is not available: %v", port, err),
				fmt.Sprintf("stop the process listening on port %d or configure another port", port))
		}
		_ = ln.Close()

		return pass(name, fmt.Sprintf("port %d is available", port))
	}
}
