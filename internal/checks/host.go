package checks

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/breeze-rmm/envdoctor/internal/inventory"
	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// HostInfo collects operating system details of the current host.
func HostInfo(ctx context.Context) (models.HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return models.HostInfo{}, fmt.Errorf("failed to get host info: %w", err)
	}

	arch := info.KernelArch
	if arch == "" {
		arch = runtime.GOARCH
	}

	return models.HostInfo{
		System:          inventory.CurrentPlatform().String(),
		Hostname:        info.Hostname,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		Architecture:    arch,
		Uptime:          info.Uptime,
	}, nil
}
