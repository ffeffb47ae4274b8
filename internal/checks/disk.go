package checks

import (
	"context"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// DiskCheck verifies that the filesystem holding dir has at least minFreeMB
// megabytes available.
func DiskCheck(dir string, minFreeMB uint64, usage func(context.Context, string) (*disk.UsageStat, error)) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "disk"

		stat, err := usage(ctx, dir)
		if err != nil {
			return fail(name, fmt.Sprintf("could not read disk usage for %s: %v", dir, err), "")
		}

		required := mebibytes(minFreeMB)
		free := humanize.IBytes(stat.Free)
		if stat.Free < required {
			return fail(name,
				fmt.Sprintf("%s free on %s, need %s", free, stat.Path, humanize.IBytes(required)),
				"free up disk space or point project_dir at a larger volume")
		}

		return pass(name, fmt.Sprintf("%s free on %s (%.1f%% used)", free, stat.Path, stat.UsedPercent))
	}
}

// mebibytes converts mb to bytes, saturating instead of wrapping.
func mebibytes(mb uint64) uint64 {
	if mb > math.MaxUint64>>20 {
		return math.MaxUint64
	}
	return mb << 20
}
