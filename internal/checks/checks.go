// Package checks implements the readiness checks reported alongside the
// software inventory. Each check wraps a single probe of the host and never
// returns an error: problems are expressed as a failing or warning result.
package checks

import (
	"context"
	"net/http"
	"os"
	"os/exec"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sync/errgroup"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// Func runs one readiness check.
type Func func(ctx context.Context) models.CheckResult

// Probes are the host capabilities checks depend on. Tests replace them
// with fakes.
type Probes struct {
	LookPath   func(file string) (string, error)
	Getenv     func(key string) string
	DiskUsage  func(ctx context.Context, path string) (*disk.UsageStat, error)
	HTTPClient *http.Client
}

// DefaultProbes returns probes backed by the real host.
func DefaultProbes() Probes {
	return Probes{
		LookPath:  exec.LookPath,
		Getenv:    os.Getenv,
		DiskUsage: disk.UsageWithContext,
	}
}

// RunAll runs checks concurrently and returns their results in input order.
func RunAll(ctx context.Context, funcs []Func) []models.CheckResult {
	results := make([]models.CheckResult, len(funcs))

	g, gctx := errgroup.WithContext(ctx)
	for i, check := range funcs {
		g.Go(func() error {
			results[i] = check(gctx)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Overall returns the worst status across results. Skipped checks do not
// affect the outcome; no results is a pass.
func Overall(results []models.CheckResult) models.Status {
	worst := models.StatusPass
	for _, r := range results {
		if worse(r.Status, worst) {
			worst = r.Status
		}
	}
	return worst
}

// Count returns how many results have the given status.
func Count(results []models.CheckResult, status models.Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// worse returns true if a is worse than b.
func worse(a, b models.Status) bool {
	return statusRank(a) > statusRank(b)
}

func statusRank(s models.Status) int {
	switch s {
	case models.StatusWarn:
		return 1
	case models.StatusFail:
		return 2
	default:
		return 0
	}
}

func pass(name, msg string) models.CheckResult {
	return models.CheckResult{Name: name, Status: models.StatusPass, Message: msg}
}

func warn(name, msg, fix string) models.CheckResult {
	return models.CheckResult{Name: name, Status: models.StatusWarn, Message: msg, Fix: fix}
}

func fail(name, msg, fix string) models.CheckResult {
	return models.CheckResult{Name: name, Status: models.StatusFail, Message: msg, Fix: fix}
}

func skip(name, msg string) models.CheckResult {
	return models.CheckResult{Name: name, Status: models.StatusSkip, Message: msg}
}
