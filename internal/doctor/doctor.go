// Package doctor runs the readiness checks and the software inventory and
// assembles them into a single report.
package doctor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/breeze-rmm/envdoctor/internal/checks"
	"github.com/breeze-rmm/envdoctor/internal/config"
	"github.com/breeze-rmm/envdoctor/internal/executor"
	"github.com/breeze-rmm/envdoctor/internal/inventory"
	"github.com/breeze-rmm/envdoctor/internal/logging"
	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// InventoryProvider lists the software installed on the host.
type InventoryProvider interface {
	Inventory(ctx context.Context) ([]models.SoftwareRecord, error)
}

// RuntimeProvider describes the Python runtime used by the project.
type RuntimeProvider interface {
	Info(ctx context.Context) (models.RuntimeInfo, error)
}

// HostInfoFunc returns operating system details of the host.
type HostInfoFunc func(ctx context.Context) (models.HostInfo, error)

// Doctor produces environment reports.
type Doctor struct {
	cfg       *config.Config
	inventory InventoryProvider
	runtime   RuntimeProvider
	probes    checks.Probes
	hostInfo  HostInfoFunc
	logger    *zap.Logger
	now       func() time.Time
}

// Option configures a Doctor.
type Option func(*Doctor)

// WithInventory replaces the software inventory source.
func WithInventory(p InventoryProvider) Option {
	return func(d *Doctor) { d.inventory = p }
}

// WithRuntime replaces the Python runtime inspector.
func WithRuntime(p RuntimeProvider) Option {
	return func(d *Doctor) { d.runtime = p }
}

// WithProbes replaces the host probes used by the checks.
func WithProbes(p checks.Probes) Option {
	return func(d *Doctor) { d.probes = p }
}

// WithHostInfo replaces the host information source.
func WithHostInfo(fn HostInfoFunc) Option {
	return func(d *Doctor) { d.hostInfo = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Doctor) { d.logger = logger }
}

// WithClock sets the time source for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Doctor) { d.now = now }
}

// New creates a Doctor that runs external commands through runner.
func New(cfg *config.Config, runner executor.Runner, opts ...Option) *Doctor {
	d := &Doctor{
		cfg:      cfg,
		probes:   checks.DefaultProbes(),
		hostInfo: checks.HostInfo,
		logger:   logging.L("doctor"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.inventory == nil {
		d.inventory = inventory.NewCollector(runner)
	}
	if d.runtime == nil {
		d.runtime = checks.NewPython(runner, cfg.Python)
	}
	return d
}

// Run executes every readiness check and, when enabled, the software
// inventory. The report status is the worst check status.
func (d *Doctor) Run(ctx context.Context) models.Report {
	startTime := time.Now()
	report := d.newReport(ctx)

	runtime, runtimeErr := d.runtime.Info(ctx)
	if runtimeErr != nil {
		d.logger.Warn("python runtime unavailable", zap.Error(runtimeErr))
	}
	report.Runtime = &runtime

	installed := func(context.Context) ([]models.SoftwareRecord, error) {
		if runtimeErr != nil {
			return nil, runtimeErr
		}
		return runtime.Packages, nil
	}

	report.Checks = checks.RunAll(ctx, d.checkFuncs(installed))
	for _, result := range report.Checks {
		d.logger.Debug("check completed",
			zap.String("check", result.Name),
			zap.String("status", string(result.Status)),
			zap.String("message", result.Message))
	}
	report.Status = checks.Overall(report.Checks)

	if d.cfg.IncludeInventory {
		d.collectSoftware(ctx, &report)
	}

	d.logger.Info("diagnosis completed",
		zap.String("status", string(report.Status)),
		zap.Int("failed", checks.Count(report.Checks, models.StatusFail)),
		zap.Int("warnings", checks.Count(report.Checks, models.StatusWarn)),
		zap.Int(logging.KeyCount, len(report.Software)),
		zap.Int64(logging.KeyDurationMs, time.Since(startTime).Milliseconds()))

	return report
}

// Software returns a report holding only the host details and the
// software inventory.
func (d *Doctor) Software(ctx context.Context) models.Report {
	report := d.newReport(ctx)
	d.collectSoftware(ctx, &report)
	return report
}

func (d *Doctor) newReport(ctx context.Context) models.Report {
	report := models.Report{
		GeneratedAt: d.now().UTC(),
		Status:      models.StatusPass,
		Software:    []models.SoftwareRecord{},
	}

	host, err := d.hostInfo(ctx)
	if err != nil {
		d.logger.Warn("host info unavailable", zap.Error(err))
		report.Notices = append(report.Notices, fmt.Sprintf("host info unavailable: %v", err))
	} else {
		report.Host = &host
	}
	return report
}

func (d *Doctor) collectSoftware(ctx context.Context, report *models.Report) {
	software, err := d.inventory.Inventory(ctx)
	if err != nil {
		report.Notices = append(report.Notices, fmt.Sprintf("software inventory unavailable: %v", err))
	}
	if software != nil {
		report.Software = software
	}
}

func (d *Doctor) checkFuncs(installed func(context.Context) ([]models.SoftwareRecord, error)) []checks.Func {
	cfg := d.cfg
	return []checks.Func{
		checks.PathCheck(cfg.RequiredCommands, d.probes.LookPath),
		checks.VenvCheck(d.probes.Getenv),
		checks.DependencyCheck(cfg.RequirementsPath(), installed),
		checks.PortCheck(cfg.Port),
		checks.DiskCheck(cfg.ProjectDir, cfg.MinFreeDiskMB, d.probes.DiskUsage),
		checks.WriteCheck(cfg.ProjectDir),
		checks.NetworkCheck(cfg.ProbeURL, cfg.ProbeTimeout, d.probes.HTTPClient),
	}
}
