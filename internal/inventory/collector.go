// Package inventory builds the installed-software inventory of the host by
// running the platform's package-listing command and parsing its output.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/breeze-rmm/envdoctor/internal/executor"
	"github.com/breeze-rmm/envdoctor/internal/logging"
	"github.com/breeze-rmm/envdoctor/pkg/models"
)

var (
	// ErrUnsupportedPlatform is returned for operating systems without a profile.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrNoPackageManager is returned when none of a platform's listing tools is installed.
	ErrNoPackageManager = errors.New("unsupported package manager")
)

// FileExists reports whether a regular file exists at path.
type FileExists func(path string) bool

// Collector gathers installed software for one platform.
type Collector struct {
	runner   executor.Runner
	platform Platform
	exists   FileExists
	logger   *zap.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithPlatform overrides the detected platform.
func WithPlatform(p Platform) Option {
	return func(c *Collector) { c.platform = p }
}

// WithFileExists overrides the probe used to find package-manager binaries.
func WithFileExists(fn FileExists) Option {
	return func(c *Collector) { c.exists = fn }
}

// WithLogger sets the logger used for diagnostic notices.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// NewCollector creates a Collector that runs listing commands through runner
func NewCollector(runner executor.Runner, opts ...Option) *Collector {
	c := &Collector{
		runner:   runner,
		platform: CurrentPlatform(),
		exists:   binaryExists,
		logger:   logging.L("inventory"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the collector's name
func (c *Collector) Name() string {
	return "software"
}

// Platform returns the platform the collector dispatches on.
func (c *Collector) Platform() Platform {
	return c.platform
}

// Collect returns the installed software on the host. It never fails: an
// unsupported platform, a missing package manager or a failed command
// degrades to an empty inventory and a logged notice.
func (c *Collector) Collect(ctx context.Context) []models.SoftwareRecord {
	software, _ := c.Inventory(ctx)
	return software
}

// Inventory is Collect with the reason for an empty result exposed. The
// returned slice is never nil.
func (c *Collector) Inventory(ctx context.Context) ([]models.SoftwareRecord, error) {
	platform := zap.Stringer(logging.KeyPlatform, c.platform)

	profile, ok := ProfileFor(c.platform)
	if !ok {
		c.logger.Warn("software inventory not available on this platform", platform)
		return []models.SoftwareRecord{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, c.platform)
	}

	source, ok := c.selectSource(profile)
	if !ok {
		c.logger.Warn("no supported package manager found", platform)
		return []models.SoftwareRecord{}, ErrNoPackageManager
	}

	c.logger.Debug("collecting software", platform, zap.String(logging.KeySource, source.Name))
	startTime := time.Now()

	output, err := c.runner.Run(ctx, source.Command)
	if err != nil {
		c.logger.Warn("software listing failed, inventory unavailable",
			platform,
			zap.String(logging.KeySource, source.Name),
			zap.Error(err))
		return []models.SoftwareRecord{}, err
	}

	software := Sanitize(profile.Parse(output))

	c.logger.Debug("software collection completed",
		platform,
		zap.String(logging.KeySource, source.Name),
		zap.Int(logging.KeyCount, len(software)),
		zap.Int64(logging.KeyDurationMs, time.Since(startTime).Milliseconds()))

	return software, nil
}

// selectSource returns the first source whose binary is present on disk.
func (c *Collector) selectSource(profile Profile) (Source, bool) {
	for _, source := range profile.Sources {
		if len(source.Binaries) == 0 {
			return source, true
		}
		for _, binary := range source.Binaries {
			if c.exists(binary) {
				return source, true
			}
		}
	}
	return Source{}, false
}

// binaryExists reports whether path is a regular file or, failing that,
// whether its base name resolves on PATH (/usr/local/bin, NixOS profiles).
func binaryExists(path string) bool {
	if regularFileExists(path) {
		return true
	}
	_, err := exec.LookPath(filepath.Base(path))
	return err == nil
}

func regularFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
