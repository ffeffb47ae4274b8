package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/breeze-rmm/envdoctor/internal/logging"
)

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

const (
	minProbeTimeout   = 500 * time.Millisecond
	maxProbeTimeout   = 2 * time.Minute
	maxCommandTimeout = time.Hour

	// maxFreeDiskMB is 1 PiB expressed in MiB
	maxFreeDiskMB = 1 << 30
)

// Validate checks the config for invalid values and returns all errors found.
// Values that would break a probe are reset or clamped to safe defaults;
// errors are logged as warnings and do not prevent the run.
func (c *Config) Validate() []error {
	var errs []error
	defaults := DefaultConfig()

	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Errorf("log_level %q is not valid (use debug, info, warn, error)", c.LogLevel))
	}

	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format %q is not valid (use text or json)", c.LogFormat))
	}

	if !validFormats[strings.ToLower(c.OutputFormat)] {
		errs = append(errs, fmt.Errorf("output_format %q is not valid (use text, json or yaml), using text", c.OutputFormat))
		c.OutputFormat = "text"
	}

	if strings.TrimSpace(c.ProjectDir) == "" {
		errs = append(errs, fmt.Errorf("project_dir is empty, using current directory"))
		c.ProjectDir = "."
	}

	if strings.TrimSpace(c.Python) == "" {
		errs = append(errs, fmt.Errorf("python is empty, using %s", defaults.Python))
		c.Python = defaults.Python
	}

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range 1-65535, using %d", c.Port, defaults.Port))
		c.Port = defaults.Port
	}

	if c.ProbeURL != "" {
		u, err := url.Parse(c.ProbeURL)
		if err != nil {
			errs = append(errs, fmt.Errorf("probe_url %q is not a valid URL: %w", c.ProbeURL, err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Errorf("probe_url scheme must be http or https, got %q", u.Scheme))
		} else if u.Host == "" {
			errs = append(errs, fmt.Errorf("probe_url %q has no host", c.ProbeURL))
		}
	}

	if c.ProbeTimeout < minProbeTimeout {
		errs = append(errs, fmt.Errorf("probe_timeout %s is below minimum %s, clamping", c.ProbeTimeout, minProbeTimeout))
		c.ProbeTimeout = minProbeTimeout
	} else if c.ProbeTimeout > maxProbeTimeout {
		errs = append(errs, fmt.Errorf("probe_timeout %s exceeds maximum %s, clamping", c.ProbeTimeout, maxProbeTimeout))
		c.ProbeTimeout = maxProbeTimeout
	}

	if c.CommandTimeout < 0 {
		errs = append(errs, fmt.Errorf("command_timeout %s is negative, disabling", c.CommandTimeout))
		c.CommandTimeout = 0
	} else if c.CommandTimeout > maxCommandTimeout {
		errs = append(errs, fmt.Errorf("command_timeout %s exceeds maximum %s, clamping", c.CommandTimeout, maxCommandTimeout))
		c.CommandTimeout = maxCommandTimeout
	}

	if c.MinFreeDiskMB > maxFreeDiskMB {
		errs = append(errs, fmt.Errorf("min_free_disk_mb %d exceeds maximum %d, clamping", c.MinFreeDiskMB, uint64(maxFreeDiskMB)))
		c.MinFreeDiskMB = maxFreeDiskMB
	}

	for _, name := range c.RequiredCommands {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("required_commands contains an empty entry"))
			break
		}
	}

	log := logging.L("config")
	for _, err := range errs {
		log.Warn("config validation", zap.Error(err))
	}

	return errs
}
