package models

import "time"

// Status is the outcome of a readiness check
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// CheckResult represents the outcome of one readiness check
type CheckResult struct {
	Name    string `json:"name" yaml:"name"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
	Fix     string `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// HostInfo represents the operating system details of the inspected host
type HostInfo struct {
	System          string `json:"system" yaml:"system"`
	Hostname        string `json:"hostname" yaml:"hostname"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platformVersion" yaml:"platformVersion"`
	KernelVersion   string `json:"kernelVersion" yaml:"kernelVersion"`
	Architecture    string `json:"architecture" yaml:"architecture"`
	Uptime          uint64 `json:"uptime" yaml:"uptime"` // seconds
}

// RuntimeInfo represents the Python runtime found on the host
type RuntimeInfo struct {
	Executable string           `json:"executable" yaml:"executable"`
	Version    string           `json:"version,omitempty" yaml:"version,omitempty"`
	Packages   []SoftwareRecord `json:"packages" yaml:"packages"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report is the full result of one envdoctor run
type Report struct {
	GeneratedAt time.Time        `json:"generatedAt" yaml:"generatedAt"`
	Status      Status           `json:"status" yaml:"status"`
	Host        *HostInfo        `json:"host,omitempty" yaml:"host,omitempty"`
	Checks      []CheckResult    `json:"checks,omitempty" yaml:"checks,omitempty"`
	Runtime     *RuntimeInfo     `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Software    []SoftwareRecord `json:"software" yaml:"software"`
	Notices     []string         `json:"notices,omitempty" yaml:"notices,omitempty"`
}
