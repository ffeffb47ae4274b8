package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "envdoctor"
	envPrefix  = "ENVDOCTOR"
)

// Config holds all envdoctor configuration
type Config struct {
	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`

	// Report
	OutputFormat     string `mapstructure:"output_format"`
	IncludeInventory bool   `mapstructure:"include_inventory"`

	// Project
	ProjectDir       string   `mapstructure:"project_dir"`
	RequirementsFile string   `mapstructure:"requirements_file"`
	RequiredCommands []string `mapstructure:"required_commands"`
	Python           string   `mapstructure:"python"`

	// Probes
	Port          int           `mapstructure:"port"`
	ProbeURL      string        `mapstructure:"probe_url"`
	ProbeTimeout  time.Duration `mapstructure:"probe_timeout"`
	MinFreeDiskMB uint64        `mapstructure:"min_free_disk_mb"`

	// CommandTimeout bounds each external command; zero waits indefinitely.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// keys lists every config key so environment overrides work without a file.
var keys = []string{
	"log_level", "log_format", "log_file",
	"output_format", "include_inventory",
	"project_dir", "requirements_file", "required_commands", "python",
	"port", "probe_url", "probe_timeout", "min_free_disk_mb",
	"command_timeout",
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "warn",
		LogFormat:        "text",
		OutputFormat:     "text",
		IncludeInventory: true,
		ProjectDir:       ".",
		RequirementsFile: "requirements.txt",
		RequiredCommands: []string{"git", defaultPython()},
		Python:           defaultPython(),
		Port:             8000,
		ProbeURL:         "https://pypi.org/simple/",
		ProbeTimeout:     5 * time.Second,
		MinFreeDiskMB:    1024,
	}
}

// Load reads configuration from cfgFile, or from envdoctor.yaml in the
// config directory or working directory when cfgFile is empty, then applies
// ENVDOCTOR_* environment overrides.
func Load(cfgFile string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(getConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding env for %s: %w", key, err)
		}
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return cfg, nil
}

// SaveTo writes the configuration as YAML to path, or to the default
// config directory when path is empty. It returns the path written.
func (c *Config) SaveTo(path string) (string, error) {
	if path == "" {
		path = filepath.Join(getConfigDir(), configName+".yaml")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create config dir: %w", err)
		}
	}

	v := viper.New()
	v.Set("log_level", c.LogLevel)
	v.Set("log_format", c.LogFormat)
	v.Set("log_file", c.LogFile)
	v.Set("output_format", c.OutputFormat)
	v.Set("include_inventory", c.IncludeInventory)
	v.Set("project_dir", c.ProjectDir)
	v.Set("requirements_file", c.RequirementsFile)
	v.Set("required_commands", c.RequiredCommands)
	v.Set("python", c.Python)
	v.Set("port", c.Port)
	v.Set("probe_url", c.ProbeURL)
	v.Set("probe_timeout", c.ProbeTimeout.String())
	v.Set("min_free_disk_mb", c.MinFreeDiskMB)
	v.Set("command_timeout", c.CommandTimeout.String())

	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// RequirementsPath resolves the requirements file against the project dir.
func (c *Config) RequirementsPath() string {
	if c.RequirementsFile == "" || filepath.IsAbs(c.RequirementsFile) {
		return c.RequirementsFile
	}
	return filepath.Join(c.ProjectDir, c.RequirementsFile)
}

// getConfigDir returns the per-user config directory
func getConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, configName)
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), configName)
	default:
		return filepath.Join(os.Getenv("HOME"), ".config", configName)
	}
}

func defaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}
