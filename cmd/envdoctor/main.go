package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/breeze-rmm/envdoctor/internal/config"
	"github.com/breeze-rmm/envdoctor/internal/doctor"
	"github.com/breeze-rmm/envdoctor/internal/executor"
	"github.com/breeze-rmm/envdoctor/internal/logging"
	"github.com/breeze-rmm/envdoctor/internal/report"
	"github.com/breeze-rmm/envdoctor/pkg/models"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var (
	cfgFile      string
	logLevel     string
	logFormat    string
	outputFormat string
)

// errChecksFailed signals a completed run with failing checks.
var errChecksFailed = errors.New("readiness checks failed")

var rootCmd = &cobra.Command{
	Use:           "envdoctor",
	Short:         "Environment diagnostics for development hosts",
	Long:          `envdoctor inspects the host, runs readiness checks for a project and lists the installed software.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run readiness checks and print a full report",
	RunE:  runCheck,
}

var softwareCmd = &cobra.Command{
	Use:   "software",
	Short: "List installed software",
	Long:  `List the software installed on this host as "name"="version" lines.`,
	RunE:  runSoftware,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "envdoctor %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		fmt.Fprintf(out, "Built: %s\n", buildDate)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configWriteCmd = &cobra.Command{
	Use:   "write [path]",
	Short: "Write the effective configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := setup(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		var path string
		if len(args) == 1 {
			path = args[0]
		}
		written, err := cfg.SaveTo(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", written)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is envdoctor.yaml in the user config dir or working dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "report format (text, json, yaml)")

	checkCmd.Flags().Bool("strict", false, "treat warnings as failures")
	checkCmd.Flags().String("project-dir", "", "project directory to check")
	checkCmd.Flags().Int("port", 0, "TCP port the project needs")
	checkCmd.Flags().Bool("no-inventory", false, "skip the software inventory")

	configCmd.AddCommand(configWriteCmd)

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(softwareCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	code := exitCode(err)
	if code == 1 {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	logging.Sync()
	os.Exit(code)
}

// exitCode maps a command error to the process exit status: 0 on success,
// 2 when checks failed and 1 for any other error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 2
	default:
		return 1
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	flags := cmd.Flags()
	if flags.Changed("project-dir") {
		cfg.ProjectDir, _ = flags.GetString("project-dir")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if noInventory, _ := flags.GetBool("no-inventory"); noInventory {
		cfg.IncludeInventory = false
	}
	cfg.Validate()

	reporter, err := newReporter(cfg)
	if err != nil {
		return err
	}

	runner := executor.New(cfg.CommandTimeout, logging.L("executor"))
	result := doctor.New(cfg, runner).Run(cmd.Context())

	if err := reporter.Write(result); err != nil {
		return err
	}

	strict, _ := flags.GetBool("strict")
	return checkOutcome(result.Status, strict)
}

func runSoftware(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	cfg.Validate()

	reporter, err := newReporter(cfg)
	if err != nil {
		return err
	}

	runner := executor.New(cfg.CommandTimeout, logging.L("executor"))
	result := doctor.New(cfg, runner).Software(cmd.Context())

	if report.Format(cfg.OutputFormat) == report.FormatText {
		return reporter.WriteSoftware(result.Software)
	}
	return reporter.Write(result)
}

// checkOutcome turns the overall status into the command result.
func checkOutcome(status models.Status, strict bool) error {
	if status == models.StatusFail || (strict && status == models.StatusWarn) {
		return fmt.Errorf("%w: status %s", errChecksFailed, status)
	}
	return nil
}

// setup loads the configuration, applies persistent flag overrides and
// initializes logging. The returned cleanup closes the log file, if any.
func setup(cmd *cobra.Command) (*config.Config, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if flags.Changed("output") {
		cfg.OutputFormat = outputFormat
	}

	cleanup := func() {}
	output := os.Stderr
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
		cleanup = func() {
			logging.Sync()
			_ = f.Close()
		}
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, output)

	logging.L("main").Debug("configuration loaded",
		zap.String("configFile", cfgFile),
		zap.String("projectDir", cfg.ProjectDir),
		zap.String("output", cfg.OutputFormat))

	return cfg, cleanup, nil
}

func newReporter(cfg *config.Config) (*report.Reporter, error) {
	format, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = string(format)
	return report.New(os.Stdout, format, report.ColorEnabled(os.Stdout)), nil
}
