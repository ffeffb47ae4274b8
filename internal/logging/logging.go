package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Key constants for structured log fields.
const (
	KeyComponent  = "component"
	KeyCommand    = "command"
	KeyPlatform   = "platform"
	KeySource     = "source"
	KeyDurationMs = "durationMs"
	KeyCount      = "count"
)

// switchableCore lets package-level loggers created before Init()
// pick up the configured core once Init runs.
type switchableCore struct {
	state  *switchableState
	fields []zapcore.Field
}

type switchableState struct {
	current atomic.Value // stores zapcore.Core
}

func newSwitchableCore(core zapcore.Core) *switchableCore {
	state := &switchableState{}
	state.current.Store(core)
	return &switchableCore{state: state}
}

func (c *switchableCore) set(core zapcore.Core) {
	c.state.current.Store(core)
}

func (c *switchableCore) base() zapcore.Core {
	return c.state.current.Load().(zapcore.Core)
}

func (c *switchableCore) materialize() zapcore.Core {
	core := c.base()
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core
}

func (c *switchableCore) Enabled(level zapcore.Level) bool {
	return c.base().Enabled(level)
}

func (c *switchableCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &switchableCore{state: c.state, fields: merged}
}

func (c *switchableCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *switchableCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	return c.materialize().Write(entry, fields)
}

func (c *switchableCore) Sync() error {
	return c.base().Sync()
}

var (
	rootCore      = newSwitchableCore(newCore("text", zapcore.InfoLevel, os.Stderr))
	defaultLogger = zap.New(rootCore)
)

func init() {
	zap.ReplaceGlobals(defaultLogger)
}

// Init configures the global logger. Call once after config is loaded.
// format: "json" or "text" (default "text")
// level: "debug", "info", "warn", "error" (default "info")
// output: writer to log to (nil = os.Stderr, stdout carries the report)
func Init(format, level string, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}
	rootCore.set(newCore(format, ParseLevel(level), output))
}

// OpenFile opens path for appending log lines, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// L returns a logger tagged with the given component name.
func L(component string) *zap.Logger {
	return defaultLogger.With(zap.String(KeyComponent, component))
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = defaultLogger.Sync()
}

// ParseLevel maps a config string to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func newCore(format string, level zapcore.Level, output io.Writer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(format, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(output)), level)
}
