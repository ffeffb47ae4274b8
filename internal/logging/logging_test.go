package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestPreInitLoggerUsesConfiguredCore(t *testing.T) {
	logger := L("inventory")

	var buf bytes.Buffer
	Init("json", "info", &buf)
	t.Cleanup(func() { Init("text", "info", nil) })

	logger.Info("collected", zap.String(KeyPlatform, "linux"), zap.Int(KeyCount, 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "collected", entry["msg"])
	assert.Equal(t, "inventory", entry[KeyComponent])
	assert.Equal(t, "linux", entry[KeyPlatform])
	assert.EqualValues(t, 3, entry[KeyCount])
}

func TestPreInitLoggerRespectsConfiguredLevel(t *testing.T) {
	logger := L("executor")

	var buf bytes.Buffer
	Init("text", "warn", &buf)
	t.Cleanup(func() { Init("text", "info", nil) })

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "WARN")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestOpenFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "envdoctor.log")

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	Init("text", "info", f)
	t.Cleanup(func() { Init("text", "info", nil) })
	L("test").Info("written to file")
	Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"), "log file content: %s", data)
}
