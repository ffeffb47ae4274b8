package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

func sampleReport() models.Report {
	return models.Report{
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:      models.StatusFail,
		Host: &models.HostInfo{
			System:          "Linux",
			Hostname:        "build-01",
			Platform:        "ubuntu",
			PlatformVersion: "22.04",
			Architecture:    "x86_64",
		},
		Checks: []models.CheckResult{
			{Name: "path", Status: models.StatusPass, Message: "all 2 required commands found on PATH"},
			{Name: "venv", Status: models.StatusWarn, Message: "no virtual environment is active", Fix: "python3 -m venv .venv"},
			{Name: "port", Status: models.StatusFail, Message: "port 8000 is not available", Fix: "configure another port"},
			{Name: "network", Status: models.StatusSkip, Message: "no probe URL configured"},
		},
		Runtime: &models.RuntimeInfo{
			Executable: "python3",
			Version:    "3.12.1",
			Packages:   []models.SoftwareRecord{{Name: "requests", Version: "2.31.0"}},
		},
		Software: []models.SoftwareRecord{
			{Name: "Foo", Version: "1.2"},
			{Name: "bar", Version: "Unknown"},
		},
		Notices: []string{"something to know"},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("html")
	assert.Error(t, err)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, false).Write(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Environment Doctor Report")
	assert.Contains(t, out, "Generated: 2024-03-01T12:00:00Z")
	assert.Contains(t, out, "Hostname:   build-01")
	assert.Contains(t, out, "Platform:   ubuntu 22.04")
	assert.Contains(t, out, "Version:    3.12.1")
	assert.Contains(t, out, "✔ path")
	assert.Contains(t, out, "! venv")
	assert.Contains(t, out, "✘ port")
	assert.Contains(t, out, "- network")
	assert.Contains(t, out, "fix: configure another port")
	assert.Contains(t, out, "Installed software (2)")
	assert.Contains(t, out, "\"Foo\"=\"1.2\"\n")
	assert.Contains(t, out, "\"bar\"=\"Unknown\"\n")
	assert.Contains(t, out, "something to know")
	assert.Contains(t, out, "Result: FAIL (1 passed, 1 warnings, 1 failed, 1 skipped)")

	// Passing checks never print a fix hint
	assert.Equal(t, 2, strings.Count(out, "fix:"))
}

func TestWriteTextSoftwareOnly(t *testing.T) {
	report := models.Report{
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:      models.StatusPass,
		Software:    []models.SoftwareRecord{},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, false).Write(report))
	out := buf.String()

	assert.Contains(t, out, "Installed software (0)")
	assert.NotContains(t, out, "Checks")
	assert.NotContains(t, out, "Result:")
	assert.NotContains(t, out, "Python")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON, true).Write(sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "fail", decoded["status"])

	software := decoded["software"].([]any)
	require.Len(t, software, 2)
	assert.Equal(t, map[string]any{"name": "Foo", "version": "1.2"}, software[0])

	checks := decoded["checks"].([]any)
	assert.Len(t, checks, 4)
	assert.NotContains(t, buf.String(), "\x1b[", "structured formats are never coloured")
}

func TestWriteJSONEmptySoftwareIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON, false).Write(models.Report{Status: models.StatusPass, Software: []models.SoftwareRecord{}}))
	assert.Contains(t, buf.String(), `"software": []`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatYAML, false).Write(sampleReport()))

	var decoded struct {
		Status   string `yaml:"status"`
		Software []struct {
			Name    string `yaml:"name"`
			Version string `yaml:"version"`
		} `yaml:"software"`
		Host struct {
			Hostname string `yaml:"hostname"`
		} `yaml:"host"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "fail", decoded.Status)
	assert.Equal(t, "build-01", decoded.Host.Hostname)
	require.Len(t, decoded.Software, 2)
	assert.Equal(t, "bar", decoded.Software[1].Name)
	assert.Equal(t, "Unknown", decoded.Software[1].Version)
}

func TestWriteSoftware(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, false).WriteSoftware([]models.SoftwareRecord{
		{Name: "Foo", Version: "1.2"},
		{Name: "Microsoft_Word", Version: "16.0"},
	}))
	assert.Equal(t, "\"Foo\"=\"1.2\"\n\"Microsoft_Word\"=\"16.0\"\n", buf.String())
}

func TestColorEnabledHonoursNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(nil))

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatText, false).WriteSoftware(nil))
	assert.Empty(t, buf.String())
}
