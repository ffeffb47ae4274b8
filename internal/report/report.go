// Package report renders diagnosis reports as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/breeze-rmm/envdoctor/internal/checks"
	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const dividerWidth = 60

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use text, json or yaml)", s)
	}
}

// Reporter writes reports to an output stream.
type Reporter struct {
	w      io.Writer
	format Format
	styles Styles
}

// New creates a Reporter. Colour applies to the text format only.
func New(w io.Writer, format Format, color bool) *Reporter {
	styles := NoColorStyles()
	if color {
		styles = DefaultStyles()
	}
	return &Reporter{w: w, format: format, styles: styles}
}

// Write renders the report in the configured format.
func (r *Reporter) Write(report models.Report) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	default:
		return r.writeText(report)
	}
}

// WriteSoftware prints one "name"="version" line per record.
func (r *Reporter) WriteSoftware(software []models.SoftwareRecord) error {
	var b strings.Builder
	for _, rec := range software {
		b.WriteString(rec.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Reporter) writeText(report models.Report) error {
	var b strings.Builder
	s := r.styles
	heavy := strings.Repeat("=", dividerWidth)
	light := s.Dim.Render(strings.Repeat("-", dividerWidth))

	fmt.Fprintln(&b, heavy)
	fmt.Fprintln(&b, s.Header.Render("Environment Doctor Report"))
	fmt.Fprintln(&b, heavy)
	fmt.Fprintf(&b, "Generated: %s\n", report.GeneratedAt.Format(time.RFC3339))

	if h := report.Host; h != nil {
		fmt.Fprintln(&b, light)
		fmt.Fprintln(&b, s.Header.Render("Host"))
		writeField(&b, "System", h.System)
		writeField(&b, "Hostname", h.Hostname)
		writeField(&b, "Platform", strings.TrimSpace(h.Platform+" "+h.PlatformVersion))
		writeField(&b, "Kernel", h.KernelVersion)
		writeField(&b, "Arch", h.Architecture)
	}

	if rt := report.Runtime; rt != nil {
		fmt.Fprintln(&b, light)
		fmt.Fprintln(&b, s.Header.Render("Python"))
		writeField(&b, "Executable", rt.Executable)
		writeField(&b, "Version", rt.Version)
		if rt.Error != "" {
			writeField(&b, "Error", s.Fail.Render(rt.Error))
		} else {
			writeField(&b, "Packages", fmt.Sprintf("%d", len(rt.Packages)))
		}
	}

	if len(report.Checks) > 0 {
		fmt.Fprintln(&b, light)
		fmt.Fprintln(&b, s.Header.Render("Checks"))
		for _, c := range report.Checks {
			style := s.status(c.Status)
			fmt.Fprintf(&b, "  %s %-13s %s\n", style.Render(symbol(c.Status)), c.Name, c.Message)
			if c.Fix != "" && c.Status != models.StatusPass {
				fmt.Fprintf(&b, "    %s %s\n", s.Dim.Render("fix:"), c.Fix)
			}
		}
	}

	fmt.Fprintln(&b, light)
	fmt.Fprintln(&b, s.Header.Render(fmt.Sprintf("Installed software (%d)", len(report.Software))))
	for _, rec := range report.Software {
		fmt.Fprintln(&b, rec.String())
	}

	if len(report.Notices) > 0 {
		fmt.Fprintln(&b, light)
		fmt.Fprintln(&b, s.Header.Render("Notices"))
		for _, n := range report.Notices {
			fmt.Fprintf(&b, "  %s %s\n", s.Warn.Render("!"), n)
		}
	}

	if len(report.Checks) > 0 {
		fmt.Fprintln(&b, heavy)
		summary := fmt.Sprintf("%d passed, %d warnings, %d failed, %d skipped",
			checks.Count(report.Checks, models.StatusPass),
			checks.Count(report.Checks, models.StatusWarn),
			checks.Count(report.Checks, models.StatusFail),
			checks.Count(report.Checks, models.StatusSkip))
		status := s.status(report.Status).Render(strings.ToUpper(string(report.Status)))
		fmt.Fprintf(&b, "Result: %s (%s)\n", status, summary)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %-11s %s\n", label+":", value)
}
