package report

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

const (
	colorGreen  = "42"
	colorYellow = "220"
	colorRed    = "196"
	colorGray   = "245"
	colorWhite  = "255"
)

// Styles holds the text report styles.
type Styles struct {
	Header lipgloss.Style
	Pass   lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns coloured styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorWhite)),
		Pass:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorRed)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle(),
		Pass:   lipgloss.NewStyle(),
		Warn:   lipgloss.NewStyle(),
		Fail:   lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
}

func (s Styles) status(status models.Status) lipgloss.Style {
	switch status {
	case models.StatusPass:
		return s.Pass
	case models.StatusWarn:
		return s.Warn
	case models.StatusFail:
		return s.Fail
	default:
		return s.Dim
	}
}

// symbol returns the marker printed in front of a check result.
func symbol(status models.Status) string {
	switch status {
	case models.StatusPass:
		return "✔"
	case models.StatusWarn:
		return "!"
	case models.StatusFail:
		return "✘"
	default:
		return "-"
	}
}

// ColorEnabled reports whether output to f should be coloured: f must be a
// terminal and NO_COLOR must be unset.
func ColorEnabled(f *os.File) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
