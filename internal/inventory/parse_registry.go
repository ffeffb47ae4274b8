package inventory

import (
	"strings"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

const (
	displayNameLabel    = "DisplayName"
	displayVersionLabel = "DisplayVersion"
)

// ParseWindows parses Format-List output of registry uninstall entries. A
// DisplayName line starts a new entry and a DisplayVersion line completes
// it; the record is emitted only when the version arrives for a named entry.
// Blank lines separate entries, so nothing carries over from one to the next.
func ParseWindows(output string) []models.SoftwareRecord {
	var software []models.SoftwareRecord
	var name, version string

	eachLine(output, func(line string) {
		switch {
		case strings.TrimSpace(line) == "":
			name, version = "", ""
		case strings.Contains(line, displayNameLabel):
			name, version = propertyValue(line), ""
		case strings.Contains(line, displayVersionLabel):
			version = propertyValue(line)
			if name != "" && version != "" {
				software = append(software, models.SoftwareRecord{Name: name, Version: version})
			}
			name, version = "", ""
		}
	})

	return software
}

// propertyValue returns the trimmed text after the first ':' of line.
func propertyValue(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}
