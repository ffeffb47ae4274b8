package inventory

import (
	"strings"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// ParseUnix parses one package per line, name then version separated by
// whitespace. Extra columns are ignored and a bare name gets
// models.UnknownVersion.
func ParseUnix(output string) []models.SoftwareRecord {
	var software []models.SoftwareRecord

	eachLine(output, func(line string) {
		parts := strings.Fields(line)
		switch len(parts) {
		case 0:
			return
		case 1:
			software = append(software, models.SoftwareRecord{Name: parts[0], Version: models.UnknownVersion})
		default:
			software = append(software, models.SoftwareRecord{Name: parts[0], Version: parts[1]})
		}
	})

	return software
}

// ParseFreeze parses pip freeze style "name==version" lines. Editable
// installs, direct references and comments are skipped.
func ParseFreeze(output string) []models.SoftwareRecord {
	var packages []models.SoftwareRecord

	eachLine(output, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			return
		}

		name, version, found := strings.Cut(line, "==")
		if !found {
			return
		}
		name = strings.TrimSpace(name)
		version = strings.TrimSpace(version)
		if name == "" || version == "" {
			return
		}

		packages = append(packages, models.SoftwareRecord{Name: name, Version: version})
	})

	return packages
}
