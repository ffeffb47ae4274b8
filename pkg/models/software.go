package models

import (
	"fmt"
	"strings"
)

// UnknownVersion is reported when a package source lists a name without a version.
const UnknownVersion = "Unknown"

// SoftwareRecord represents one installed package or application
type SoftwareRecord struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// String renders the record as "name"="version".
func (r SoftwareRecord) String() string {
	return fmt.Sprintf(`"%s"="%s"`, r.Name, r.Version)
}

// Complete reports whether both fields hold non-blank text.
func (r SoftwareRecord) Complete() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Version) != ""
}
