package inventory

import (
	"bufio"
	"strings"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// maxLineSize bounds a single line of listing output
const maxLineSize = 1024 * 1024

// eachLine calls fn for every line of output with any trailing CR removed.
func eachLine(output string, fn func(line string)) {
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		fn(strings.TrimSuffix(scanner.Text(), "\r"))
	}
}

// Sanitize drops records missing a name or a version.
func Sanitize(records []models.SoftwareRecord) []models.SoftwareRecord {
	result := make([]models.SoftwareRecord, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			result = append(result, r)
		}
	}
	return result
}
