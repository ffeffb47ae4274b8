package checks

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

var (
	requirementName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*`)
	nameSeparators  = regexp.MustCompile(`[-_.]+`)
)

// NormalizeName canonicalizes a Python distribution name so "Foo_Bar",
// "foo.bar" and "foo-bar" compare equal.
func NormalizeName(name string) string {
	return nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// ParseRequirements extracts the distribution names listed in a
// requirements file. Options, includes, editable installs and bare URLs are
// skipped; version specifiers, extras and markers are ignored.
func ParseRequirements(r io.Reader) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if idx := strings.Index(line, " #"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if strings.Contains(line, "://") && !strings.Contains(line, " @ ") {
			continue
		}

		name := requirementName.FindString(line)
		if name == "" {
			continue
		}
		key := NormalizeName(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// DependencyCheck verifies that every requirement listed in path is
// installed. installed supplies the current package list.
func DependencyCheck(path string, installed func(context.Context) ([]models.SoftwareRecord, error)) Func {
	return func(ctx context.Context) models.CheckResult {
		const name = "dependencies"
		if path == "" {
			return skip(name, "no requirements file configured")
		}

		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return skip(name, fmt.Sprintf("%s not found", path))
			}
			return fail(name, fmt.Sprintf("cannot read %s: %v", path, err), "")
		}
		defer f.Close()

		required, err := ParseRequirements(f)
		if err != nil {
			return fail(name, fmt.Sprintf("cannot parse %s: %v", path, err), "")
		}
		if len(required) == 0 {
			return pass(name, fmt.Sprintf("%s lists no packages", path))
		}

		packages, err := installed(ctx)
		if err != nil {
			return fail(name,
				fmt.Sprintf("cannot list installed packages: %v", err),
				"make sure python and pip are installed and on PATH")
		}

		have := make(map[string]bool, len(packages))
		for _, pkg := range packages {
			have[NormalizeName(pkg.Name)] = true
		}

		var missing []string
		for _, req := range required {
			if !have[NormalizeName(req)] {
				missing = append(missing, req)
			}
		}

		if len(missing) > 0 {
			return fail(name,
				fmt.Sprintf("%d of %d requirements missing: %s", len(missing), len(required), strings.Join(missing, ", ")),
				fmt.Sprintf("pip install -r %s", path))
		}
		return pass(name, fmt.Sprintf("all %d requirements installed", len(required)))
	}
}
