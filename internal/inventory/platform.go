package inventory

import (
	"runtime"
	"strings"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

// Platform identifies the operating system family an inventory is taken on.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformWindows
	PlatformLinux
	PlatformDarwin
)

func (p Platform) String() string {
	switch p {
	case PlatformWindows:
		return "Windows"
	case PlatformLinux:
		return "Linux"
	case PlatformDarwin:
		return "Darwin"
	default:
		return "Other"
	}
}

// ParsePlatform maps an OS family identifier ("Windows", "Linux", "Darwin",
// or the equivalent runtime.GOOS value) to a Platform.
func ParsePlatform(family string) Platform {
	switch strings.ToLower(strings.TrimSpace(family)) {
	case "windows":
		return PlatformWindows
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformDarwin
	default:
		return PlatformOther
	}
}

// CurrentPlatform returns the platform this binary is running on.
func CurrentPlatform() Platform {
	return ParsePlatform(runtime.GOOS)
}

// Parser converts raw listing-command output into software records.
type Parser func(output string) []models.SoftwareRecord

// Source is one package-listing command. Binaries lists the on-disk paths
// that indicate the tool is installed; an empty list means always available.
type Source struct {
	Name     string
	Binaries []string
	Command  string
}

// Profile is the inventory strategy for a platform: sources in priority
// order and the parser applied to whichever one runs.
type Profile struct {
	Sources []Source
	Parse   Parser
}

const windowsUninstallQuery = `Get-ItemProperty -Path ` +
	`'HKLM:\Software\Microsoft\Windows\CurrentVersion\Uninstall\*', ` +
	`'HKLM:\Software\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall\*', ` +
	`'HKCU:\Software\Microsoft\Windows\CurrentVersion\Uninstall\*' ` +
	`-ErrorAction SilentlyContinue | ` +
	`Select-Object DisplayName, DisplayVersion | ` +
	`Format-List | Out-String -Width 4096`

// darwinApplicationsAwk reshapes system_profiler's text output into one
// "name version" line per application. Entries sit at a four-space indent,
// their fields at six. Spaces in names become underscores so the whitespace
// parser keeps multi-word names whole.
const darwinApplicationsAwk = `awk '` +
	`/^    [^ ].*:$/ { if (name != "") print name, ver; name = substr($0, 5, length($0) - 5); gsub(/ /, "_", name); ver = "" } ` +
	`/^      Version:/ { ver = $2 } ` +
	`END { if (name != "") print name, ver }'`

const darwinApplicationsQuery = `system_profiler SPApplicationsDataType | ` + darwinApplicationsAwk

var profiles = map[Platform]Profile{
	PlatformWindows: {
		Sources: []Source{
			{Name: "registry", Command: windowsUninstallQuery},
		},
		Parse: ParseWindows,
	},
	PlatformLinux: {
		Sources: []Source{
			{
				Name:     "dpkg",
				Binaries: []string{"/usr/bin/dpkg-query", "/bin/dpkg-query"},
				Command:  `dpkg-query -W -f='${Package} ${Version}\n'`,
			},
			{
				Name:     "rpm",
				Binaries: []string{"/usr/bin/rpm", "/bin/rpm"},
				Command:  `rpm -qa --queryformat '%{NAME} %{VERSION}-%{RELEASE}\n'`,
			},
			{
				Name:     "pacman",
				Binaries: []string{"/usr/bin/pacman"},
				Command:  `pacman -Q`,
			},
		},
		Parse: ParseUnix,
	},
	PlatformDarwin: {
		Sources: []Source{
			{Name: "system_profiler", Command: darwinApplicationsQuery},
		},
		Parse: ParseUnix,
	},
}

// ProfileFor returns the inventory profile for p, or false when the platform
// is not supported.
func ProfileFor(p Platform) (Profile, bool) {
	profile, ok := profiles[p]
	return profile, ok
}
