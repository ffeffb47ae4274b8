package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/breeze-rmm/envdoctor/pkg/models"
)

func rec(name, version string) models.SoftwareRecord {
	return models.SoftwareRecord{Name: name, Version: version}
}

func TestParseWindows(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []models.SoftwareRecord
	}{
		{
			name:   "single pair",
			output: "DisplayName: Foo\nDisplayVersion: 1.2\n",
			want:   []models.SoftwareRecord{rec("Foo", "1.2")},
		},
		{
			name: "format-list padding and blank separators",
			output: "\r\n\r\nDisplayName    : Mozilla Firefox (x64 en-US)\r\n" +
				"DisplayVersion : 128.0.3\r\n\r\n" +
				"DisplayName    : 7-Zip 23.01 (x64)\r\n" +
				"DisplayVersion : 23.01\r\n\r\n",
			want: []models.SoftwareRecord{
				rec("Mozilla Firefox (x64 en-US)", "128.0.3"),
				rec("7-Zip 23.01 (x64)", "23.01"),
			},
		},
		{
			name: "unnamed entry does not lend its version to the next",
			output: "DisplayName    : \r\nDisplayVersion : 10.0.1\r\n\r\n" +
				"DisplayName    : Foo\r\nDisplayVersion : 2.0\r\n\r\n" +
				"DisplayName    : Bar\r\nDisplayVersion : 3.0\r\n",
			want: []models.SoftwareRecord{rec("Foo", "2.0"), rec("Bar", "3.0")},
		},
		{
			name:   "version without a preceding name is dropped",
			output: "DisplayVersion : 2.0\nDisplayName    : Bar\n",
			want:   nil,
		},
		{
			name:   "name-only entry ends at the blank separator",
			output: "DisplayName : Orphan\n\nDisplayVersion : 9\nDisplayName : Foo\nDisplayVersion : 1\n",
			want:   []models.SoftwareRecord{rec("Foo", "1")},
		},
		{
			name:   "value containing colons keeps everything after the first",
			output: "DisplayName : Tool: Pro Edition\nDisplayVersion : 10:1.0\n",
			want:   []models.SoftwareRecord{rec("Tool: Pro Edition", "10:1.0")},
		},
		{
			name:   "unrelated lines ignored",
			output: "Publisher : Acme\nDisplayName : Foo\nInstallDate : 20240101\nDisplayVersion : 3\n",
			want:   []models.SoftwareRecord{rec("Foo", "3")},
		},
		{
			name:   "trailing name without version discarded",
			output: "DisplayName : Foo\nDisplayVersion : 1\nDisplayName : Orphan\n",
			want:   []models.SoftwareRecord{rec("Foo", "1")},
		},
		{
			name:   "entry with empty version is never emitted",
			output: "DisplayName : NoVersion\nDisplayVersion :\nDisplayName : Foo\nDisplayVersion : 1\n",
			want:   []models.SoftwareRecord{rec("Foo", "1")},
		},
		{
			name:   "label without delimiter",
			output: "DisplayName Foo\nDisplayVersion 1\n",
			want:   nil,
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWindows(tt.output))
		})
	}
}

func TestParseUnix(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []models.SoftwareRecord
	}{
		{
			name:   "name and bare name",
			output: "bash 5.1-2\nvim\n",
			want:   []models.SoftwareRecord{rec("bash", "5.1-2"), rec("vim", models.UnknownVersion)},
		},
		{
			name:   "blank line skipped",
			output: "bash 5.1-2\n\ncurl 7.68\n",
			want:   []models.SoftwareRecord{rec("bash", "5.1-2"), rec("curl", "7.68")},
		},
		{
			name:   "extra columns ignored",
			output: "openssl 3.0.2-0ubuntu1 amd64 installed\n",
			want:   []models.SoftwareRecord{rec("openssl", "3.0.2-0ubuntu1")},
		},
		{
			name:   "arbitrary whitespace runs",
			output: "  zlib\t\t1.2.13  \n   \t \nSafari 17.4\r\n",
			want:   []models.SoftwareRecord{rec("zlib", "1.2.13"), rec("Safari", "17.4")},
		},
		{
			name:   "reshaped macOS names",
			output: "Visual_Studio_Code 1.89.1\nPreview \n",
			want:   []models.SoftwareRecord{rec("Visual_Studio_Code", "1.89.1"), rec("Preview", models.UnknownVersion)},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUnix(tt.output))
		})
	}
}

func TestParseFreeze(t *testing.T) {
	output := "# comment\n" +
		"requests==2.31.0\n" +
		"-e git+https://example.com/repo.git#egg=local\n" +
		"mypkg @ file:///tmp/mypkg\n" +
		"Flask == 3.0.0\n" +
		"broken==\n"

	assert.Equal(t, []models.SoftwareRecord{
		rec("requests", "2.31.0"),
		rec("Flask", "3.0.0"),
	}, ParseFreeze(output))
}

func TestParsersNeverEmitIncompleteRecords(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"DisplayName :\nDisplayVersion :\n",
		"DisplayVersion : 1\nDisplayVersion : 2\n",
		"a\nb c\n \t \nd e f g\n",
		"==\n==1\nx==\n",
	}
	parsers := map[string]Parser{"windows": ParseWindows, "unix": ParseUnix, "freeze": ParseFreeze}

	for name, parse := range parsers {
		for _, in := range inputs {
			for _, r := range parse(in) {
				assert.True(t, r.Complete(), "%s parser emitted %+v for %q", name, r, in)
			}
		}
	}
}

func TestSanitizeDropsEmptyFields(t *testing.T) {
	in := []models.SoftwareRecord{
		rec("bash", "5.1"),
		rec("", "1.0"),
		rec("vim", ""),
		rec("  ", " "),
		rec("curl", models.UnknownVersion),
	}

	assert.Equal(t, []models.SoftwareRecord{rec("bash", "5.1"), rec("curl", models.UnknownVersion)}, Sanitize(in))
	assert.NotNil(t, Sanitize(nil))
	assert.Empty(t, Sanitize(nil))
}
