package typec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOSReleaseFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "pretty name wins",
			input: `PRETTY_NAME="Ubuntu 22.04.1 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
ID=ubuntu`,
			expected: "Ubuntu 22.04.1 LTS",
		},
		{
			name: "id and version",
			input: `ID=alpine
VERSION_ID=3.17.1`,
			expected: "alpine 3.17.1",
		},
		{
			name:     "id only",
			input:    `ID="chromeos"`,
			expected: "chromeos",
		},
		{
			name:     "missing data",
			input:    `X=123`,
			expected: "linux",
		},
		{
			name:     "empty file",
			input:    "",
			expected: "linux",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, osReleaseFrom(strings.NewReader(tt.input)))
		})
	}
}

func TestOSRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "os-release")
	assert.NoError(t, os.WriteFile(path, []byte("PRETTY_NAME=\"Harvester v1.4.0\"\n"), 0644))
	assert.Equal(t, "Harvester v1.4.0", osRelease(path))
	assert.Equal(t, "linux", osRelease(filepath.Join(t.TempDir(), "missing")))
}

func TestKernelRelease(t *testing.T) {
	assert.NotEmpty(t, kernelRelease())
}
