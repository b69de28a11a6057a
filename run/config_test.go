package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(tempDir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name     string
		path     string
		expected Config
		wantErr  bool
	}{
		{
			name: "partial file keeps defaults",
			path: write("partial.yaml", "steps: 50\n"),
			expected: Config{
				Name:   "revfix",
				Steps:  50,
				Probe:  "heap",
				Output: Output{Format: FormatText, Color: true},
			},
		},
		{
			name: "full file",
			path: write("full.yaml", "name: bench\nsteps: 20\nprobe: rss\noutput:\n  format: json\n  color: false\n"),
			expected: Config{
				Name:   "bench",
				Steps:  20,
				Probe:  "rss",
				Output: Output{Format: FormatJSON, Color: false},
			},
		},
		{
			name:     "empty file",
			path:     write("empty.yaml", ""),
			expected: DefaultConfig(),
		},
		{
			name:    "bound below start",
			path:    write("low.yaml", "steps: 1\n"),
			wantErr: true,
		},
		{
			name:    "unknown probe",
			path:    write("probe.yaml", "probe: swap\n"),
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			path:    write("bad.yaml", "steps: [1, 2\n"),
			wantErr: true,
		},
		{
			name:    "explicit missing file",
			path:    filepath.Join(tempDir, "missing.yaml"),
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			config, err := LoadConfig(tc.path)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, config)
		})
	}
}

func TestLoadDefaultConfigMissing(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	config := DefaultConfig()
	config.Steps = 64
	config.Output.Format = FormatJSON
	require.NoError(t, WriteConfig(path, config))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Output.Format = "xml"
	assert.ErrorContains(t, bad.Validate(), "xml")
}
