package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drengskapur/filemerge/pkg/merger"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	inTempDir(t)

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, merger.DefaultPrependMarker, cfg.PrependMarker)
	assert.Equal(t, merger.DefaultAppendMarker, cfg.AppendMarker)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
}

func TestLoad_Environment(t *testing.T) {
	inTempDir(t)
	t.Setenv("FILEMERGE_PREPEND_MARKER", "-- begin")
	t.Setenv("FILEMERGE_APPEND_MARKER", "-- end")
	t.Setenv("FILEMERGE_LOG_LEVEL", "debug")

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	markers, err := cfg.Markers()
	require.NoError(t, err)
	assert.Equal(t, "-- begin", markers.Prepend())
	assert.Equal(t, "-- end", markers.Append())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := inTempDir(t)
	content := "prepend_marker: \"%% start\"\nappend_marker: \"%% stop\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".filemerge.yaml"), []byte(content), 0o644))

	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "%% start", cfg.PrependMarker)
	assert.Equal(t, "%% stop", cfg.AppendMarker)
}

func TestNew_ExplicitConfigFileMissing(t *testing.T) {
	inTempDir(t)
	_, err := New("does-not-exist.yaml")
	require.Error(t, err)
}

func TestBindFlags_OverrideEnvironment(t *testing.T) {
	inTempDir(t)
	t.Setenv("FILEMERGE_APPEND_MARKER", "from env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("prepend-marker", merger.DefaultPrependMarker, "")
	flags.String("append-marker", merger.DefaultAppendMarker, "")
	flags.String("log-level", "info", "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--append-marker", "from flag", "--debug"}))

	v, err := New("")
	require.NoError(t, err)
	require.NoError(t, BindFlags(v, flags))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from flag", cfg.AppendMarker)
	assert.Equal(t, merger.DefaultPrependMarker, cfg.PrependMarker)
	assert.True(t, cfg.Debug)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "same markers", env: map[string]string{
			"FILEMERGE_PREPEND_MARKER": "==",
			"FILEMERGE_APPEND_MARKER":  "==",
		}},
		{name: "append starts with prepend", env: map[string]string{
			"FILEMERGE_PREPEND_MARKER": "==",
			"FILEMERGE_APPEND_MARKER":  "== end",
		}},
		{name: "unknown log level", env: map[string]string{
			"FILEMERGE_LOG_LEVEL": "loud",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			for k, val := range tt.env {
				t.Setenv(k, val)
			}
			v, err := New("")
			require.NoError(t, err)
			_, err = Load(v)
			require.Error(t, err)
		})
	}
}
