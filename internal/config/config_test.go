package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileAbsent(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load(DefaultConfigFile)
	require.NoError(t, err)

	assert.Equal(t, "book", cfg.Output.Filename)
	assert.Equal(t, "build", cfg.Build.Dir)
	assert.Equal(t, "main.tex", cfg.Build.EntryPoint)
	assert.Equal(t, "styles", cfg.Build.StylesDir)
	assert.Equal(t, "pandoc", cfg.Tools.Pandoc)
	assert.Equal(t, "context", cfg.Tools.Context)
	assert.Equal(t, "gs", cfg.Tools.Ghostscript)
	assert.Equal(t, time.Duration(0), cfg.Watch.QuietWindow)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	chdirTemp(t)

	_, err := Load("nope.yaml")
	require.Error(t, err)
}

func TestLoadFileOverridesAndNormalizes(t *testing.T) {
	dir := chdirTemp(t)

	content := []byte("output:\n  filename: report.pdf\nwatch:\n  quiet_window: 250ms\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	cfg, err := Load(DefaultConfigFile)
	require.NoError(t, err)

	// Unset sections keep their defaults.
	assert.Equal(t, "build", cfg.Build.Dir)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.QuietWindow)
	assert.Equal(t, "report.pdf", cfg.PDFName())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "negative quiet window", content: "watch:\n  quiet_window: -1s\n"},
		{name: "sub-second rebuild", content: "watch:\n  rebuild_every: 100ms\n"},
		{name: "filename with path", content: "output:\n  filename: out/book\n"},
		{name: "malformed yaml", content: "output: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0o644))
			_, err := Load(DefaultConfigFile)
			require.Error(t, err)
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output:\n  filename: fromfile\n"), 0o644))

	t.Setenv("MDPRESS_FILENAME", "fromenv")
	t.Setenv("MDPRESS_QUIET_WINDOW", "2s")

	cfg, err := Load(DefaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.Output.Filename)
	assert.Equal(t, 2*time.Second, cfg.Watch.QuietWindow)
}

func TestEnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MDPRESS_FILENAME=dotenv\n"), 0o644))

	t.Setenv("MDPRESS_FILENAME", "process")

	cfg, err := Load(DefaultConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "process", cfg.Output.Filename)
}

func TestPDFNameNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "report", want: "report.pdf"},
		{in: "report.pdf", want: "report.pdf"},
		{in: "book", want: "book.pdf"},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Output.Filename = tt.in
		assert.Equal(t, tt.want, cfg.PDFName())
	}
}

func TestInit(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, Init(path, false))

	// The generated file must round-trip through Load.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "book", cfg.Output.Filename)

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}

// chdirTemp switches the test into a fresh temp dir so default-path probing
// and .env loading see a clean slate.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}
