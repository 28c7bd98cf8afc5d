package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFilenameFlagOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output:\n  filename: fromfile\n"), 0o644))

	cli := &CLI{Config: "config.yaml", Filename: "fromflag"}
	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "fromflag.pdf", cfg.PDFName())
}

func TestLoadConfigWithoutFlagKeepsConfigValue(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output:\n  filename: report.pdf\n"), 0o644))

	cli := &CLI{Config: "config.yaml"}
	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", cfg.PDFName())
}

func TestLoadConfigDefaultFilename(t *testing.T) {
	t.Chdir(t.TempDir())

	cli := &CLI{Config: "config.yaml"}
	cfg, err := cli.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "book.pdf", cfg.PDFName())
}
