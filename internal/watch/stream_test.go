package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

func TestNewStreamFailsOnMissingDirectory(t *testing.T) {
	_, err := NewStream(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
	assert.Equal(t, perrors.ExitWatch, perrors.ExitCode(err))
}

func TestStreamTranslatesEvents(t *testing.T) {
	dir := t.TempDir()

	stream, err := NewStream(dir)
	require.NoError(t, err)
	defer stream.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "aa.md"), []byte("# One\n"), 0o644))

	// Creation surfaces as at least one event for aa.md; kinds may vary by
	// platform (create, then possibly write).
	select {
	case ev := <-stream.Events():
		assert.Equal(t, dir, ev.Dir)
		assert.Equal(t, "aa.md", ev.Name)
		assert.False(t, ev.IsDir)
		assert.True(t, IsMarkdownEvent(ev))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for filesystem event")
	}
}

func TestStreamEventsChannelClosesOnClose(t *testing.T) {
	stream, err := NewStream(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, stream.Close())

	select {
	case _, ok := <-stream.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for events channel to close")
	}
}
