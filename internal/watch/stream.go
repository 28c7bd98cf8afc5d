package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

// Stream adapts fsnotify into the Event model, watching a single directory.
type Stream struct {
	watcher *fsnotify.Watcher
	dir     string
	events  chan Event
}

// NewStream subscribes to filesystem notifications for dir. A subscription
// failure here is the fatal start-up condition behind exit code 5.
func NewStream(dir string) (*Stream, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, perrors.Wrap(err, perrors.CategoryWatch, "create filesystem watcher")
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, perrors.Wrap(err, perrors.CategoryWatch, fmt.Sprintf("watch directory %s", dir))
	}

	s := &Stream{watcher: watcher, dir: dir, events: make(chan Event)}
	go s.translate()

	slog.Info("Watching for Markdown changes", "dir", dir)
	return s, nil
}

// translate converts raw fsnotify events one at a time, in order.
func (s *Stream) translate() {
	defer close(s.events)
	for raw := range s.watcher.Events {
		s.events <- Event{
			Dir:   s.dir,
			Name:  filepath.Base(raw.Name),
			Kind:  mapOp(raw.Op),
			IsDir: isDir(raw),
		}
	}
}

// Events returns the translated event stream. The channel closes when the
// underlying watcher closes.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Errors returns the watcher's error stream.
func (s *Stream) Errors() <-chan error {
	return s.watcher.Errors
}

// Close tears down the subscription.
func (s *Stream) Close() error {
	return s.watcher.Close()
}

func mapOp(op fsnotify.Op) Kind {
	switch {
	case op.Has(fsnotify.Create):
		return KindCreate
	case op.Has(fsnotify.Write):
		return KindWrite
	case op.Has(fsnotify.Remove):
		return KindRemove
	case op.Has(fsnotify.Rename):
		return KindRename
	default:
		return KindChmod
	}
}

// isDir stats the affected path. For remove and rename events the path is
// already gone, so fsnotify cannot tell us; those report false and the name
// filter alone guards against misfires.
func isDir(raw fsnotify.Event) bool {
	if raw.Op.Has(fsnotify.Remove) || raw.Op.Has(fsnotify.Rename) {
		return false
	}
	info, err := os.Stat(raw.Name)
	return err == nil && info.IsDir()
}
