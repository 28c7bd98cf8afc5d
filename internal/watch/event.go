// Package watch turns filesystem notifications into builds: it consumes a
// stream of (directory, event-kind, filename) tuples, filters them down to
// qualifying Markdown changes, and invokes the build synchronously.
package watch

import (
	"strings"
)

// Kind is the event kind of a filesystem notification.
type Kind uint8

const (
	KindCreate Kind = iota
	KindWrite
	KindRemove
	KindRename
	KindChmod
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindWrite:
		return "write"
	case KindRemove:
		return "remove"
	case KindRename:
		return "rename"
	case KindChmod:
		return "chmod"
	default:
		return "unknown"
	}
}

// Event is one filesystem notification.
type Event struct {
	Dir   string // watched directory
	Name  string // base name of the affected path
	Kind  Kind
	IsDir bool // whether the affected path is a directory, when knowable
}

// IsMarkdownEvent reports whether an event qualifies for a build: the
// lowercase filename contains a period and ends in "md" (any *.md variant,
// case-insensitive), and the event is not a directory-level delete.
func IsMarkdownEvent(e Event) bool {
	if e.IsDir && e.Kind == KindRemove {
		return false
	}
	name := strings.ToLower(e.Name)
	return strings.Contains(name, ".") && strings.HasSuffix(name, "md")
}
