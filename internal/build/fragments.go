package build

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fragment is one Markdown source file participating in the build.
type Fragment struct {
	Path  string
	Title string // first heading, "" when the fragment has none
}

// ScanFragments returns the Markdown fragments in dir, in filename-sort
// order. Only strict two-character basenames with a .md extension
// participate ("ab.md" yes, "abc.md" no); that narrow naming convention is
// the contract for what belongs to the book.
func ScanFragments(dir string) ([]Fragment, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "??.md"))
	if err != nil {
		return nil, fmt.Errorf("glob fragments: %w", err)
	}
	sort.Strings(matches)

	fragments := make([]Fragment, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fragment %s: %w", path, err)
		}
		fragments = append(fragments, Fragment{Path: path, Title: firstHeading(body)})
	}
	return fragments, nil
}

// Concatenate writes the fragments, in order, to dst. Fragments are
// separated by a blank line so a fragment without a trailing newline cannot
// glue its last line onto the next fragment's heading.
func Concatenate(fragments []Fragment, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create aggregate %s: %w", dst, err)
	}
	defer out.Close()

	for i, frag := range fragments {
		body, err := os.ReadFile(frag.Path)
		if err != nil {
			return fmt.Errorf("read fragment %s: %w", frag.Path, err)
		}
		if i > 0 {
			if _, err := out.WriteString("\n"); err != nil {
				return fmt.Errorf("write aggregate: %w", err)
			}
		}
		if _, err := out.Write(body); err != nil {
			return fmt.Errorf("write aggregate: %w", err)
		}
		if len(body) > 0 && body[len(body)-1] != '\n' {
			if _, err := out.WriteString("\n"); err != nil {
				return fmt.Errorf("write aggregate: %w", err)
			}
		}
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close aggregate: %w", err)
	}
	return nil
}

// firstHeading extracts the text of the first heading in a Markdown body.
func firstHeading(body []byte) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var title string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		heading, ok := n.(*gmast.Heading)
		if !ok {
			return gmast.WalkContinue, nil
		}
		var sb strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if txt, ok := child.(*gmast.Text); ok {
				sb.Write(txt.Segment.Value(body))
			}
		}
		title = sb.String()
		return gmast.WalkStop, nil
	})
	return title
}
