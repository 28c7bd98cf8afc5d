package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMarkdownEvent(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{name: "lowercase md write", event: Event{Name: "01.md", Kind: KindWrite}, want: true},
		{name: "uppercase MD write", event: Event{Name: "01.MD", Kind: KindWrite}, want: true},
		{name: "mixed case", event: Event{Name: "Ab.Md", Kind: KindWrite}, want: true},
		{name: "file delete qualifies", event: Event{Name: "01.md", Kind: KindRemove}, want: true},
		{name: "create qualifies", event: Event{Name: "zz.md", Kind: KindCreate}, want: true},
		{name: "not markdown", event: Event{Name: "notes.txt", Kind: KindWrite}, want: false},
		{name: "no period", event: Event{Name: "README", Kind: KindWrite}, want: false},
		{name: "md without period", event: Event{Name: "amd", Kind: KindWrite}, want: false},
		{name: "directory delete", event: Event{Name: "sub", Kind: KindRemove, IsDir: true}, want: false},
		{name: "md-named directory delete", event: Event{Name: "old.md", Kind: KindRemove, IsDir: true}, want: false},
		{name: "md-named directory create", event: Event{Name: "new.md", Kind: KindCreate, IsDir: true}, want: true},
		{name: "double extension", event: Event{Name: "ch.old.md", Kind: KindWrite}, want: true},
		{name: "mdx is not md", event: Event{Name: "ab.mdx", Kind: KindWrite}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarkdownEvent(tt.event))
		})
	}
}
