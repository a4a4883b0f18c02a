package textedit_test

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

func pos(line, char uint32) protocol.Position {
	return protocol.Position{Line: line, Character: char}
}

func TestOffsetRoundTrip(t *testing.T) {
	doc := "global {\n  log_level: info # 日本\n}\n# 😀 end\n"

	tests := []struct {
		name   string
		pos    protocol.Position
		offset int
	}{
		{"start", pos(0, 0), 0},
		{"second line", pos(1, 2), 11},
		{"after multibyte", pos(1, 22), 35},
		{"after surrogate pair", pos(3, 4), 44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := textedit.Offset(doc, tt.pos); got != tt.offset {
				t.Errorf("Offset() = %d, want %d", got, tt.offset)
			}
			if got := textedit.PositionAt(doc, tt.offset); got != tt.pos {
				t.Errorf("PositionAt() = %v, want %v", got, tt.pos)
			}
		})
	}
}

func TestOffsetClamps(t *testing.T) {
	doc := "ab\ncd"
	if got := textedit.Offset(doc, pos(0, 99)); got != 2 {
		t.Errorf("Offset past line end = %d, want 2", got)
	}
	if got := textedit.Offset(doc, pos(9, 0)); got != len(doc) {
		t.Errorf("Offset past document end = %d, want %d", got, len(doc))
	}
}

func TestApply(t *testing.T) {
	doc := "routing {\n  fallback: proxy\n}\n"

	t.Run("range replace", func(t *testing.T) {
		change := protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{Start: pos(1, 12), End: pos(1, 17)},
			Text:  "direct",
		}
		want := "routing {\n  fallback: direct\n}\n"
		if got := textedit.Apply(doc, change); got != want {
			t.Errorf("Apply() = %q, want %q", got, want)
		}
	})

	t.Run("insert", func(t *testing.T) {
		change := protocol.TextDocumentContentChangeEvent{
			Range: &protocol.Range{Start: pos(2, 1), End: pos(2, 1)},
			Text:  "\n",
		}
		want := "routing {\n  fallback: proxy\n}\n\n"
		if got := textedit.Apply(doc, change); got != want {
			t.Errorf("Apply() = %q, want %q", got, want)
		}
	})

	t.Run("whole document", func(t *testing.T) {
		change := protocol.TextDocumentContentChangeEvent{Text: "dns {}"}
		if got := textedit.Apply(doc, change); got != "dns {}" {
			t.Errorf("Apply() = %q", got)
		}
	})
}

func TestColumns(t *testing.T) {
	line := "a😀b"
	if got := textedit.Column(line, len(line)); got != 4 {
		t.Errorf("Column() = %d, want 4", got)
	}
	if got := textedit.ByteColumn(line, 3); got != 5 {
		t.Errorf("ByteColumn() = %d, want 5", got)
	}
	if got := textedit.EndOf("x\nabc"); got != pos(1, 3) {
		t.Errorf("EndOf() = %v", got)
	}
}
