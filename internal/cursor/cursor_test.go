package cursor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/cursor"
)

const config = `global {
  log_level: info
}
dns {
  upstream {
    alidns: 'udp://dns.alidns.com:53'
  }
  routing {
    request {
      fallback: alidns
    }
  }
}
routing {
  domain(geosite:cn) -> direct
}
`

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name       string
		pos        protocol.Position
		section    string
		subsection string
		dns        bool
		routing    bool
		path       []string
	}{
		{name: "top level", pos: protocol.Position{Line: 0, Character: 0}},
		{name: "global", pos: protocol.Position{Line: 1, Character: 4}, section: "global", path: []string{"global"}},
		{
			name: "upstream", pos: protocol.Position{Line: 5, Character: 4},
			section: "dns", subsection: "upstream", dns: true,
			path: []string{"dns", "upstream"},
		},
		{
			name: "dns request", pos: protocol.Position{Line: 9, Character: 16},
			section: "dns", subsection: "request", dns: true, routing: true,
			path: []string{"dns", "routing", "request"},
		},
		{
			name: "dns routing after request", pos: protocol.Position{Line: 11, Character: 0},
			section: "dns", subsection: "routing", dns: true, routing: true,
			path: []string{"dns", "routing"},
		},
		{
			name: "traffic routing", pos: protocol.Position{Line: 14, Character: 2},
			section: "routing", dns: true, routing: true,
			path: []string{"routing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := cursor.Analyze(config, tt.pos)
			assert.Equal(t, tt.section, ctx.Section)
			assert.Equal(t, tt.subsection, ctx.Subsection)
			assert.Equal(t, tt.dns, ctx.IsDNS)
			assert.Equal(t, tt.routing, ctx.IsRouting)
			assert.Equal(t, tt.path, ctx.SymbolPath)
		})
	}
}

func TestAnalyzeUnbalanced(t *testing.T) {
	text := "routing {\n  domain(geosite:cn) -> \n"
	ctx := cursor.Analyze(text, protocol.Position{Line: 1, Character: 24})
	assert.Equal(t, "routing", ctx.Section)
	assert.False(t, ctx.IsDNS)
	assert.True(t, ctx.IsRouting)
	assert.Equal(t, "  domain(geosite:cn) -> ", ctx.Prefix)
	assert.Equal(t, "routing", ctx.Parent())
	assert.Equal(t, 1, ctx.Depth())
}

func TestAnalyzeStopsAtCursor(t *testing.T) {
	text := "dns { upstream { a: 'x' } }"
	ctx := cursor.Analyze(text, protocol.Position{Line: 0, Character: 17})
	assert.Equal(t, []string{"dns", "upstream"}, ctx.SymbolPath)
	assert.Equal(t, "upstream", ctx.Subsection)
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		line string
		col  int
		word string
	}{
		{"  dial_mode: domain+", 16, "domain+"},
		{"  dial_mode: domain+", 20, "domain+"},
		{"qname(x)", 2, "qname"},
		{"a->direct", 0, "a"},
		{"a -> must_direct", 8, "must_direct"},
		{"   ", 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			word, start, end := cursor.WordAt(tt.line, tt.col)
			assert.Equal(t, tt.word, word)
			assert.Equal(t, tt.word, tt.line[start:end])
		})
	}
}
