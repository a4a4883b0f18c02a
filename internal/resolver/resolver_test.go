package resolver_test

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/resolver"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

func result() *symbols.ParseResult {
	return &symbols.ParseResult{
		Symbols: []symbols.Symbol{
			{Name: "node", Kind: symbols.KindSection, Children: []int{1, 2}},
			{Name: "hk", Kind: symbols.KindNode},
			{Name: "proxy", Kind: symbols.KindNode},
			{Name: "group", Kind: symbols.KindSection, Children: []int{4}},
			{Name: "proxy", Kind: symbols.KindGroup, Children: []int{5}},
			{Name: "policy", Kind: symbols.KindParameter},
		},
		Roots: []int{0, 3},
	}
}

func TestLookup(t *testing.T) {
	idx := resolver.NewIndex(result())

	if s, ok := idx.Lookup("proxy"); !ok || s.Kind != symbols.KindNode {
		t.Errorf("Lookup(proxy) = %v, %v; want the first definition", s, ok)
	}
	for _, name := range []string{"node", "group", "policy", "missing"} {
		if _, ok := idx.Lookup(name); ok {
			t.Errorf("Lookup(%s) found a symbol", name)
		}
	}
}

func TestResolve(t *testing.T) {
	idx := resolver.NewIndex(result())

	tests := []struct {
		name string
		kind symbols.Kind
		want symbols.Kind
	}{
		{"proxy", symbols.KindGroup, symbols.KindGroup},
		{"proxy", symbols.KindNode, symbols.KindNode},
		{"proxy", symbols.KindUpstream, symbols.KindNode},
		{"hk", symbols.KindGroup, symbols.KindNode},
	}
	for _, tt := range tests {
		s, ok := idx.Resolve(tt.name, tt.kind)
		if !ok || s.Kind != tt.want {
			t.Errorf("Resolve(%s, %s) = %v, %v; want kind %s", tt.name, tt.kind, s.Kind, ok, tt.want)
		}
	}

	if got := idx.Definitions("proxy"); len(got) != 2 || got[0] != 2 || got[1] != 4 {
		t.Errorf("Definitions(proxy) = %v, want [2 4]", got)
	}
}

func TestValidate(t *testing.T) {
	idx := resolver.NewIndex(result())
	rng := protocol.Range{
		Start: protocol.Position{Line: 3, Character: 4},
		End:   protocol.Position{Line: 3, Character: 9},
	}

	diags := idx.Validate([]symbols.Reference{
		{Name: "hk", Kind: symbols.KindNode},
		{Name: "direct", Kind: symbols.KindUpstream},
		{Name: "elsewhere", Kind: symbols.KindGroup},
		{Name: "tokyo", Kind: symbols.KindNode, Range: rng},
	})
	if len(diags) != 1 {
		t.Fatalf("Validate() returned %d diagnostics, want 1: %v", len(diags), diags)
	}
	if diags[0].Message != "Undefined node: 'tokyo'" {
		t.Errorf("message = %q", diags[0].Message)
	}
	if diags[0].Range != rng || diags[0].Severity != symbols.SeverityWarning {
		t.Errorf("diagnostic = %+v", diags[0])
	}
}
