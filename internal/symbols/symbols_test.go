package symbols_test

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

func span(l1, c1, l2, c2 uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: l1, Character: c1},
		End:   protocol.Position{Line: l2, Character: c2},
	}
}

func TestContains(t *testing.T) {
	rng := span(1, 4, 3, 2)
	tests := []struct {
		line, char uint32
		want       bool
	}{
		{0, 9, false},
		{1, 3, false},
		{1, 4, true},
		{2, 0, true},
		{3, 2, true},
		{3, 3, false},
		{4, 0, false},
	}
	for _, tt := range tests {
		if got := symbols.Contains(rng, protocol.Position{Line: tt.line, Character: tt.char}); got != tt.want {
			t.Errorf("Contains(%d:%d) = %v, want %v", tt.line, tt.char, got, tt.want)
		}
	}
}

func TestWalkAndLookup(t *testing.T) {
	r := symbols.ParseResult{
		Symbols: []symbols.Symbol{
			{Name: "group", Kind: symbols.KindSection, NameRange: span(0, 0, 0, 5), Children: []int{2}},
			{Name: "routing", Kind: symbols.KindSection, NameRange: span(4, 0, 4, 7)},
			{Name: "proxy", Kind: symbols.KindGroup, NameRange: span(1, 2, 1, 7)},
		},
		Roots: []int{0, 1},
		References: []symbols.Reference{
			{Name: "proxy", Kind: symbols.KindGroup, Range: span(5, 12, 5, 17)},
		},
	}

	var order []string
	var depths []int
	r.Walk(func(i, depth int) {
		order = append(order, r.Symbols[i].Name)
		depths = append(depths, depth)
	})
	if want := []string{"group", "proxy", "routing"}; len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("Walk order = %v, want %v", order, want)
	}
	if depths[1] != 1 {
		t.Errorf("depth of proxy = %d, want 1", depths[1])
	}

	if got := r.SymbolAt(protocol.Position{Line: 1, Character: 7}); got != 2 {
		t.Errorf("SymbolAt(1:7) = %d, want 2", got)
	}
	if got := r.SymbolAt(protocol.Position{Line: 2, Character: 0}); got != -1 {
		t.Errorf("SymbolAt(2:0) = %d, want -1", got)
	}
	if ref, ok := r.ReferenceAt(protocol.Position{Line: 5, Character: 14}); !ok || ref.Name != "proxy" {
		t.Errorf("ReferenceAt(5:14) = %v, %v", ref, ok)
	}
	if !symbols.KindUpstream.Indexable() || symbols.KindParameter.Indexable() {
		t.Error("Indexable() is wrong")
	}
}
