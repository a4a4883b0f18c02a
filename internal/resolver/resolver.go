// Package resolver maps referenced names to their definitions.
package resolver

import (
	"fmt"

	"github.com/daeuniverse/daed-sub000/internal/dsl"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

// Index is a name lookup over the referenceable symbols of a ParseResult.
// Section and parameter symbols are never indexed.
type Index struct {
	result *symbols.ParseResult
	byName map[string][]int
}

func NewIndex(result *symbols.ParseResult) *Index {
	idx := &Index{result: result, byName: make(map[string][]int)}
	result.Walk(func(i, _ int) {
		s := result.Symbols[i]
		if !s.Kind.Indexable() {
			return
		}
		idx.byName[s.Name] = append(idx.byName[s.Name], i)
	})
	return idx
}

// Lookup returns the first definition of name in document order.
func (idx *Index) Lookup(name string) (symbols.Symbol, bool) {
	found := idx.byName[name]
	if len(found) == 0 {
		return symbols.Symbol{}, false
	}
	return idx.result.Symbols[found[0]], true
}

// Resolve prefers a definition of the given kind and falls back to any
// definition with the same name.
func (idx *Index) Resolve(name string, kind symbols.Kind) (symbols.Symbol, bool) {
	for _, i := range idx.byName[name] {
		if idx.result.Symbols[i].Kind == kind {
			return idx.result.Symbols[i], true
		}
	}
	return idx.Lookup(name)
}

// Definitions returns the arena indices of every definition named name.
func (idx *Index) Definitions(name string) []int {
	return idx.byName[name]
}

// Validate reports a warning for every reference that does not resolve.
// Built-in outbounds and group references are exempt: groups are defined
// outside the configuration text.
func (idx *Index) Validate(refs []symbols.Reference) []symbols.Diagnostic {
	var diags []symbols.Diagnostic
	for _, ref := range refs {
		if dsl.IsOutbound(ref.Name) || ref.Kind == symbols.KindGroup {
			continue
		}
		if _, ok := idx.Lookup(ref.Name); ok {
			continue
		}
		diags = append(diags, symbols.Diagnostic{
			Message:  fmt.Sprintf("Undefined %s: '%s'", ref.Kind, ref.Name),
			Range:    ref.Range,
			Severity: symbols.SeverityWarning,
		})
	}
	return diags
}
