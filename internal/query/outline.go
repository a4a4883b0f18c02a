package query

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

var symbolKinds = map[symbols.Kind]protocol.SymbolKind{
	symbols.KindSection:      protocol.SymbolKindNamespace,
	symbols.KindGroup:        protocol.SymbolKindClass,
	symbols.KindSubscription: protocol.SymbolKindPackage,
	symbols.KindNode:         protocol.SymbolKindObject,
	symbols.KindUpstream:     protocol.SymbolKindInterface,
	symbols.KindParameter:    protocol.SymbolKindProperty,
}

// DocumentSymbols returns the block tree of a document.
func DocumentSymbols(result *symbols.ParseResult) []protocol.DocumentSymbol {
	var build func(indices []int) []protocol.DocumentSymbol
	build = func(indices []int) []protocol.DocumentSymbol {
		out := make([]protocol.DocumentSymbol, 0, len(indices))
		for _, i := range indices {
			s := result.Symbols[i]
			ds := protocol.DocumentSymbol{
				Name:           s.Name,
				Kind:           symbolKinds[s.Kind],
				Range:          s.Range,
				SelectionRange: s.NameRange,
				Children:       build(s.Children),
			}
			if s.Detail != "" {
				detail := s.Detail
				ds.Detail = &detail
			}
			out = append(out, ds)
		}
		return out
	}
	return build(result.Roots)
}

var severities = map[symbols.Severity]protocol.DiagnosticSeverity{
	symbols.SeverityError:   protocol.DiagnosticSeverityError,
	symbols.SeverityWarning: protocol.DiagnosticSeverityWarning,
	symbols.SeverityInfo:    protocol.DiagnosticSeverityInformation,
}

// Diagnostics converts parse diagnostics to protocol diagnostics.
func Diagnostics(result *symbols.ParseResult, source string) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		severity := severities[d.Severity]
		src := source
		out = append(out, protocol.Diagnostic{
			Range:    d.Range,
			Severity: &severity,
			Source:   &src,
			Message:  d.Message,
		})
	}
	return out
}
