// Package parser builds the symbol and reference model of a dae
// configuration in a single pass over its statements.
package parser

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/dsl"
	"github.com/daeuniverse/daed-sub000/internal/resolver"
	"github.com/daeuniverse/daed-sub000/internal/scanner"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

type state struct {
	lines  []string
	result symbols.ParseResult

	// stack holds arena indices of the open blocks.
	stack []int
	// pending is a block opener whose '{' has not been seen yet.
	pending int
	// section is the enclosing top-level section, or "".
	section string
	// hasUpstream is set when the document declares any upstream block.
	hasUpstream bool
}

// Parse parses text and validates its references. It accepts any input:
// statements it does not recognize are ignored.
func Parse(text string) symbols.ParseResult {
	statements := scanner.Document(text)
	s := &state{
		lines:   textedit.Lines(text),
		pending: -1,
	}
	for _, st := range statements {
		if l := scanner.Classify(st.Text); l.Kind == scanner.LineBlockOpen && l.Name == "upstream" {
			s.hasUpstream = true
			break
		}
	}

	for _, st := range statements {
		s.statement(st)
	}

	idx := resolver.NewIndex(&s.result)
	s.result.Diagnostics = idx.Validate(s.result.References)
	return s.result
}

func (s *state) statement(st scanner.Statement) {
	if st.Text == "{" && s.pending >= 0 {
		s.push(s.pending)
		s.pending = -1
		return
	}
	s.pending = -1

	l := scanner.Classify(st.Text)
	switch l.Kind {
	case scanner.LineBlockOpen:
		s.open(st, l)
	case scanner.LineFallback:
		s.outbound(l.Name, st.Line, st.Col+l.NameCol)
	case scanner.LineKeyValue:
		if len(s.stack) == 0 {
			return
		}
		s.keyValue(st, l)
	case scanner.LineRule:
		s.outbound(l.Name, st.Line, st.Col+l.NameCol)
		s.embedded(l.Value, st.Line, st.Col+l.ValueCol)
	case scanner.LineBlockClose:
		s.close(st)
	}
}

func (s *state) open(st scanner.Statement, l scanner.Line) {
	kind := symbols.KindGroup
	switch {
	case len(s.stack) == 0 && dsl.IsSection(l.Name):
		kind = symbols.KindSection
		s.section = l.Name
	case len(s.stack) > 0 && dsl.IsSubsection(l.Name):
		kind = symbols.KindSection
	}

	idx := s.add(symbols.Symbol{
		Name:      l.Name,
		Kind:      kind,
		Range:     s.span(st.Line, st.Col, st.Col+len(st.Text)),
		NameRange: s.span(st.Line, st.Col+l.NameCol, st.Col+l.NameCol+len(l.Name)),
	})
	if l.Open {
		s.push(idx)
	} else {
		s.pending = idx
	}
}

func (s *state) keyValue(st scanner.Statement, l scanner.Line) {
	kind := symbols.KindParameter
	switch s.result.Symbols[s.top()].Name {
	case "subscription":
		kind = symbols.KindSubscription
	case "node":
		kind = symbols.KindNode
	case "upstream":
		kind = symbols.KindUpstream
	}

	s.add(symbols.Symbol{
		Name:      l.Name,
		Kind:      kind,
		Range:     s.span(st.Line, st.Col, st.Col+len(st.Text)),
		NameRange: s.span(st.Line, st.Col+l.NameCol, st.Col+l.NameCol+len(l.Name)),
		Detail:    l.Value,
	})
	s.embedded(l.Value, st.Line, st.Col+l.ValueCol)
}

func (s *state) close(st scanner.Statement) {
	if len(s.stack) == 0 {
		return
	}
	idx := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	sym := &s.result.Symbols[idx]
	sym.Range.End = s.position(st.Line, st.Col+1)
	if len(s.stack) == 0 && dsl.IsSection(sym.Name) {
		s.section = ""
	}
}

// add stores sym in the arena and attaches it to the innermost open block,
// or to the roots when no block is open.
func (s *state) add(sym symbols.Symbol) int {
	idx := len(s.result.Symbols)
	s.result.Symbols = append(s.result.Symbols, sym)
	if len(s.stack) == 0 {
		s.result.Roots = append(s.result.Roots, idx)
	} else {
		parent := &s.result.Symbols[s.top()]
		parent.Children = append(parent.Children, idx)
	}
	return idx
}

func (s *state) push(idx int) {
	s.stack = append(s.stack, idx)
}

func (s *state) top() int {
	return s.stack[len(s.stack)-1]
}

// outbound records the target of a fallback clause or routing rule.
func (s *state) outbound(name string, line, col int) {
	if dsl.IsOutbound(name) {
		return
	}
	kind := symbols.KindGroup
	if s.section == "dns" || s.hasUpstream {
		kind = symbols.KindUpstream
	}
	s.reference(name, kind, line, col)
}

func (s *state) reference(name string, kind symbols.Kind, line, col int) {
	s.result.References = append(s.result.References, symbols.Reference{
		Name:  name,
		Kind:  kind,
		Range: s.span(line, col, col+len(name)),
	})
}

func (s *state) position(line, col int) protocol.Position {
	return protocol.Position{
		Line:      uint32(line),
		Character: textedit.Column(s.lines[line], col),
	}
}

func (s *state) span(line, from, to int) protocol.Range {
	return protocol.Range{Start: s.position(line, from), End: s.position(line, to)}
}
