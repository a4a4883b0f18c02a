package query

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/cursor"
	"github.com/daeuniverse/daed-sub000/internal/docs"
	"github.com/daeuniverse/daed-sub000/internal/resolver"
	"github.com/daeuniverse/daed-sub000/internal/scanner"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

// Hover documents the word under the cursor. Candidates are tried from the
// most to the least specific and the first one that matches wins.
func Hover(result *symbols.ParseResult, text string, pos protocol.Position) *protocol.Hover {
	line := cursor.LineAt(text, pos.Line)
	col := textedit.ByteColumn(line, pos.Character)
	code, _ := scanner.SplitComment(line)
	if col > len(code) {
		return nil
	}
	word, start, end := cursor.WordAt(code, col)
	if word == "" {
		return nil
	}
	rest := strings.TrimLeft(code[end:], " \t")
	rng := protocol.Range{
		Start: protocol.Position{Line: pos.Line, Character: textedit.Column(line, start)},
		End:   protocol.Position{Line: pos.Line, Character: textedit.Column(line, end)},
	}

	var content string
	switch {
	case valueDoc(code, start, word, &content):
	case entryDoc(docs.Sections, word, "section", &content):
	case entryDoc(docs.Parameters, word, "parameter", &content):
	case strings.HasPrefix(rest, "(") && entryDoc(docs.Functions, word, "function", &content):
	case entryDoc(docs.Outbounds, word, "outbound", &content):
	case symbolDoc(result, pos, &content):
	case referenceDoc(result, pos, &content):
	case strings.HasPrefix(rest, ":") && entryDoc(docs.TypePrefixes, word, "type", &content):
	default:
		return nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: content},
		Range:    &rng,
	}
}

// valueDoc documents word when it is the value of a key with enumerated
// values.
func valueDoc(code string, start int, word string, out *string) bool {
	for _, st := range scanner.Statements(0, code) {
		if start < st.Col || start > st.Col+len(st.Text) {
			continue
		}
		l := scanner.Classify(st.Text)
		if l.Kind != scanner.LineKeyValue || start < st.Col+l.ValueCol {
			return false
		}
		doc, ok := docs.Value(l.Name, word)
		if !ok {
			return false
		}
		*out = fmt.Sprintf("**%s**: `%s`\n\n%s", l.Name, word, doc)
		return true
	}
	return false
}

func entryDoc(table docs.Table, word, label string, out *string) bool {
	e, ok := table.Get(word)
	if !ok {
		return false
	}
	*out = fmt.Sprintf("**%s** _(%s)_\n\n%s", e.Name, label, e.Doc)
	if len(e.Values) > 0 {
		*out += "\n\nValues: `" + strings.Join(e.Values, "`, `") + "`"
	}
	return true
}

func symbolDoc(result *symbols.ParseResult, pos protocol.Position, out *string) bool {
	i := result.SymbolAt(pos)
	if i < 0 {
		return false
	}
	*out = describe(result.Symbols[i])
	return true
}

func referenceDoc(result *symbols.ParseResult, pos protocol.Position, out *string) bool {
	ref, ok := result.ReferenceAt(pos)
	if !ok {
		return false
	}
	sym, ok := resolver.NewIndex(result).Resolve(ref.Name, ref.Kind)
	if !ok {
		*out = fmt.Sprintf("Reference to `%s`", ref.Kind)
		return true
	}
	*out = describe(sym) + fmt.Sprintf("\n\nDefined on line %d", sym.NameRange.Start.Line+1)
	return true
}

func describe(sym symbols.Symbol) string {
	s := fmt.Sprintf("**%s** _(%s)_", sym.Name, sym.Kind)
	if sym.Detail != "" {
		s += fmt.Sprintf("\n\n```dae\n%s: %s\n```", sym.Name, sym.Detail)
	}
	return s
}
