package query

import (
	"regexp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/resolver"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

var validName = regexp.MustCompile(`^[A-Za-z_][\w-]*$`)

// Definition returns the name range of the definition a reference points
// to. A definition under the cursor is its own definition.
func Definition(result *symbols.ParseResult, pos protocol.Position) *protocol.Range {
	if ref, ok := result.ReferenceAt(pos); ok {
		sym, ok := resolver.NewIndex(result).Resolve(ref.Name, ref.Kind)
		if !ok {
			return nil
		}
		return &sym.NameRange
	}
	if i := result.SymbolAt(pos); i >= 0 {
		rng := result.Symbols[i].NameRange
		return &rng
	}
	return nil
}

// References lists the usages of the definition under the cursor, preceded by
// the definition itself when includeDeclaration is set.
func References(result *symbols.ParseResult, pos protocol.Position, includeDeclaration bool) []protocol.Range {
	i := result.SymbolAt(pos)
	if i < 0 || !result.Symbols[i].Kind.Indexable() {
		return nil
	}
	sym := result.Symbols[i]

	ranges := []protocol.Range{}
	if includeDeclaration {
		ranges = append(ranges, sym.NameRange)
	}
	for _, ref := range result.References {
		if ref.Name == sym.Name {
			ranges = append(ranges, ref.Range)
		}
	}
	return ranges
}

// RenameTarget is the renamable name under the cursor.
type RenameTarget struct {
	Range       protocol.Range `json:"range"`
	Placeholder string         `json:"placeholder"`
}

func target(result *symbols.ParseResult, pos protocol.Position) (RenameTarget, bool) {
	if i := result.SymbolAt(pos); i >= 0 && result.Symbols[i].Kind.Indexable() {
		sym := result.Symbols[i]
		return RenameTarget{Range: sym.NameRange, Placeholder: sym.Name}, true
	}
	if ref, ok := result.ReferenceAt(pos); ok {
		return RenameTarget{Range: ref.Range, Placeholder: ref.Name}, true
	}
	return RenameTarget{}, false
}

// PrepareRename returns the range and current text of the name that a rename
// at pos would change.
func PrepareRename(result *symbols.ParseResult, pos protocol.Position) *RenameTarget {
	t, ok := target(result, pos)
	if !ok {
		return nil
	}
	return &t
}

// Rename returns one edit per definition and per reference of the name under
// the cursor. It returns nil when nothing renamable is at pos or newName is
// not a valid name.
func Rename(result *symbols.ParseResult, pos protocol.Position, newName string) []protocol.TextEdit {
	if !validName.MatchString(newName) {
		return nil
	}
	t, ok := target(result, pos)
	if !ok {
		return nil
	}

	var edits []protocol.TextEdit
	for _, i := range resolver.NewIndex(result).Definitions(t.Placeholder) {
		edits = append(edits, protocol.TextEdit{Range: result.Symbols[i].NameRange, NewText: newName})
	}
	for _, ref := range result.References {
		if ref.Name == t.Placeholder {
			edits = append(edits, protocol.TextEdit{Range: ref.Range, NewText: newName})
		}
	}
	return edits
}
