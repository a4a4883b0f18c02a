// Package query answers editor requests about dae configuration documents.
// The package level functions are pure functions of a parse result and the
// document text; Engine resolves documents through the parse cache first.
package query

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/cache"
	"github.com/daeuniverse/daed-sub000/internal/manager"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

// GroupSource supplies group names that are defined outside the document.
type GroupSource interface {
	Names() []string
}

type Engine struct {
	cache  *cache.Cache
	groups GroupSource
}

// NewEngine creates an Engine. groups may be nil.
func NewEngine(c *cache.Cache, groups GroupSource) *Engine {
	return &Engine{cache: c, groups: groups}
}

// Parse returns the parse result of the document's current version.
func (e *Engine) Parse(doc manager.Document) symbols.ParseResult {
	return e.cache.Get(doc)
}

func (e *Engine) Hover(doc manager.Document, pos protocol.Position) *protocol.Hover {
	result := e.cache.Get(doc)
	return Hover(&result, doc.Text, pos)
}

func (e *Engine) Definition(doc manager.Document, pos protocol.Position) *protocol.Range {
	result := e.cache.Get(doc)
	return Definition(&result, pos)
}

func (e *Engine) References(doc manager.Document, pos protocol.Position, includeDeclaration bool) []protocol.Range {
	result := e.cache.Get(doc)
	return References(&result, pos, includeDeclaration)
}

func (e *Engine) PrepareRename(doc manager.Document, pos protocol.Position) *RenameTarget {
	result := e.cache.Get(doc)
	return PrepareRename(&result, pos)
}

func (e *Engine) Rename(doc manager.Document, pos protocol.Position, newName string) []protocol.TextEdit {
	result := e.cache.Get(doc)
	return Rename(&result, pos, newName)
}

func (e *Engine) Completion(doc manager.Document, pos protocol.Position) []protocol.CompletionItem {
	result := e.cache.Get(doc)
	var groups []string
	if e.groups != nil {
		groups = e.groups.Names()
	}
	return Completion(&result, doc.Text, pos, groups)
}

func (e *Engine) SemanticTokens(doc manager.Document) *protocol.SemanticTokens {
	return SemanticTokens(doc.Text)
}

func (e *Engine) DocumentSymbols(doc manager.Document) []protocol.DocumentSymbol {
	result := e.cache.Get(doc)
	return DocumentSymbols(&result)
}

func (e *Engine) Diagnostics(doc manager.Document, source string) []protocol.Diagnostic {
	result := e.cache.Get(doc)
	return Diagnostics(&result, source)
}
