// Package symbols defines the model produced by parsing a dae configuration:
// definitions, references to them and the diagnostics found along the way.
package symbols

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type Kind string

const (
	KindSection      Kind = "section"
	KindGroup        Kind = "group"
	KindSubscription Kind = "subscription"
	KindNode         Kind = "node"
	KindUpstream     Kind = "upstream"
	KindParameter    Kind = "parameter"
)

// Indexable reports whether symbols of this kind can be referenced by name.
func (k Kind) Indexable() bool {
	return k != KindSection && k != KindParameter
}

// Symbol is a named definition. Children holds indices into the arena of the
// ParseResult that owns the symbol.
type Symbol struct {
	Name      string         `json:"name" yaml:"name"`
	Kind      Kind           `json:"kind" yaml:"kind"`
	Range     protocol.Range `json:"range" yaml:"range"`
	NameRange protocol.Range `json:"nameRange" yaml:"nameRange"`
	Detail    string         `json:"detail,omitempty" yaml:"detail,omitempty"`
	Children  []int          `json:"children,omitempty" yaml:"children,omitempty"`
}

// Reference is a usage of a name with the kind inferred from its context.
type Reference struct {
	Name  string         `json:"name" yaml:"name"`
	Range protocol.Range `json:"range" yaml:"range"`
	Kind  Kind           `json:"kind" yaml:"kind"`
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type Diagnostic struct {
	Message  string         `json:"message" yaml:"message"`
	Range    protocol.Range `json:"range" yaml:"range"`
	Severity Severity       `json:"severity" yaml:"severity"`
}

// ParseResult is the outcome of parsing one version of a document. It is not
// modified after it has been returned.
type ParseResult struct {
	Symbols     []Symbol     `json:"symbols" yaml:"symbols"`
	Roots       []int        `json:"roots" yaml:"roots"`
	References  []Reference  `json:"references" yaml:"references"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

// Walk visits every symbol reachable from the roots in document order. The
// callback receives the arena index and the depth of the symbol.
func (r *ParseResult) Walk(fn func(index, depth int)) {
	var visit func(index, depth int)
	visit = func(index, depth int) {
		fn(index, depth)
		for _, child := range r.Symbols[index].Children {
			visit(child, depth+1)
		}
	}
	for _, root := range r.Roots {
		visit(root, 0)
	}
}

// Contains reports whether pos lies within rng. The end is inclusive so that a
// cursor placed right after an identifier still hits it.
func Contains(rng protocol.Range, pos protocol.Position) bool {
	if pos.Line < rng.Start.Line || pos.Line > rng.End.Line {
		return false
	}
	if pos.Line == rng.Start.Line && pos.Character < rng.Start.Character {
		return false
	}
	if pos.Line == rng.End.Line && pos.Character > rng.End.Character {
		return false
	}
	return true
}

// SymbolAt returns the arena index of the symbol whose name range contains
// pos, or -1.
func (r *ParseResult) SymbolAt(pos protocol.Position) int {
	for i := range r.Symbols {
		if Contains(r.Symbols[i].NameRange, pos) {
			return i
		}
	}
	return -1
}

// ReferenceAt returns the reference whose range contains pos.
func (r *ParseResult) ReferenceAt(pos protocol.Position) (Reference, bool) {
	for _, ref := range r.References {
		if Contains(ref.Range, pos) {
			return ref, true
		}
	}
	return Reference{}, false
}
