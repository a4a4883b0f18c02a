package graph

import (
	"fmt"
	"sort"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/resolver"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

// GraphData holds the nodes and links of the graph.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Node is a section or a referenceable definition.
// ID is unique across documents.
type Node struct {
	ID    string       `json:"id"`
	Label string       `json:"label"`
	Kind  symbols.Kind `json:"kind"`
	URI   string       `json:"uri"`
	Line  uint32       `json:"line"`
}

// Link points from the block containing a reference to the definition it
// resolves to.
type Link struct {
	Source string       `json:"source"`
	Target string       `json:"target"`
	Kind   symbols.Kind `json:"kind"`
}

func nodeID(uri string, s symbols.Symbol) string {
	return fmt.Sprintf("%s#%d:%d", uri, s.NameRange.Start.Line, s.NameRange.Start.Character)
}

func isNode(k symbols.Kind) bool {
	return k == symbols.KindSection || k.Indexable()
}

// Build returns the graph of one document. References that do not resolve
// produce no link.
func Build(uri string, result symbols.ParseResult) GraphData {
	data := GraphData{Nodes: []Node{}, Links: []Link{}}
	result.Walk(func(i, _ int) {
		s := result.Symbols[i]
		if !isNode(s.Kind) {
			return
		}
		data.Nodes = append(data.Nodes, Node{
			ID:    nodeID(uri, s),
			Label: s.Name,
			Kind:  s.Kind,
			URI:   uri,
			Line:  s.NameRange.Start.Line,
		})
	})

	idx := resolver.NewIndex(&result)
	for _, ref := range result.References {
		target, ok := idx.Resolve(ref.Name, ref.Kind)
		if !ok {
			continue
		}
		source, ok := owner(&result, ref.Range.Start)
		if !ok {
			continue
		}
		data.Links = append(data.Links, Link{
			Source: nodeID(uri, source),
			Target: nodeID(uri, target),
			Kind:   ref.Kind,
		})
	}
	return data
}

// owner finds the innermost node symbol whose range contains pos.
func owner(result *symbols.ParseResult, pos protocol.Position) (symbols.Symbol, bool) {
	best, bestDepth := -1, -1
	result.Walk(func(i, depth int) {
		s := result.Symbols[i]
		if isNode(s.Kind) && depth > bestDepth && symbols.Contains(s.Range, pos) {
			best, bestDepth = i, depth
		}
	})
	if best < 0 {
		return symbols.Symbol{}, false
	}
	return result.Symbols[best], true
}

// merge concatenates per-document graphs in URI order.
func merge(docs map[string]GraphData) GraphData {
	uris := make([]string, 0, len(docs))
	for uri := range docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)

	out := GraphData{Nodes: []Node{}, Links: []Link{}}
	for _, uri := range uris {
		out.Nodes = append(out.Nodes, docs[uri].Nodes...)
		out.Links = append(out.Links, docs[uri].Links...)
	}
	return out
}
