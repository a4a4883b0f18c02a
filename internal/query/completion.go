package query

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/cursor"
	"github.com/daeuniverse/daed-sub000/internal/docs"
	"github.com/daeuniverse/daed-sub000/internal/dsl"
	"github.com/daeuniverse/daed-sub000/internal/scanner"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

// Sort prefixes: user-defined names come before context entries, which come
// before the static catalog.
const (
	sortUser    = "0_"
	sortContext = "1_"
	sortStatic  = "2_"
)

var (
	argumentRe = regexp.MustCompile(`\b([A-Za-z_][\w]*)\(([^()]*)$`)
	keyValueRe = regexp.MustCompile(`^\s*([A-Za-z_][\w-]*)\s*:\s*([\w+-]*)$`)
	outboundRe = regexp.MustCompile(`(?:->|^\s*fallback\s*:)\s*[\w-]*$`)
)

// Completion offers completions for the cursor position. groups lists group
// names known outside the document.
func Completion(result *symbols.ParseResult, text string, pos protocol.Position, groups []string) []protocol.CompletionItem {
	ctx := cursor.Analyze(text, pos)
	prefix := currentStatement(ctx.Prefix)

	if m := argumentRe.FindStringSubmatch(prefix); m != nil {
		return argumentItems(result, m[1], m[2])
	}
	if outboundRe.MatchString(prefix) {
		return outboundItems(result, ctx, groups)
	}
	if m := keyValueRe.FindStringSubmatch(prefix); m != nil {
		if values := docs.LegalValues(m[1]); values != nil {
			return valueItems(m[1], m[2], values)
		}
	}
	return catalogItems(result, ctx, groups)
}

// currentStatement returns the statement being typed at the end of prefix.
func currentStatement(prefix string) string {
	statements := scanner.Statements(0, prefix)
	if len(statements) == 0 {
		return ""
	}
	last := statements[len(statements)-1].Text
	if strings.HasSuffix(last, "{") || last == "}" {
		return ""
	}
	return last
}

// argumentItems completes inside the parentheses of a rule function.
func argumentItems(result *symbols.ParseResult, fn, args string) []protocol.CompletionItem {
	partial := args
	if i := strings.LastIndexByte(partial, ','); i >= 0 {
		partial = partial[i+1:]
	}
	partial = strings.TrimLeft(strings.TrimSpace(partial), `'"`)

	var kind symbols.Kind
	switch fn {
	case "name":
		kind = symbols.KindNode
	case "subtag":
		kind = symbols.KindSubscription
	case "upstream":
		kind = symbols.KindUpstream
	default:
		if strings.Contains(partial, ":") {
			return []protocol.CompletionItem{}
		}
		return lo.Map(docs.TypePrefixes.Entries(), func(e docs.Entry, _ int) protocol.CompletionItem {
			return item(e.Name+":", protocol.CompletionItemKindEnumMember, e.Detail, e.Doc, sortStatic)
		})
	}

	names := symbolNames(result, kind)
	names = lo.Filter(names, func(n string, _ int) bool {
		return hasPrefixFold(n, partial)
	})
	return lo.Map(names, func(n string, _ int) protocol.CompletionItem {
		return item(n, protocol.CompletionItemKindReference, string(kind), "", sortUser)
	})
}

// outboundItems completes the target of a rule or fallback clause.
func outboundItems(result *symbols.ParseResult, ctx cursor.Context, groups []string) []protocol.CompletionItem {
	items := userNames(result, ctx, groups)
	for _, e := range docs.Outbounds.Entries() {
		if e.Block == "dns" && ctx.Section != "dns" {
			continue
		}
		items = append(items, item(e.Name, protocol.CompletionItemKindKeyword, e.Detail, e.Doc, sortStatic))
	}
	return items
}

func valueItems(key, partial string, values []string) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	for _, v := range values {
		if !hasPrefixFold(v, partial) {
			continue
		}
		doc, _ := docs.Value(key, v)
		items = append(items, item(v, protocol.CompletionItemKindEnumMember, key, doc, sortContext))
	}
	return items
}

// catalogItems offers the static catalog, preceded by entries for the
// current context and by user-defined names.
func catalogItems(result *symbols.ParseResult, ctx cursor.Context, groups []string) []protocol.CompletionItem {
	var items []protocol.CompletionItem

	if ctx.IsRouting {
		items = append(items, userNames(result, ctx, groups)...)
		block := "routing"
		if ctx.Section == "dns" {
			block = "dns"
		}
		for _, e := range docs.Functions.Entries() {
			if e.Block == block {
				items = append(items, snippet(e, protocol.CompletionItemKindFunction, sortContext))
			}
		}
		for _, e := range docs.Keywords.Entries() {
			items = append(items, snippet(e, protocol.CompletionItemKindKeyword, sortContext))
		}
	}
	if ctx.Section == "dns" && ctx.Depth() == 1 {
		for _, name := range []string{"upstream", "routing", "fixed_domain_ttl"} {
			e, _ := docs.Sections.Get(name)
			items = append(items, snippet(e, protocol.CompletionItemKindModule, sortContext))
		}
	}
	if ctx.Subsection == "routing" && ctx.Section == "dns" {
		for _, name := range []string{"request", "response"} {
			e, _ := docs.Sections.Get(name)
			items = append(items, snippet(e, protocol.CompletionItemKindModule, sortContext))
		}
	}

	if ctx.Depth() == 0 {
		for _, name := range dsl.Sections {
			e, _ := docs.Sections.Get(name)
			items = append(items, snippet(e, protocol.CompletionItemKindModule, sortStatic))
		}
	} else if ctx.Section != "group" || ctx.Depth() > 1 {
		for _, e := range docs.Parameters.Entries() {
			if e.Block == ctx.Section {
				items = append(items, snippet(e, protocol.CompletionItemKindProperty, sortStatic))
			}
		}
		if ctx.Section == "group" {
			for _, name := range []string{"name", "subtag"} {
				e, _ := docs.Functions.Get(name)
				items = append(items, snippet(e, protocol.CompletionItemKindFunction, sortStatic))
			}
		}
	}

	return lo.UniqBy(items, func(i protocol.CompletionItem) string { return i.Label })
}

// userNames lists the names a rule outbound can refer to in this context.
func userNames(result *symbols.ParseResult, ctx cursor.Context, groups []string) []protocol.CompletionItem {
	if ctx.Section == "dns" {
		return lo.Map(symbolNames(result, symbols.KindUpstream), func(n string, _ int) protocol.CompletionItem {
			return item(n, protocol.CompletionItemKindReference, "upstream", "", sortUser)
		})
	}
	names := lo.Uniq(append(symbolNames(result, symbols.KindGroup), groups...))
	names = lo.Reject(names, func(n string, _ int) bool { return dsl.IsOutbound(n) })
	return lo.Map(names, func(n string, _ int) protocol.CompletionItem {
		return item(n, protocol.CompletionItemKindReference, "group", "", sortUser)
	})
}

func symbolNames(result *symbols.ParseResult, kind symbols.Kind) []string {
	var names []string
	for _, s := range result.Symbols {
		if s.Kind == kind {
			names = append(names, s.Name)
		}
	}
	return lo.Uniq(names)
}

func hasPrefixFold(s, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
}

func item(label string, kind protocol.CompletionItemKind, detail, doc, sort string) protocol.CompletionItem {
	it := protocol.CompletionItem{
		Label:    label,
		Kind:     &kind,
		SortText: ptr(sort + label),
	}
	if detail != "" {
		it.Detail = ptr(detail)
	}
	if doc != "" {
		it.Documentation = protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: doc}
	}
	return it
}

func snippet(e docs.Entry, kind protocol.CompletionItemKind, sort string) protocol.CompletionItem {
	it := item(e.Name, kind, e.Detail, e.Doc, sort)
	if e.Snippet != "" {
		format := protocol.InsertTextFormatSnippet
		it.InsertText = ptr(e.Snippet)
		it.InsertTextFormat = &format
	}
	return it
}

func ptr[T any](v T) *T {
	return &v
}
