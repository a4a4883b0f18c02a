package query_test

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/parser"
	"github.com/daeuniverse/daed-sub000/internal/query"
	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

// complete runs completion with the cursor at the end of text.
func complete(text string, groups ...string) []protocol.CompletionItem {
	result := parser.Parse(text)
	return query.Completion(&result, text, textedit.EndOf(text), groups)
}

func labels(items []protocol.CompletionItem) []string {
	return lo.Map(items, func(i protocol.CompletionItem, _ int) string { return i.Label })
}

func sortText(items []protocol.CompletionItem, label string) string {
	for _, i := range items {
		if i.Label == label && i.SortText != nil {
			return *i.SortText
		}
	}
	return ""
}

func TestCompletionArguments(t *testing.T) {
	nodes := "node {\n  hk1: 'x'\n  hk2: 'y'\n  us1: 'z'\n}\nsubscription {\n  sub1: 'https://a'\n}\n"

	t.Run("name", func(t *testing.T) {
		got := complete(nodes + "group {\n  g {\n    filter: name(")
		assert.ElementsMatch(t, []string{"hk1", "hk2", "us1"}, labels(got))
	})

	t.Run("name with partial", func(t *testing.T) {
		got := complete(nodes + "group {\n  g {\n    filter: name(hk1, H")
		assert.ElementsMatch(t, []string{"hk1", "hk2"}, labels(got))
	})

	t.Run("subtag", func(t *testing.T) {
		got := complete(nodes + "group {\n  g {\n    filter: subtag('")
		assert.Equal(t, []string{"sub1"}, labels(got))
	})

	t.Run("type prefixes", func(t *testing.T) {
		got := complete("routing {\n  domain(")
		assert.Contains(t, labels(got), "geosite:")
	})
}

func TestCompletionValues(t *testing.T) {
	got := complete("global {\n  dial_mode: DOM")
	assert.Equal(t, []string{"domain", "domain+", "domain++"}, labels(got))

	got = complete("group {\n  g {\n    policy: ")
	assert.Equal(t, []string{"random", "fixed", "min", "min_avg10", "min_moving_avg"}, labels(got))

	got = complete("global { log_level: tr")
	assert.Equal(t, []string{"trace"}, labels(got))
}

func TestCompletionOutbounds(t *testing.T) {
	text := "group {\n  hk {\n    policy: min\n  }\n}\nrouting {\n  domain(geosite:cn) -> "
	got := complete(text, "from_catalog")

	names := labels(got)
	assert.Contains(t, names, "hk")
	assert.Contains(t, names, "from_catalog")
	assert.Contains(t, names, "direct")
	assert.NotContains(t, names, "asis")
	assert.Less(t, sortText(got, "hk"), sortText(got, "direct"))

	dns := "dns {\n  upstream {\n    alidns: 'udp://223.5.5.5:53'\n  }\n  routing {\n    request {\n      fallback: "
	got = complete(dns, "from_catalog")
	names = labels(got)
	assert.Contains(t, names, "alidns")
	assert.Contains(t, names, "asis")
	assert.NotContains(t, names, "from_catalog")
}

func TestCompletionCatalog(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		got := complete("")
		assert.Equal(t, []string{"global", "subscription", "node", "dns", "group", "routing"}, labels(got))
		for _, i := range got {
			assert.NotNil(t, i.InsertText, "section %s has a snippet", i.Label)
		}
	})

	t.Run("global", func(t *testing.T) {
		got := complete("global {\n  ")
		assert.Contains(t, labels(got), "log_level")
		assert.NotContains(t, labels(got), "policy")
	})

	t.Run("routing", func(t *testing.T) {
		got := complete("group {\n  hk {\n  }\n}\nrouting {\n  ", "remote")
		names := labels(got)
		assert.Contains(t, names, "domain")
		assert.Contains(t, names, "fallback")
		assert.NotContains(t, names, "qname")
		assert.True(t, strings.HasPrefix(sortText(got, "hk"), "0_"))
		assert.True(t, strings.HasPrefix(sortText(got, "remote"), "0_"))
		assert.Less(t, sortText(got, "hk"), sortText(got, "domain"))
	})

	t.Run("dns routing", func(t *testing.T) {
		got := complete("dns {\n  routing {\n    request {\n      ")
		names := labels(got)
		assert.Contains(t, names, "qname")
		assert.NotContains(t, names, "pname")
	})

	t.Run("dns", func(t *testing.T) {
		got := complete("dns {\n  ")
		names := labels(got)
		assert.Contains(t, names, "upstream")
		assert.Contains(t, names, "ipversion_prefer")
	})

	t.Run("group definition", func(t *testing.T) {
		got := complete("group {\n  hk {\n    ")
		names := labels(got)
		assert.Contains(t, names, "filter")
		assert.Contains(t, names, "policy")
		assert.Contains(t, names, "subtag")
	})
}
