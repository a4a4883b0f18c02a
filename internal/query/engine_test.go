package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daeuniverse/daed-sub000/internal/cache"
	"github.com/daeuniverse/daed-sub000/internal/manager"
	"github.com/daeuniverse/daed-sub000/internal/parser"
	"github.com/daeuniverse/daed-sub000/internal/query"
)

type staticGroups []string

func (g staticGroups) Names() []string { return g }

func TestEngineParsesOncePerVersion(t *testing.T) {
	c := cache.New(parser.Parse)
	engine := query.NewEngine(c, staticGroups{"catalog_group"})
	doc := manager.Document{URI: "file:///config.dae", Version: 1, Text: config}

	engine.Hover(doc, at(1, 4))
	engine.Definition(doc, at(6, 19))
	engine.References(doc, at(1, 4), true)
	engine.PrepareRename(doc, at(1, 4))
	engine.Rename(doc, at(1, 4), "renamed")
	engine.DocumentSymbols(doc)
	engine.Diagnostics(doc, "dae")
	items := engine.Completion(doc, at(12, 12))

	assert.Equal(t, int64(1), c.Parses())
	assert.Contains(t, labels(items), "catalog_group")

	doc.Version = 2
	engine.Hover(doc, at(1, 4))
	assert.Equal(t, int64(2), c.Parses())
}

func TestEngineWithoutGroups(t *testing.T) {
	engine := query.NewEngine(cache.New(parser.Parse), nil)
	doc := manager.Document{URI: "file:///config.dae", Version: 1, Text: "routing {\n  fallback: "}

	items := engine.Completion(doc, at(1, 12))
	assert.Contains(t, labels(items), "direct")

	tokens := engine.SemanticTokens(doc)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.Data)
}
