// Package docs holds the editor-facing documentation of the dae
// configuration language: sections, parameters and their legal values,
// rule functions, outbounds and type prefixes.
package docs

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Entry documents one name of the language.
type Entry struct {
	Name string
	// Block is the section or block the entry belongs to, if any.
	Block string
	// Detail is a one-line summary shown next to completion items.
	Detail string
	// Doc is markdown shown on hover.
	Doc string
	// Values lists the legal values of a parameter.
	Values []string
	// Snippet is inserted by completion instead of Name when set.
	Snippet string
}

// Table is an insertion-ordered set of entries keyed by name.
type Table struct {
	m *orderedmap.OrderedMap[string, Entry]
}

func newTable(entries ...Entry) Table {
	m := orderedmap.New[string, Entry]()
	for _, e := range entries {
		m.Set(e.Name, e)
	}
	return Table{m: m}
}

// Get returns the entry called name.
func (t Table) Get(name string) (Entry, bool) {
	return t.m.Get(name)
}

// Entries returns all entries in declaration order.
func (t Table) Entries() []Entry {
	out := make([]Entry, 0, t.m.Len())
	for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of entries.
func (t Table) Len() int {
	return t.m.Len()
}

// Value returns the documentation of a legal value of parameter key.
func Value(key, value string) (string, bool) {
	values, ok := PropertyValues[key]
	if !ok {
		return "", false
	}
	return values.Get(value)
}

// ValueTable is an ordered value-to-doc map of one parameter.
type ValueTable struct {
	m *orderedmap.OrderedMap[string, string]
}

func values(pairs ...string) ValueTable {
	m := orderedmap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return ValueTable{m: m}
}

func (v ValueTable) Get(value string) (string, bool) {
	return v.m.Get(value)
}

// Names returns the values in declaration order.
func (v ValueTable) Names() []string {
	out := make([]string, 0, v.m.Len())
	for pair := v.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// LegalValues returns the enumerated values of a parameter, or nil.
func LegalValues(key string) []string {
	if values, ok := PropertyValues[key]; ok {
		return values.Names()
	}
	if e, ok := Parameters.Get(key); ok {
		return e.Values
	}
	return nil
}
