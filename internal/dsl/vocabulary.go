// Package dsl holds the fixed vocabulary of the dae configuration language.
package dsl

// Sections are the names recognized as top-level blocks.
var Sections = []string{"global", "subscription", "node", "dns", "group", "routing"}

// Subsections are the names recognized as nested structural blocks.
var Subsections = []string{"upstream", "routing", "request", "response", "fixed_domain_ttl"}

// Outbounds are the built-in outbound identifiers. They are never reported as
// unresolved and never offered as user-defined names.
var Outbounds = []string{"proxy", "direct", "block", "must_direct", "must_proxy", "accept"}

var (
	sectionSet    = toSet(Sections)
	subsectionSet = toSet(Subsections)
	outboundSet   = toSet(Outbounds)
)

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// IsSection reports whether name is a top-level section name.
func IsSection(name string) bool {
	_, ok := sectionSet[name]
	return ok
}

// IsSubsection reports whether name is a nested subsection name.
func IsSubsection(name string) bool {
	_, ok := subsectionSet[name]
	return ok
}

// IsOutbound reports whether name is a built-in outbound.
func IsOutbound(name string) bool {
	_, ok := outboundSet[name]
	return ok
}
