package dsl_test

import (
	"testing"

	"github.com/daeuniverse/daed-sub000/internal/dsl"
)

func TestVocabulary(t *testing.T) {
	tests := []struct {
		name       string
		section    bool
		subsection bool
		outbound   bool
	}{
		{name: "global", section: true},
		{name: "dns", section: true},
		{name: "routing", section: true, subsection: true},
		{name: "upstream", subsection: true},
		{name: "fixed_domain_ttl", subsection: true},
		{name: "must_proxy", outbound: true},
		{name: "accept", outbound: true},
		{name: "asis"},
		{name: "my_group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dsl.IsSection(tt.name); got != tt.section {
				t.Errorf("IsSection(%q) = %v, want %v", tt.name, got, tt.section)
			}
			if got := dsl.IsSubsection(tt.name); got != tt.subsection {
				t.Errorf("IsSubsection(%q) = %v, want %v", tt.name, got, tt.subsection)
			}
			if got := dsl.IsOutbound(tt.name); got != tt.outbound {
				t.Errorf("IsOutbound(%q) = %v, want %v", tt.name, got, tt.outbound)
			}
		})
	}
}
