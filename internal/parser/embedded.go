package parser

import (
	"regexp"
	"strings"

	"github.com/daeuniverse/daed-sub000/internal/dsl"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

var (
	subtagRe   = regexp.MustCompile(`\bsubtag\(([^)]*)\)`)
	nameRe     = regexp.MustCompile(`\bname\(([^)]*)\)`)
	upstreamRe = regexp.MustCompile(`\bupstream\(([^)]*)\)`)
	arrowRe    = regexp.MustCompile(`->\s*([A-Za-z_][\w-]*)`)
	identRe    = regexp.MustCompile(`^[A-Za-z_][\w-]*$`)
)

// embedded records the references found inside a value or rule condition
// that starts at byte column col.
func (s *state) embedded(text string, line, col int) {
	if text == "" {
		return
	}
	for _, arg := range arguments(subtagRe, text) {
		name := strings.TrimSpace(strings.TrimPrefix(arg.text, "regex:"))
		name = strings.TrimPrefix(unquote(name), "^")
		if strings.Contains(name, ":") {
			continue
		}
		s.argument(arg, name, symbols.KindSubscription, line, col)
	}
	for _, arg := range arguments(nameRe, text) {
		if strings.Contains(arg.text, ":") {
			continue
		}
		s.argument(arg, arg.text, symbols.KindNode, line, col)
	}
	if s.section != "dns" {
		return
	}
	for _, m := range arrowRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		if !dsl.IsOutbound(name) {
			s.reference(name, symbols.KindUpstream, line, col+m[2])
		}
	}
	for _, arg := range arguments(upstreamRe, text) {
		if dsl.IsOutbound(arg.text) {
			continue
		}
		s.argument(arg, arg.text, symbols.KindUpstream, line, col)
	}
}

// argument records name as a reference when it is identifier-like. name is a
// substring of arg.text.
func (s *state) argument(arg argument, name string, kind symbols.Kind, line, col int) {
	if !identRe.MatchString(name) {
		return
	}
	offset := arg.offset + strings.Index(arg.text, name)
	s.reference(name, kind, line, col+offset)
}

func unquote(s string) string {
	if n := len(s); n >= 2 && (s[0] == '\'' || s[0] == '"') && s[n-1] == s[0] {
		return s[1 : n-1]
	}
	return s
}

type argument struct {
	text   string
	offset int
}

// arguments returns the comma separated, trimmed and unquoted arguments of
// every call matched by re, with their byte offsets in text.
func arguments(re *regexp.Regexp, text string) []argument {
	var out []argument
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		start := m[2]
		for _, part := range strings.Split(text[m[2]:m[3]], ",") {
			raw := part
			part = strings.TrimSpace(part)
			offset := start + strings.Index(raw, part)
			if unquoted := unquote(part); unquoted != part {
				part = unquoted
				offset++
			}
			if part != "" {
				out = append(out, argument{text: part, offset: offset})
			}
			start += len(raw) + 1
		}
	}
	return out
}
