// Package format re-indents dae configuration text and normalizes the
// spacing around operators. It works line by line and never looks inside
// quoted strings or comments.
package format

import (
	"regexp"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/scanner"
	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

type Options struct {
	TabSize      int
	InsertSpaces bool
}

const defaultTabSize = 2

// OptionsFrom reads formatting options sent by an editor.
func OptionsFrom(fo protocol.FormattingOptions) Options {
	opts := Options{TabSize: defaultTabSize, InsertSpaces: true}
	switch v := fo["tabSize"].(type) {
	case float64:
		opts.TabSize = int(v)
	case int:
		opts.TabSize = v
	case protocol.UInteger:
		opts.TabSize = int(v)
	}
	if v, ok := fo["insertSpaces"].(bool); ok {
		opts.InsertSpaces = v
	}
	return opts
}

func (o Options) indent() string {
	if !o.InsertSpaces {
		return "\t"
	}
	if o.TabSize <= 0 {
		return strings.Repeat(" ", defaultTabSize)
	}
	return strings.Repeat(" ", o.TabSize)
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

var rewrites = []rewrite{
	{regexp.MustCompile(`\s*->\s*`), " -> "},
	{regexp.MustCompile(`\s*&&\s*`), " && "},
	{regexp.MustCompile(`!\s+`), "!"},
	{regexp.MustCompile(`\s*,\s*`), ", "},
	{regexp.MustCompile(`\s*\{`), " {"},
	{regexp.MustCompile(`\{\s*(\S)`), "{ $1"},
	{regexp.MustCompile(`(\S)\s*\}`), "$1 }"},
	{regexp.MustCompile(`[ \t]{2,}`), " "},
}

// Format returns the formatted text. Formatting is idempotent.
func Format(text string, opts Options) string {
	indent := opts.indent()

	var out []string
	depth := 0
	blank := true
	for _, line := range textedit.Lines(text) {
		code, comment := scanner.SplitComment(line)
		code = normalize(code)
		comment = strings.TrimSpace(comment)

		if code == "" && comment == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false

		opens, closes, leading := braces(code)
		level := depth - leading
		if level < 0 {
			level = 0
		}
		depth += opens - closes
		if depth < 0 {
			depth = 0
		}

		switch {
		case code == "":
			out = append(out, strings.Repeat(indent, level)+comment)
		case comment == "":
			out = append(out, strings.Repeat(indent, level)+code)
		default:
			out = append(out, strings.Repeat(indent, level)+code+" "+comment)
		}
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n") + "\n"
}

// Edits returns a whole-document edit that formats text, or nil when the
// text is already formatted.
func Edits(text string, opts Options) []protocol.TextEdit {
	formatted := Format(text, opts)
	if formatted == text {
		return nil
	}
	return []protocol.TextEdit{{
		Range:   protocol.Range{End: textedit.EndOf(text)},
		NewText: formatted,
	}}
}

// normalize fixes spacing outside quoted strings.
func normalize(code string) string {
	var b strings.Builder
	segments := scanner.Segments(code)
	for i, seg := range segments {
		if seg.Quoted {
			b.WriteString(seg.Text)
			continue
		}
		s := seg.Text
		for _, rw := range rewrites {
			s = rw.re.ReplaceAllString(s, rw.repl)
		}
		if i > 0 && strings.HasPrefix(s, "}") {
			s = " " + s
		}
		if i < len(segments)-1 && strings.HasSuffix(s, "{") {
			s += " "
		}
		b.WriteString(s)
	}
	return strings.TrimSpace(b.String())
}

// braces counts unquoted braces of code and how many '}' it starts with.
func braces(code string) (opens, closes, leading int) {
	counting := true
	for _, seg := range scanner.Segments(code) {
		if seg.Quoted {
			counting = false
			continue
		}
		for _, c := range seg.Text {
			switch c {
			case '{':
				opens++
				counting = false
			case '}':
				closes++
				if counting {
					leading++
				}
			case ' ', '\t':
			default:
				counting = false
			}
		}
	}
	return opens, closes, leading
}

// Changed reports whether formatting would modify text.
func Changed(text string, opts Options) bool {
	return Format(text, opts) != text
}
