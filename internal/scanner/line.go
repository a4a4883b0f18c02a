// Package scanner splits dae configuration text into comment-free
// statements and classifies them. Every consumer that needs to know where a
// comment starts or where a quoted string ends goes through this package.
package scanner

import (
	"regexp"
	"strings"

	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

// walk calls fn for every byte of s with whether that byte belongs to a
// quoted string (quote characters included). A backslash before a quote
// escapes it. Iteration stops when fn returns false.
func walk(s string, fn func(i int, quoted bool) bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && isQuote(s[i+1]) {
			if !fn(i, quote != 0) || !fn(i+1, quote != 0) {
				return
			}
			i++
			continue
		}
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
			if !fn(i, true) {
				return
			}
		case isQuote(c):
			quote = c
			if !fn(i, true) {
				return
			}
		default:
			if !fn(i, false) {
				return
			}
		}
	}
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"'
}

// SplitComment returns the code and comment portions of line. The comment
// starts at the first '#' outside a quoted string and includes the '#'.
func SplitComment(line string) (code, comment string) {
	cut := -1
	walk(line, func(i int, quoted bool) bool {
		if !quoted && line[i] == '#' {
			cut = i
			return false
		}
		return true
	})
	if cut < 0 {
		return line, ""
	}
	return line[:cut], line[cut:]
}

// Segment is a run of text that is either entirely inside or entirely
// outside quoted strings.
type Segment struct {
	Text   string
	Quoted bool
}

// Segments splits code into alternating quoted and unquoted runs.
func Segments(code string) []Segment {
	var segments []Segment
	start := 0
	state := false
	walk(code, func(i int, quoted bool) bool {
		if i > start && quoted != state {
			segments = append(segments, Segment{Text: code[start:i], Quoted: state})
			start = i
		}
		state = quoted
		return true
	})
	if start < len(code) {
		segments = append(segments, Segment{Text: code[start:], Quoted: state})
	}
	return segments
}

// Statement is one logical statement of a line, trimmed of surrounding
// whitespace. Col is the byte column of Text within the original line.
type Statement struct {
	Line int
	Col  int
	Text string
}

// Statements splits de-commented code into statements. A '{' ends the
// statement it belongs to, a '}' is a statement of its own and ';' separates
// statements. Braces and semicolons inside quotes are ignored.
func Statements(line int, code string) []Statement {
	var out []Statement
	start := 0
	emit := func(from, to int) {
		raw := code[from:to]
		text := strings.TrimSpace(raw)
		if text == "" {
			return
		}
		col := from + strings.Index(raw, text)
		out = append(out, Statement{Line: line, Col: col, Text: text})
	}
	walk(code, func(i int, quoted bool) bool {
		if quoted {
			return true
		}
		switch code[i] {
		case '{':
			emit(start, i+1)
			start = i + 1
		case '}':
			emit(start, i)
			emit(i, i+1)
			start = i + 1
		case ';':
			emit(start, i)
			start = i + 1
		}
		return true
	})
	emit(start, len(code))
	return out
}

// Document returns the statements of every line of text in order.
func Document(text string) []Statement {
	var out []Statement
	for i, l := range textedit.Lines(text) {
		code, _ := SplitComment(l)
		out = append(out, Statements(i, code)...)
	}
	return out
}

// Kind classifies a statement.
type Kind int

const (
	LineBlank Kind = iota
	LineBlockOpen
	LineFallback
	LineKeyValue
	LineRule
	LineBlockClose
	LineLiteral
)

var kindNames = [...]string{"blank", "block-open", "fallback", "key-value", "rule", "block-close", "literal"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Line is the classification of a statement. Columns are byte offsets within
// the statement text.
type Line struct {
	Kind Kind
	// Name is the block name, the key or the outbound of a fallback or rule.
	Name    string
	NameCol int
	// Value is the value of a key/value pair or the condition of a rule.
	Value    string
	ValueCol int
	// Open is set for a block opener that carries its '{'.
	Open bool
}

const ident = `[A-Za-z_][\w-]*`

var (
	blockOpenRe = regexp.MustCompile(`^(` + ident + `)\s*(\{)?$`)
	fallbackRe  = regexp.MustCompile(`^fallback\s*:\s*(` + ident + `)\s*(?:\([^)]*\))?$`)
	keyValueRe  = regexp.MustCompile(`^(` + ident + `)\s*:\s*(.*)$`)
	ruleRe      = regexp.MustCompile(`^(.*?)\s*->\s*(` + ident + `)\s*(?:\([^)]*\))?$`)
)

// Classify returns the classification of a single trimmed statement. The
// shapes are tried in a fixed order and the first match wins.
func Classify(text string) Line {
	if text == "" {
		return Line{Kind: LineBlank}
	}
	if m := blockOpenRe.FindStringSubmatchIndex(text); m != nil {
		return Line{
			Kind:    LineBlockOpen,
			Name:    text[m[2]:m[3]],
			NameCol: m[2],
			Open:    m[4] >= 0,
		}
	}
	if m := fallbackRe.FindStringSubmatchIndex(text); m != nil {
		return Line{Kind: LineFallback, Name: text[m[2]:m[3]], NameCol: m[2]}
	}
	if m := keyValueRe.FindStringSubmatchIndex(text); m != nil && !hasArrow(text) {
		return Line{
			Kind:     LineKeyValue,
			Name:     text[m[2]:m[3]],
			NameCol:  m[2],
			Value:    text[m[4]:m[5]],
			ValueCol: m[4],
		}
	}
	if hasArrow(text) {
		if m := ruleRe.FindStringSubmatchIndex(text); m != nil {
			return Line{
				Kind:     LineRule,
				Name:     text[m[4]:m[5]],
				NameCol:  m[4],
				Value:    text[m[2]:m[3]],
				ValueCol: m[2],
			}
		}
	}
	if text == "}" {
		return Line{Kind: LineBlockClose}
	}
	return Line{Kind: LineLiteral}
}

// hasArrow reports whether text contains "->" outside quotes.
func hasArrow(text string) bool {
	found := false
	walk(text, func(i int, quoted bool) bool {
		if !quoted && text[i] == '-' && i+1 < len(text) && text[i+1] == '>' {
			found = true
			return false
		}
		return true
	})
	return found
}
