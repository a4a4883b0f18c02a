// Package cursor works out where in the block structure a position lies.
// It rescans text up to the cursor instead of using a parse result, so that
// it reflects the document as of the cursor even while a line is half typed.
package cursor

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/dsl"
	"github.com/daeuniverse/daed-sub000/internal/scanner"
	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

type Context struct {
	// Section is the enclosing top-level section, or "".
	Section string
	// Subsection is the innermost enclosing subsection, or "".
	Subsection string
	IsDNS      bool
	IsRouting  bool
	// SymbolPath lists the names of the enclosing blocks, outermost first.
	SymbolPath []string
	// Prefix is the code on the cursor line before the cursor.
	Prefix string
}

// Depth is the number of blocks enclosing the cursor.
func (c Context) Depth() int {
	return len(c.SymbolPath)
}

// Parent is the name of the innermost enclosing block, or "".
func (c Context) Parent() string {
	if len(c.SymbolPath) == 0 {
		return ""
	}
	return c.SymbolPath[len(c.SymbolPath)-1]
}

func Analyze(text string, pos protocol.Position) Context {
	lines := textedit.Lines(text)
	last := int(pos.Line)
	if last >= len(lines) {
		last = len(lines) - 1
	}

	var (
		ctx         Context
		path        []string
		pending     string
		sawUpstream bool
	)
	for i := 0; i <= last; i++ {
		line := lines[i]
		if i == int(pos.Line) {
			line = line[:textedit.ByteColumn(line, pos.Character)]
		}
		code, _ := scanner.SplitComment(line)
		if i == int(pos.Line) {
			ctx.Prefix = code
		}

		for _, st := range scanner.Statements(i, code) {
			if st.Text == "{" && pending != "" {
				path = append(path, pending)
				pending = ""
				continue
			}
			pending = ""

			l := scanner.Classify(st.Text)
			switch l.Kind {
			case scanner.LineBlockOpen:
				if l.Name == "upstream" {
					sawUpstream = true
				}
				if l.Open {
					path = append(path, l.Name)
				} else {
					pending = l.Name
				}
			case scanner.LineBlockClose:
				if len(path) > 0 {
					path = path[:len(path)-1]
				}
			}
		}
	}

	ctx.SymbolPath = path
	if len(path) > 0 && dsl.IsSection(path[0]) {
		ctx.Section = path[0]
	}
	for i := len(path) - 1; i >= 1; i-- {
		if dsl.IsSubsection(path[i]) {
			ctx.Subsection = path[i]
			break
		}
	}
	ctx.IsDNS = ctx.Section == "dns" || sawUpstream
	ctx.IsRouting = ctx.Section == "routing" ||
		ctx.Subsection == "routing" || ctx.Subsection == "request" || ctx.Subsection == "response"
	return ctx
}

// WordAt returns the word containing the cursor and the byte offsets of its
// bounds in line. Words are made of letters, digits and '_', '+', '-'.
func WordAt(line string, col int) (word string, start, end int) {
	if col > len(line) {
		col = len(line)
	}
	start, end = col, col
	for start > 0 && isWordByte(line[start-1]) {
		start--
	}
	for end < len(line) && isWordByte(line[end]) {
		end++
	}
	if end > start && end < len(line) && line[end-1] == '-' && line[end] == '>' {
		end--
	}
	return line[start:end], start, end
}

func isWordByte(c byte) bool {
	return c == '_' || c == '+' || c == '-' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// LineAt returns line n of text, or "" when it does not exist.
func LineAt(text string, n uint32) string {
	lines := textedit.Lines(text)
	if int(n) >= len(lines) {
		return ""
	}
	return lines[n]
}

