package query

import (
	"sort"

	"github.com/dlclark/regexp2"
	"github.com/gofrs/uuid/v5"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/daeuniverse/daed-sub000/internal/dsl"
	"github.com/daeuniverse/daed-sub000/internal/scanner"
	"github.com/daeuniverse/daed-sub000/internal/textedit"
)

// TokenTypes is the semantic token legend. A token's type is its index.
var TokenTypes = []string{
	"comment",
	"namespace",
	"property",
	"keyword",
	"variable",
	"function",
	"type",
	"operator",
}

const (
	tokenComment = iota
	tokenNamespace
	tokenProperty
	tokenKeyword
	tokenVariable
	tokenFunction
	tokenType
	tokenOperator
)

var (
	blockNameRe     = regexp2.MustCompile(`(?<=(?:^|[{};])\s*)[A-Za-z_][\w-]*(?=\s*\{)`, regexp2.None)
	keyRe           = regexp2.MustCompile(`(?<=(?:^|[{;])\s*)[A-Za-z_][\w-]*(?=\s*:)`, regexp2.None)
	outboundTokenRe = regexp2.MustCompile(`(?<=(?:->|\bfallback\s*:)\s*)[A-Za-z_][\w-]*`, regexp2.None)
	functionRe      = regexp2.MustCompile(`\b[A-Za-z_][\w-]*(?=\s*\()`, regexp2.None)
	typePrefixRe    = regexp2.MustCompile(`(?<=[(,]\s*)(?:geosite|geoip|full|suffix|keyword|regex|ext)(?=:)`, regexp2.None)
	operatorRe      = regexp2.MustCompile(`&&|!(?!=)`, regexp2.None)
)

type token struct {
	line, start, length uint32
	kind                int
}

// SemanticTokens classifies every line of text independently and returns the
// delta encoded token stream.
func SemanticTokens(text string) *protocol.SemanticTokens {
	var tokens []token
	for i, line := range textedit.Lines(text) {
		tokens = append(tokens, lineTokens(uint32(i), line)...)
	}

	sort.SliceStable(tokens, func(a, b int) bool {
		if tokens[a].line != tokens[b].line {
			return tokens[a].line < tokens[b].line
		}
		return tokens[a].start < tokens[b].start
	})

	id := uuid.Must(uuid.NewV4()).String()
	return &protocol.SemanticTokens{ResultID: &id, Data: encode(tokens)}
}

func lineTokens(n uint32, line string) []token {
	code, comment := scanner.SplitComment(line)

	// Columns are computed on the original runes; quoted text is masked so
	// that nothing inside a string literal is classified.
	runes := []rune(line)
	cols := make([]uint32, len(runes)+1)
	for i, r := range runes {
		cols[i+1] = cols[i] + 1
		if r > 0xFFFF {
			cols[i+1]++
		}
	}
	var masked []rune
	for _, seg := range scanner.Segments(code) {
		for _, r := range seg.Text {
			if seg.Quoted {
				r = ' '
			}
			masked = append(masked, r)
		}
	}
	subject := string(masked)

	var tokens []token
	taken := map[int]bool{}
	add := func(start, length, kind int) {
		if taken[start] || length == 0 {
			return
		}
		taken[start] = true
		tokens = append(tokens, token{
			line:   n,
			start:  cols[start],
			length: cols[start+length] - cols[start],
			kind:   kind,
		})
	}
	each := func(re *regexp2.Regexp, fn func(start, length int, word string)) {
		m, _ := re.FindStringMatch(subject)
		for m != nil {
			fn(m.Index, m.Length, m.String())
			m, _ = re.FindNextMatch(m)
		}
	}

	if comment != "" {
		start := len(masked)
		add(start, len(runes)-start, tokenComment)
	}
	each(blockNameRe, func(start, length int, word string) {
		if dsl.IsSection(word) || dsl.IsSubsection(word) {
			add(start, length, tokenNamespace)
		} else {
			add(start, length, tokenVariable)
		}
	})
	each(keyRe, func(start, length int, word string) {
		if word == "fallback" {
			add(start, length, tokenKeyword)
		} else {
			add(start, length, tokenProperty)
		}
	})
	each(outboundTokenRe, func(start, length int, word string) {
		if dsl.IsOutbound(word) {
			add(start, length, tokenKeyword)
		} else {
			add(start, length, tokenVariable)
		}
	})
	each(typePrefixRe, func(start, length int, _ string) {
		add(start, length, tokenType)
	})
	each(functionRe, func(start, length int, _ string) {
		add(start, length, tokenFunction)
	})
	each(operatorRe, func(start, length int, _ string) {
		add(start, length, tokenOperator)
	})
	return tokens
}

// encode produces the relative encoding of the semantic tokens protocol:
// line delta, start delta, length, type and modifiers per token.
func encode(tokens []token) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)
	var prevLine, prevStart uint32
	for _, t := range tokens {
		deltaLine := t.line - prevLine
		deltaStart := t.start
		if deltaLine == 0 {
			deltaStart = t.start - prevStart
		}
		data = append(data, deltaLine, deltaStart, t.length, protocol.UInteger(t.kind), 0)
		prevLine, prevStart = t.line, t.start
	}
	return data
}
