// Package textedit converts between LSP positions (UTF-16 based) and byte
// offsets, and applies content changes to in-memory documents.
package textedit

import (
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Lines splits a document into lines without their terminators.
func Lines(document string) []string {
	lines := strings.Split(document, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Column returns the number of UTF-16 code units in line[:byteCol].
func Column(line string, byteCol int) uint32 {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	if byteCol < 0 {
		byteCol = 0
	}
	var units uint32
	for _, r := range line[:byteCol] {
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return units
}

// ByteColumn returns the byte index in line matching a UTF-16 character
// offset. Offsets past the end of the line are clamped.
func ByteColumn(line string, character uint32) int {
	var units uint32
	for i, r := range line {
		if units >= character {
			return i
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
	}
	return len(line)
}

// Offset computes the byte offset of an LSP position in document.
func Offset(document string, pos protocol.Position) int {
	raw := strings.Split(document, "\n")
	line := int(pos.Line)
	if line >= len(raw) {
		return len(document)
	}
	offset := 0
	for i := 0; i < line; i++ {
		offset += len(raw[i]) + 1
	}
	return offset + ByteColumn(strings.TrimSuffix(raw[line], "\r"), pos.Character)
}

// PositionAt converts a byte offset into an LSP position.
func PositionAt(document string, offset int) protocol.Position {
	if offset > len(document) {
		offset = len(document)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := document[:offset]
	line := strings.Count(prefix, "\n")
	start := strings.LastIndexByte(prefix, '\n') + 1
	return protocol.Position{
		Line:      uint32(line),
		Character: Column(prefix[start:], len(prefix)-start),
	}
}

// Apply applies a single content change to document. A change without a
// range replaces the whole document.
func Apply(document string, change protocol.TextDocumentContentChangeEvent) string {
	if change.Range == nil {
		return change.Text
	}
	start := Offset(document, change.Range.Start)
	end := Offset(document, change.Range.End)
	if end < start {
		start, end = end, start
	}
	return document[:start] + change.Text + document[end:]
}

// EndOf returns the position just past the last character of document.
func EndOf(document string) protocol.Position {
	lines := Lines(document)
	last := lines[len(lines)-1]
	return protocol.Position{
		Line:      uint32(len(lines) - 1),
		Character: Column(last, len(last)),
	}
}

