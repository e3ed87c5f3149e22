package types

import (
	"bytes"
	"fmt"
)

// Severity of a lexer or parser diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// SpanDiagnostic is a lexer or parser message anchored to a source span.
type SpanDiagnostic struct {
	Severity Severity
	Span     Span
	Message  string
}

// Position is a 1-based line and column in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionOf converts a byte offset into a line/column position.
// Columns count bytes, not runes.
func PositionOf(source []byte, offset ByteOffset) Position {
	if int(offset) > len(source) {
		offset = ByteOffset(len(source))
	}
	prefix := source[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := int(offset) - (bytes.LastIndexByte(prefix, '\n') + 1) + 1
	return Position{Line: line, Column: col}
}
