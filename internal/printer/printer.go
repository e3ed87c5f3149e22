// Package printer renders a parsed module back to source text.
//
// Opaque text is copied from the original source unchanged. Only module
// specifiers whose value was changed are re-quoted, using the quote
// character the source used for that literal.
package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/esrename/esrename/internal/ast"
)

// Print returns the source of mod with every modified specifier replaced.
// An unmodified module prints as its original source.
func Print(mod *ast.Module) []byte {
	if mod == nil {
		return nil
	}
	if !mod.Modified() {
		return bytes.Clone(mod.Source)
	}

	var buf bytes.Buffer
	buf.Grow(len(mod.Source))
	pos := 0
	for _, stmt := range mod.Body {
		lit := stmt.Source
		if lit == nil || !lit.Modified() {
			continue
		}
		start, end := int(lit.Span.Start), int(lit.Span.End)
		buf.Write(mod.Source[pos:start])
		buf.WriteString(Quote(lit.Value, lit.Quote))
		pos = end
	}
	buf.Write(mod.Source[pos:])
	return buf.Bytes()
}

// Quote returns value as a string literal delimited by quote, which must
// be ' or "; anything else is treated as ".
func Quote(value string, quote byte) string {
	if quote != '\'' && quote != '"' {
		quote = '"'
	}
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte(quote)
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, value[i])
			i++
			continue
		}
		i += size
		switch {
		case r == rune(quote) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == 0x2028 || r == 0x2029:
			fmt.Fprintf(&b, `\u%04x`, r)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
