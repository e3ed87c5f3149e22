// Package ast defines the syntax tree produced by the module parser.
//
// The tree is flat: a module is a sequence of top-level statements, and
// only import declarations and re-exports carry structure. Everything
// else is kept as an opaque span of the original text so that printing
// an unmodified tree reproduces the source byte for byte.
package ast

import (
	"github.com/esrename/esrename/internal/types"
)

// Module is the top-level AST node for a parsed source file.
type Module struct {
	// Source is the text the module was parsed from. Statement and
	// literal spans index into it.
	Source []byte
	Body   []*Statement
	Span   types.Span
}

// NewModule creates an empty Module over the given source.
func NewModule(source []byte) *Module {
	return &Module{
		Source: source,
		Span:   types.NewSpan(0, types.ByteOffset(len(source))),
	}
}

// Append adds a statement to the end of the module body.
func (m *Module) Append(stmt *Statement) {
	m.Body = append(m.Body, stmt)
}

// Modified reports whether any source literal in the module has been
// assigned a value different from the one it was parsed with.
func (m *Module) Modified() bool {
	for _, stmt := range m.Body {
		if stmt.Source != nil && stmt.Source.Modified() {
			return true
		}
	}
	return false
}
