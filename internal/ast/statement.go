package ast

import (
	"fmt"

	"github.com/esrename/esrename/internal/types"
)

// StmtKind discriminates top-level statements.
type StmtKind int

const (
	// StmtOther is any statement that does not reference another module.
	StmtOther StmtKind = iota
	// StmtImport is an import declaration, including side-effect imports.
	StmtImport
	// StmtExportFrom is an export declaration with a from clause.
	StmtExportFrom
)

func (k StmtKind) String() string {
	switch k {
	case StmtOther:
		return "other"
	case StmtImport:
		return "import"
	case StmtExportFrom:
		return "export-from"
	default:
		return fmt.Sprintf("StmtKind(%d)", int(k))
	}
}

// Statement is a top-level statement.
type Statement struct {
	Kind StmtKind
	Span types.Span
	// Source is the module specifier. Set for StmtImport and
	// StmtExportFrom, nil otherwise.
	Source *StringLit
	// TypeOnly marks TypeScript "import type" and "export type" forms.
	TypeOnly bool
}

// NewImport creates an import declaration statement.
func NewImport(source *StringLit, span types.Span) *Statement {
	return &Statement{Kind: StmtImport, Span: span, Source: source}
}

// NewExportFrom creates a re-export statement.
func NewExportFrom(source *StringLit, span types.Span) *Statement {
	return &Statement{Kind: StmtExportFrom, Span: span, Source: source}
}

// NewOther creates an opaque statement.
func NewOther(span types.Span) *Statement {
	return &Statement{Kind: StmtOther, Span: span}
}

// HasSource reports whether the statement names another module.
func (s *Statement) HasSource() bool {
	return s.Kind != StmtOther && s.Source != nil
}

// StringLit is a module specifier string literal.
type StringLit struct {
	// Value is the decoded specifier. Rewriting a statement means
	// assigning to Value; the printer re-quotes it.
	Value string
	// Original is the decoded specifier as parsed.
	Original string
	// Quote is the quote character used in the source, ' or ".
	Quote byte
	// Span covers the literal including its quotes.
	Span types.Span
}

// NewStringLit creates a literal whose value is unchanged from the source.
func NewStringLit(value string, quote byte, span types.Span) *StringLit {
	return &StringLit{Value: value, Original: value, Quote: quote, Span: span}
}

// Modified reports whether Value differs from the parsed value.
func (s *StringLit) Modified() bool {
	return s.Value != s.Original
}
