// Package lexer provides tokenization for ECMAScript module source text.
//
// The lexer is deliberately shallow: it understands enough of the grammar
// (strings, template literals, comments, regular expression literals) to
// never mistake their contents for module syntax, and nothing more.
package lexer

import (
	"github.com/esrename/esrename/internal/types"
)

// Token is a token with kind and source span.
type Token struct {
	Kind TokenKind
	Span types.Span
	// NewlineBefore reports whether a line terminator separates this
	// token from the previous one. Statement boundaries under automatic
	// semicolon insertion depend on it.
	NewlineBefore bool
}

// NewToken creates a new token.
func NewToken(kind TokenKind, span types.Span) Token {
	return Token{Kind: kind, Span: span}
}

// TokenKind identifies a token type.
type TokenKind int

const (
	// === Special ===

	// TokError is a lexical error.
	TokError TokenKind = iota
	// TokEOF is end of input.
	TokEOF

	// === Identifiers and literals ===

	// TokIdent is an identifier or a reserved word with no dedicated kind.
	TokIdent
	// TokNumber is a numeric literal.
	TokNumber
	// TokString is a single- or double-quoted string literal.
	TokString
	// TokTemplate is a complete template literal, substitutions included.
	TokTemplate
	// TokRegExp is a regular expression literal, flags included.
	TokRegExp

	// === Punctuation ===

	// TokLBrace is '{'.
	TokLBrace
	// TokRBrace is '}'.
	TokRBrace
	// TokLParen is '('.
	TokLParen
	// TokRParen is ')'.
	TokRParen
	// TokLBracket is '['.
	TokLBracket
	// TokRBracket is ']'.
	TokRBracket
	// TokSemicolon is ';'.
	TokSemicolon
	// TokComma is ','.
	TokComma
	// TokDot is '.'.
	TokDot
	// TokStar is '*'.
	TokStar
	// TokPunct is any other operator or punctuator.
	TokPunct

	// === Module keywords ===

	// TokKwImport is 'import'.
	TokKwImport
	// TokKwExport is 'export'.
	TokKwExport
	// TokKwFrom is the contextual keyword 'from'.
	TokKwFrom
	// TokKwAs is the contextual keyword 'as'.
	TokKwAs
	// TokKwDefault is 'default'.
	TokKwDefault
	// TokKwWith is 'with', which introduces import attributes.
	TokKwWith
	// TokKwAssert is the legacy import assertion keyword 'assert'.
	TokKwAssert

	tokenKindCount
)

var tokenKindNames = [...]string{
	TokError:     "Error",
	TokEOF:       "EOF",
	TokIdent:     "Ident",
	TokNumber:    "Number",
	TokString:    "String",
	TokTemplate:  "Template",
	TokRegExp:    "RegExp",
	TokLBrace:    "LBrace",
	TokRBrace:    "RBrace",
	TokLParen:    "LParen",
	TokRParen:    "RParen",
	TokLBracket:  "LBracket",
	TokRBracket:  "RBracket",
	TokSemicolon: "Semicolon",
	TokComma:     "Comma",
	TokDot:       "Dot",
	TokStar:      "Star",
	TokPunct:     "Punct",
	TokKwImport:  "import",
	TokKwExport:  "export",
	TokKwFrom:    "from",
	TokKwAs:      "as",
	TokKwDefault: "default",
	TokKwWith:    "with",
	TokKwAssert:  "assert",
}

func (k TokenKind) String() string {
	if k >= 0 && k < tokenKindCount {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// IsKeyword reports whether the kind is one of the module keywords.
func (k TokenKind) IsKeyword() bool {
	return k >= TokKwImport && k < tokenKindCount
}

// IsIdentifierLike reports whether a token of this kind can stand in a
// binding or export-name position.
func (k TokenKind) IsIdentifierLike() bool {
	return k == TokIdent || k.IsKeyword()
}
