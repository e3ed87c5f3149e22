// Package parser splits ECMAScript module source into top-level statements.
//
// Import declarations and re-exports ("export ... from") are parsed far
// enough to locate their module specifier. All other statements are kept
// as opaque spans. Dynamic import() calls and import.meta are expressions,
// not declarations, and are never reported as imports.
//
// The parser collects diagnostics instead of stopping at the first
// problem; Parse turns the first error into a *SyntaxError.
package parser

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/esrename/esrename/internal/ast"
	"github.com/esrename/esrename/internal/lexer"
	"github.com/esrename/esrename/internal/types"
)

// Parser converts a token stream into an AST module with diagnostics.
type Parser struct {
	source      []byte
	lex         *lexer.Lexer
	buf         [3]lexer.Token // lookahead buffer: buf[0]=current, buf[1]=peek(1), buf[2]=peek(2)
	prev        lexer.Token
	last        lexer.Token // last token consumed by the statement being parsed
	diagnostics []types.SpanDiagnostic
	types.Logger
}

// New returns a Parser that lexes the source and prepares for parsing.
// Pass nil for logger to disable logging.
func New(source []byte, logger *slog.Logger) *Parser {
	lex := lexer.New(source, types.Component(logger, "lexer"))
	p := &Parser{
		source: source,
		lex:    lex,
		Logger: types.Logger{L: logger},
	}
	p.buf[0] = lex.NextToken()
	p.buf[1] = lex.NextToken()
	p.buf[2] = lex.NextToken()
	p.Log(slog.LevelDebug, "parser initialized")
	return p
}

// Diagnostics returns lexer and parser diagnostics collected so far.
func (p *Parser) Diagnostics() []types.SpanDiagnostic {
	return slices.Concat(p.lex.Diagnostics(), p.diagnostics)
}

// ParseModule parses the complete source and returns its statements.
// Problems are recorded as diagnostics rather than causing failure.
func (p *Parser) ParseModule() *ast.Module {
	module := ast.NewModule(p.source)

	depth := 0
	var other *ast.Statement
	flush := func() {
		if other != nil {
			module.Append(other)
			other = nil
		}
	}

	for !p.isEOF() {
		tok := p.peek()

		if depth == 0 && p.prev.Kind != lexer.TokDot {
			var stmt *ast.Statement
			switch tok.Kind {
			case lexer.TokKwImport:
				if next := p.peekNth(1).Kind; next != lexer.TokLParen && next != lexer.TokDot {
					stmt = p.parseImport()
				}
			case lexer.TokKwExport:
				stmt = p.parseExportFrom()
			}
			if stmt != nil {
				flush()
				module.Append(stmt)
				continue
			}
		}

		p.advance()
		switch tok.Kind {
		case lexer.TokLBrace, lexer.TokLParen, lexer.TokLBracket:
			depth++
		case lexer.TokRBrace, lexer.TokRParen, lexer.TokRBracket:
			if depth == 0 {
				p.error(tok.Span, fmt.Sprintf("unbalanced %q", tok.Span.Text(p.source)))
			} else {
				depth--
			}
		}

		if other == nil {
			other = ast.NewOther(tok.Span)
		}
		other.Span.End = tok.Span.End
		if depth == 0 && tok.Kind == lexer.TokSemicolon {
			flush()
		}
	}
	flush()

	if depth > 0 {
		p.error(types.NewSpan(types.ByteOffset(len(p.source)), types.ByteOffset(len(p.source))),
			"unexpected end of input: unclosed bracket")
	}

	if p.Enabled(slog.LevelDebug) {
		imports := 0
		for _, stmt := range module.Body {
			if stmt.HasSource() {
				imports++
			}
		}
		p.Log(slog.LevelDebug, "parsed module",
			slog.Int("statements", len(module.Body)),
			slog.Int("imports", imports),
			slog.Int("diagnostics", len(p.diagnostics)))
	}
	return module
}

// === Token stream helpers ===

func (p *Parser) isEOF() bool {
	return p.peek().Kind == lexer.TokEOF
}

func (p *Parser) peek() lexer.Token {
	return p.buf[0]
}

func (p *Parser) peekNth(n int) lexer.Token {
	if n < len(p.buf) {
		return p.buf[n]
	}
	return p.buf[len(p.buf)-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.buf[0]
	if tok.Kind == lexer.TokEOF {
		return tok
	}
	p.buf[0] = p.buf[1]
	p.buf[1] = p.buf[2]
	p.buf[2] = p.lex.NextToken()
	p.prev = tok
	p.last = tok
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) text(tok lexer.Token) string {
	return string(tok.Span.Text(p.source))
}

func (p *Parser) error(span types.Span, message string) {
	p.diagnostics = append(p.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Span:     span,
		Message:  message,
	})
}

// isTypeModifier reports whether the current token is the TypeScript
// "type" modifier rather than a binding that happens to be named type.
func (p *Parser) isTypeModifier() bool {
	tok := p.peek()
	if tok.Kind != lexer.TokIdent || p.text(tok) != "type" {
		return false
	}
	switch p.peekNth(1).Kind {
	case lexer.TokLBrace, lexer.TokStar:
		return true
	case lexer.TokIdent, lexer.TokKwDefault:
		return true
	case lexer.TokKwFrom:
		// "import type from './x'" binds a default import named type,
		// "import type from from './x'" is a type-only default import.
		return p.peekNth(2).Kind == lexer.TokKwFrom
	}
	return false
}

// === Statements ===

// parseImport parses an import declaration starting at the import keyword.
// Returns nil without consuming input when the statement is not a module
// import declaration this parser understands (for example the TypeScript
// "import x = require()" form).
func (p *Parser) parseImport() *ast.Statement {
	start := p.peek().Span.Start
	next := p.peekNth(1)

	if next.Kind == lexer.TokString {
		p.advance() // import
		src := p.parseSpecifier()
		stmt := ast.NewImport(src, types.NewSpan(start, 0))
		return p.finishStatement(stmt, start)
	}
	if !p.importClauseFollows() {
		return nil
	}

	p.advance() // import
	typeOnly := p.isTypeModifier()
	if typeOnly {
		p.advance()
	}
	if !p.skipImportClause() {
		stmt := ast.NewImport(nil, types.NewSpan(start, 0))
		stmt.TypeOnly = typeOnly
		p.error(p.peek().Span, "expected 'from' in import declaration")
		return p.finishStatement(stmt, start)
	}
	p.advance() // from
	src := p.parseSpecifier()
	stmt := ast.NewImport(src, types.NewSpan(start, 0))
	stmt.TypeOnly = typeOnly
	return p.finishStatement(stmt, start)
}

// importClauseFollows checks the first tokens after the import keyword
// for something that can begin an import clause.
func (p *Parser) importClauseFollows() bool {
	next := p.peekNth(1)
	switch {
	case next.Kind == lexer.TokLBrace || next.Kind == lexer.TokStar:
		return true
	case next.Kind.IsIdentifierLike():
		after := p.peekNth(2).Kind
		return after == lexer.TokKwFrom || after == lexer.TokComma ||
			after == lexer.TokLBrace || after == lexer.TokStar || after.IsIdentifierLike()
	}
	return false
}

// skipImportClause consumes the bindings of an import declaration and
// stops at the from keyword. Returns false if from is not reached.
func (p *Parser) skipImportClause() bool {
	braces := 0
	for !p.isEOF() {
		tok := p.peek()
		switch tok.Kind {
		case lexer.TokKwFrom:
			// "from" is also a valid binding name: import { from } from 'x'
			if braces == 0 && !p.fromIsBinding() {
				return true
			}
		case lexer.TokLBrace:
			braces++
		case lexer.TokRBrace:
			braces--
			if braces < 0 {
				return false
			}
		case lexer.TokComma, lexer.TokStar:
		case lexer.TokString:
			if braces == 0 {
				return false
			}
		default:
			if !tok.Kind.IsIdentifierLike() {
				return false
			}
		}
		p.advance()
	}
	return false
}

// fromIsBinding reports whether the from keyword at the current position
// names a default binding ("import from from './x'") instead of starting
// the from clause.
func (p *Parser) fromIsBinding() bool {
	return p.prev.Kind == lexer.TokKwImport && p.peekNth(1).Kind == lexer.TokKwFrom
}

// parseExportFrom parses a re-export starting at the export keyword.
// Returns nil without consuming input when the export has no from clause.
func (p *Parser) parseExportFrom() *ast.Statement {
	start := p.peek().Span.Start
	offset := 1
	typeOnly := false
	if tok := p.peekNth(1); tok.Kind == lexer.TokIdent && p.text(tok) == "type" {
		if k := p.peekNth(2).Kind; k == lexer.TokLBrace || k == lexer.TokStar {
			offset = 2
			typeOnly = true
		}
	}

	switch p.peekNth(offset).Kind {
	case lexer.TokStar:
		p.advance() // export
		if typeOnly {
			p.advance()
		}
		p.advance() // *
		if p.check(lexer.TokKwAs) {
			p.advance()
			if name := p.peek(); name.Kind.IsIdentifierLike() || name.Kind == lexer.TokString {
				p.advance()
			}
		}
		stmt := ast.NewExportFrom(nil, types.NewSpan(start, 0))
		stmt.TypeOnly = typeOnly
		if !p.check(lexer.TokKwFrom) {
			p.error(p.peek().Span, "expected 'from' after 'export *'")
			return p.finishStatement(stmt, start)
		}
		p.advance() // from
		stmt.Source = p.parseSpecifier()
		return p.finishStatement(stmt, start)

	case lexer.TokLBrace:
		if !p.exportListHasFrom(offset) {
			return nil
		}
		p.advance() // export
		if typeOnly {
			p.advance()
		}
		for !p.check(lexer.TokRBrace) {
			p.advance()
		}
		p.advance() // }
		p.advance() // from
		stmt := ast.NewExportFrom(p.parseSpecifier(), types.NewSpan(start, 0))
		stmt.TypeOnly = typeOnly
		return p.finishStatement(stmt, start)
	}
	return nil
}

// exportListHasFrom looks past an export list to see whether a from clause
// follows it. The lookahead buffer is too short for that, so this scans a
// throwaway lexer positioned at the list.
func (p *Parser) exportListHasFrom(offset int) bool {
	brace := p.peekNth(offset)
	scan := lexer.New(p.source[brace.Span.Start:], nil)
	if tok := scan.NextToken(); tok.Kind != lexer.TokLBrace {
		return false
	}
	for {
		tok := scan.NextToken()
		switch tok.Kind {
		case lexer.TokRBrace:
			return scan.NextToken().Kind == lexer.TokKwFrom
		case lexer.TokEOF, lexer.TokLBrace, lexer.TokSemicolon:
			return false
		}
	}
}

// parseSpecifier consumes the module specifier string literal.
func (p *Parser) parseSpecifier() *ast.StringLit {
	tok := p.peek()
	if tok.Kind != lexer.TokString {
		if tok.Kind != lexer.TokError {
			p.error(tok.Span, "expected module specifier string")
		}
		return nil
	}
	p.advance()
	raw := tok.Span.Text(p.source)
	value, err := lexer.Unquote(raw)
	if err != nil {
		p.error(tok.Span, fmt.Sprintf("invalid module specifier %s: %v", raw, err))
		return nil
	}
	return ast.NewStringLit(value, raw[0], tok.Span)
}

// finishStatement consumes optional import attributes and the terminating
// semicolon, then closes the statement span.
func (p *Parser) finishStatement(stmt *ast.Statement, start types.ByteOffset) *ast.Statement {
	if (p.check(lexer.TokKwWith) || p.check(lexer.TokKwAssert)) &&
		p.peekNth(1).Kind == lexer.TokLBrace && !p.peek().NewlineBefore {
		p.advance()
		depth := 0
		for !p.isEOF() {
			tok := p.advance()
			if tok.Kind == lexer.TokLBrace {
				depth++
			} else if tok.Kind == lexer.TokRBrace {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	if p.check(lexer.TokSemicolon) {
		p.advance()
	}
	stmt.Span = types.NewSpan(start, p.last.Span.End)
	if p.TraceEnabled() && stmt.Source != nil {
		p.Trace("statement",
			slog.String("kind", stmt.Kind.String()),
			slog.String("source", stmt.Source.Value))
	}
	return stmt
}
