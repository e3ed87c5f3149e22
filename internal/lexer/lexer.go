package lexer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/esrename/esrename/internal/types"
)

// Lexer tokenizes ECMAScript module source text.
type Lexer struct {
	source      []byte
	pos         int
	prev        Token
	hasPrev     bool
	newline     bool   // line terminator seen since the previous token
	parens      []bool // per open '(': whether it follows if, while, for or with
	closedHead  bool   // the last ')' closed a control statement head
	diagnostics []types.SpanDiagnostic
	types.Logger
}

// New returns a Lexer that tokenizes the given source bytes.
func New(source []byte, logger *slog.Logger) *Lexer {
	l := &Lexer{
		source: source,
		Logger: types.Logger{L: logger},
	}
	l.skipPreamble()
	l.Log(slog.LevelDebug, "lexer initialized", slog.Int("bytes", len(source)))
	return l
}

// Diagnostics returns a copy of all collected diagnostics.
func (l *Lexer) Diagnostics() []types.SpanDiagnostic {
	return slices.Clone(l.diagnostics)
}

func (l *Lexer) traceToken(tok Token) {
	if l.TraceEnabled() {
		l.Trace("token",
			slog.String("kind", tok.Kind.String()),
			slog.Int("start", int(tok.Span.Start)),
			slog.Int("end", int(tok.Span.End)))
	}
}

// Tokenize consumes all source text and returns the token stream
// along with any diagnostics generated during lexing.
func (l *Lexer) Tokenize() ([]Token, []types.SpanDiagnostic) {
	estimatedTokens := max(len(l.source)/5, 64)
	tokens := make([]Token, 0, estimatedTokens)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	l.Log(slog.LevelDebug, "tokenization complete",
		slog.Int("tokens", len(tokens)),
		slog.Int("diagnostics", len(l.diagnostics)))
	return tokens, l.diagnostics
}

// NextToken advances the lexer and returns the next token.
// Returns TokEOF when all input is consumed.
func (l *Lexer) NextToken() Token {
	for {
		tok, retry := l.nextNormalToken()
		if retry {
			continue
		}
		l.prev = tok
		l.hasPrev = true
		l.traceToken(tok)
		return tok
	}
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	return l.source[l.pos], true
}

func (l *Lexer) peekAt(offset int) (byte, bool) {
	idx := l.pos + offset
	if idx >= len(l.source) {
		return 0, false
	}
	return l.source[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.pos >= len(l.source) {
		return 0, false
	}
	b := l.source[l.pos]
	l.pos++
	return b, true
}

func (l *Lexer) error(span types.Span, message string) {
	l.diagnostics = append(l.diagnostics, types.SpanDiagnostic{
		Severity: types.SeverityError,
		Span:     span,
		Message:  message,
	})
}

func (l *Lexer) spanFrom(start int) types.Span {
	return types.Span{
		Start: types.ByteOffset(start),
		End:   types.ByteOffset(l.pos),
	}
}

func (l *Lexer) token(kind TokenKind, start int) Token {
	return Token{
		Kind: kind,
		Span: l.spanFrom(start),
	}
}

// skipPreamble skips a UTF-8 byte order mark and a hashbang line.
func (l *Lexer) skipPreamble() {
	if len(l.source) >= 3 && l.source[0] == 0xEF && l.source[1] == 0xBB && l.source[2] == 0xBF {
		l.pos = 3
	}
	if b0, ok := l.peek(); ok && b0 == '#' {
		if b1, ok := l.peekAt(1); ok && b1 == '!' {
			l.skipToEOL()
		}
	}
}

// lineTerminatorLen returns the byte length of the line terminator at the
// current position, or 0 if there is none.
func (l *Lexer) lineTerminatorLen() int {
	b, ok := l.peek()
	if !ok {
		return 0
	}
	switch b {
	case '\n', '\r':
		return 1
	case 0xE2:
		// U+2028 LINE SEPARATOR and U+2029 PARAGRAPH SEPARATOR
		if b1, ok := l.peekAt(1); ok && b1 == 0x80 {
			if b2, ok := l.peekAt(2); ok && (b2 == 0xA8 || b2 == 0xA9) {
				return 3
			}
		}
	}
	return 0
}

func (l *Lexer) skipToEOL() {
	for l.pos < len(l.source) && l.lineTerminatorLen() == 0 {
		l.pos++
	}
}

// skipTrivia skips whitespace and comments, noting line terminators.
func (l *Lexer) skipTrivia() {
	for {
		if n := l.lineTerminatorLen(); n > 0 {
			l.pos += n
			l.newline = true
			continue
		}
		b, ok := l.peek()
		if !ok {
			return
		}
		switch {
		case b == ' ' || b == '\t' || b == '\v' || b == '\f':
			l.advance()
		case b == 0xC2 && l.peekEquals(1, 0xA0): // NO-BREAK SPACE
			l.pos += 2
		case b == 0xEF && l.peekEquals(1, 0xBB) && l.peekEquals(2, 0xBF): // ZWNBSP
			l.pos += 3
		case b == '/' && l.peekEquals(1, '/'):
			l.skipToEOL()
		case b == '/' && l.peekEquals(1, '*'):
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.pos
	l.pos += 2
	for {
		if n := l.lineTerminatorLen(); n > 0 {
			l.pos += n
			l.newline = true
			continue
		}
		b, ok := l.advance()
		if !ok {
			l.error(l.spanFrom(start), "unterminated block comment")
			return
		}
		if b == '*' && l.peekEquals(0, '/') {
			l.advance()
			return
		}
	}
}

func (l *Lexer) peekEquals(offset int, expected byte) bool {
	b, ok := l.peekAt(offset)
	return ok && b == expected
}

// nextNormalToken scans the next token. Returns (token, retry) where
// retry=true means the caller should loop after skipping junk input.
func (l *Lexer) nextNormalToken() (Token, bool) {
	l.skipTrivia()
	newline := l.newline

	start := l.pos
	b, ok := l.peek()
	if !ok {
		tok := l.token(TokEOF, start)
		tok.NewlineBefore = newline
		return tok, false
	}

	tok, ok := l.scanToken(b, start)
	if !ok {
		return Token{}, true
	}
	tok.NewlineBefore = newline
	l.newline = false
	return tok, false
}

func (l *Lexer) scanToken(b byte, start int) (Token, bool) {
	switch b {
	case '{':
		l.advance()
		return l.token(TokLBrace, start), true
	case '}':
		l.advance()
		return l.token(TokRBrace, start), true
	case '(':
		l.parens = append(l.parens, l.opensControlHead())
		l.advance()
		return l.token(TokLParen, start), true
	case ')':
		l.closedHead = false
		if n := len(l.parens); n > 0 {
			l.closedHead = l.parens[n-1]
			l.parens = l.parens[:n-1]
		}
		l.advance()
		return l.token(TokRParen, start), true
	case '[':
		l.advance()
		return l.token(TokLBracket, start), true
	case ']':
		l.advance()
		return l.token(TokRBracket, start), true
	case ';':
		l.advance()
		return l.token(TokSemicolon, start), true
	case ',':
		l.advance()
		return l.token(TokComma, start), true
	case '*':
		l.advance()
		if next, ok := l.peek(); ok && (next == '*' || next == '=') {
			l.advance()
			return l.token(TokPunct, start), true
		}
		return l.token(TokStar, start), true
	case '.':
		if next, ok := l.peekAt(1); ok && isDigit(next) {
			return l.scanNumber(), true
		}
		if l.peekEquals(1, '.') && l.peekEquals(2, '.') {
			l.pos += 3
			return l.token(TokPunct, start), true
		}
		l.advance()
		return l.token(TokDot, start), true
	case '"', '\'':
		return l.scanString(b), true
	case '`':
		return l.scanTemplate(), true
	case '/':
		if l.regexpAllowed() {
			return l.scanRegExp(), true
		}
		l.advance()
		if l.peekEquals(0, '=') {
			l.advance()
		}
		return l.token(TokPunct, start), true
	case '#':
		if next, ok := l.peekAt(1); ok && isIdentStart(next) {
			l.advance()
			tok := l.scanIdentifier()
			tok.Kind = TokIdent
			tok.Span.Start = types.ByteOffset(start)
			return tok, true
		}
	}

	if isDigit(b) {
		return l.scanNumber(), true
	}
	if isIdentStart(b) {
		return l.scanIdentifier(), true
	}
	if isPunct(b) {
		l.advance()
		return l.token(TokPunct, start), true
	}

	l.advance()
	l.error(l.spanFrom(start), fmt.Sprintf("unexpected character: 0x%02x", b))
	return Token{}, false
}

// opensControlHead reports whether a '(' at the current position opens the
// head of an if, while, for or with statement.
func (l *Lexer) opensControlHead() bool {
	if !l.hasPrev {
		return false
	}
	switch l.prev.Kind {
	case TokKwWith:
		return true
	case TokIdent:
		_, ok := controlHeadWords[string(l.prev.Span.Text(l.source))]
		return ok
	}
	return false
}

// regexpAllowed decides whether a '/' at the current position begins a
// regular expression literal, based on the previous significant token.
func (l *Lexer) regexpAllowed() bool {
	if !l.hasPrev {
		return true
	}
	switch l.prev.Kind {
	case TokRParen:
		// if (x) /re/.test(y)
		return l.closedHead
	case TokNumber, TokString, TokTemplate, TokRegExp, TokRBracket:
		return false
	case TokIdent:
		_, ok := regexpPrefixWords[string(l.prev.Span.Text(l.source))]
		return ok
	case TokKwDefault:
		return true
	case TokKwImport, TokKwExport, TokKwFrom, TokKwAs, TokKwWith, TokKwAssert:
		return false
	default:
		return true
	}
}

func (l *Lexer) scanIdentifier() Token {
	start := l.pos
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		if b == '\\' {
			// unicode escape sequence inside an identifier
			l.pos += 2
			continue
		}
		if !isIdentPart(b) {
			break
		}
		l.advance()
	}
	if l.pos > len(l.source) {
		l.pos = len(l.source)
	}

	text := string(l.source[start:l.pos])
	if kind, ok := LookupKeyword(text); ok {
		return l.token(kind, start)
	}
	return l.token(TokIdent, start)
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	hex := l.peekEquals(0, '0') && (l.peekEquals(1, 'x') || l.peekEquals(1, 'X'))
	var last byte
	for {
		b, ok := l.peek()
		if !ok {
			break
		}
		switch {
		case isIdentPart(b) || b == '.':
		case (b == '+' || b == '-') && (last == 'e' || last == 'E') && !hex:
		default:
			return l.token(TokNumber, start)
		}
		last = b
		l.advance()
	}
	return l.token(TokNumber, start)
}

func (l *Lexer) scanString(quote byte) Token {
	start := l.pos
	if !l.skipStringBody(quote) {
		return l.token(TokError, start)
	}
	return l.token(TokString, start)
}

// skipStringBody consumes a quoted string starting at the opening quote.
func (l *Lexer) skipStringBody(quote byte) bool {
	start := l.pos
	l.advance() // consume opening quote
	for {
		if l.lineTerminatorLen() > 0 {
			if b, _ := l.peek(); b == '\n' || b == '\r' {
				l.error(l.spanFrom(start), "unterminated string literal")
				return false
			}
		}
		b, ok := l.advance()
		if !ok {
			l.error(l.spanFrom(start), "unterminated string literal")
			return false
		}
		switch b {
		case quote:
			return true
		case '\\':
			if l.peekEquals(0, '\r') && l.peekEquals(1, '\n') {
				l.advance()
			}
			l.advance()
		}
	}
}

func (l *Lexer) scanTemplate() Token {
	start := l.pos
	if !l.skipTemplateBody() {
		return l.token(TokError, start)
	}
	return l.token(TokTemplate, start)
}

// skipTemplateBody consumes a template literal starting at the opening
// backtick, including nested substitutions.
func (l *Lexer) skipTemplateBody() bool {
	start := l.pos
	l.advance() // consume opening backtick
	for {
		b, ok := l.advance()
		if !ok {
			l.error(l.spanFrom(start), "unterminated template literal")
			return false
		}
		switch b {
		case '`':
			return true
		case '\\':
			l.advance()
		case '$':
			if l.peekEquals(0, '{') {
				l.advance()
				if !l.skipSubstitution() {
					return false
				}
			}
		}
	}
}

// skipSubstitution consumes a template substitution after its opening
// "${", up to and including the matching '}'.
func (l *Lexer) skipSubstitution() bool {
	start := l.pos
	depth := 1
	for {
		l.skipTrivia()
		b, ok := l.peek()
		if !ok {
			l.error(l.spanFrom(start), "unterminated template substitution")
			return false
		}
		switch b {
		case '{':
			depth++
			l.advance()
		case '}':
			depth--
			l.advance()
			if depth == 0 {
				return true
			}
		case '"', '\'':
			if !l.skipStringBody(b) {
				return false
			}
		case '`':
			if !l.skipTemplateBody() {
				return false
			}
		default:
			l.advance()
		}
	}
}

func (l *Lexer) scanRegExp() Token {
	start := l.pos
	l.advance() // consume opening slash
	inClass := false
	for {
		if l.lineTerminatorLen() > 0 {
			l.error(l.spanFrom(start), "unterminated regular expression literal")
			return l.token(TokError, start)
		}
		b, ok := l.advance()
		if !ok {
			l.error(l.spanFrom(start), "unterminated regular expression literal")
			return l.token(TokError, start)
		}
		switch {
		case b == '\\':
			if l.lineTerminatorLen() == 0 {
				l.advance()
			}
		case b == '[':
			inClass = true
		case b == ']':
			inClass = false
		case b == '/' && !inClass:
			for {
				f, ok := l.peek()
				if !ok || !isIdentPart(f) {
					return l.token(TokRegExp, start)
				}
				l.advance()
			}
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStart(b byte) bool {
	return isAlpha(b) || b == '_' || b == '$' || b == '\\' || b >= 0x80
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isPunct(b byte) bool {
	switch b {
	case '=', '!', '<', '>', '&', '|', '?', ':', '+', '-', '%', '^', '~', '@':
		return true
	}
	return false
}
