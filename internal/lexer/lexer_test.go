package lexer

import (
	"testing"

	"github.com/esrename/esrename/internal/testutil"
)

func tokenKinds(source string) []TokenKind {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	kinds := make([]TokenKind, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}

func tokenTexts(source string) []string {
	lexer := New([]byte(source), nil)
	tokens, _ := lexer.Tokenize()
	var texts []string
	for _, t := range tokens {
		if t.Kind != TokEOF {
			texts = append(texts, source[t.Span.Start:t.Span.End])
		}
	}
	return texts
}

func TestEmptyInput(t *testing.T) {
	testutil.SliceEqual(t, []TokenKind{TokEOF}, tokenKinds(""))
}

func TestPunctuation(t *testing.T) {
	kinds := tokenKinds("{ } ( ) [ ] ; , . * ...")
	expected := []TokenKind{
		TokLBrace, TokRBrace, TokLParen, TokRParen,
		TokLBracket, TokRBracket, TokSemicolon, TokComma,
		TokDot, TokStar, TokPunct, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds)
}

func TestModuleKeywords(t *testing.T) {
	kinds := tokenKinds("import export from as default with assert imports")
	expected := []TokenKind{
		TokKwImport, TokKwExport, TokKwFrom, TokKwAs,
		TokKwDefault, TokKwWith, TokKwAssert, TokIdent, TokEOF,
	}
	testutil.SliceEqual(t, expected, kinds)
}

func TestStrings(t *testing.T) {
	texts := tokenTexts(`"a" 'b' "it's" 'say "hi"' "esc\"aped" ''`)
	testutil.SliceEqual(t, []string{`"a"`, `'b'`, `"it's"`, `'say "hi"'`, `"esc\"aped"`, `''`}, texts)
	for _, k := range tokenKinds(`"a" 'b'`)[:2] {
		testutil.Equal(t, TokString, k)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New([]byte("import x from \"./x\nfoo()"), nil)
	tokens, diags := l.Tokenize()
	testutil.Len(t, diags, 1)
	testutil.Contains(t, diags[0].Message, "unterminated string")
	testutil.Equal(t, TokError, tokens[3].Kind)
}

func TestCommentsAreSkipped(t *testing.T) {
	src := "// import a from 'a'\n/* export * from 'b' */ x"
	testutil.SliceEqual(t, []string{"x"}, tokenTexts(src))
}

func TestNewlineBefore(t *testing.T) {
	l := New([]byte("a\nb /* \n */ c d"), nil)
	tokens, _ := l.Tokenize()
	testutil.Len(t, tokens, 5)
	testutil.False(t, tokens[0].NewlineBefore, "a")
	testutil.True(t, tokens[1].NewlineBefore, "b")
	testutil.True(t, tokens[2].NewlineBefore, "c")
	testutil.False(t, tokens[3].NewlineBefore, "d")
}

func TestTemplateLiteral(t *testing.T) {
	src := "`import ${ {a: `x${'}'}`}.a } from 'y'` z"
	texts := tokenTexts(src)
	testutil.Len(t, texts, 2)
	testutil.Equal(t, "z", texts[1])
	testutil.SliceEqual(t, []TokenKind{TokTemplate, TokIdent, TokEOF}, tokenKinds(src))
}

func TestRegExpVersusDivision(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenKind
	}{
		{"x = /'/g", []TokenKind{TokIdent, TokPunct, TokRegExp, TokEOF}},
		{"a / b / c", []TokenKind{TokIdent, TokPunct, TokIdent, TokPunct, TokIdent, TokEOF}},
		{"return /[/]'/", []TokenKind{TokIdent, TokRegExp, TokEOF}},
		{"f() / 2", []TokenKind{TokIdent, TokLParen, TokRParen, TokPunct, TokNumber, TokEOF}},
		{"export default /x/", []TokenKind{TokKwExport, TokKwDefault, TokRegExp, TokEOF}},
		{"a /= 2", []TokenKind{TokIdent, TokPunct, TokNumber, TokEOF}},
		{"if (x) /'/.test(y)", []TokenKind{TokIdent, TokLParen, TokIdent, TokRParen, TokRegExp, TokDot, TokIdent, TokLParen, TokIdent, TokRParen, TokEOF}},
		{"while (f(a)) /b/", []TokenKind{TokIdent, TokLParen, TokIdent, TokLParen, TokIdent, TokRParen, TokRParen, TokRegExp, TokEOF}},
		{"for (;;) /c/", []TokenKind{TokIdent, TokLParen, TokSemicolon, TokSemicolon, TokRParen, TokRegExp, TokEOF}},
		{"if (f(a) / 2) x", []TokenKind{TokIdent, TokLParen, TokIdent, TokLParen, TokIdent, TokRParen, TokPunct, TokNumber, TokRParen, TokIdent, TokEOF}},
		{"g(if_) / 2", []TokenKind{TokIdent, TokLParen, TokIdent, TokRParen, TokPunct, TokNumber, TokEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			testutil.SliceEqual(t, tt.want, tokenKinds(tt.src))
		})
	}
}

func TestNumbers(t *testing.T) {
	texts := tokenTexts("0 42 3.14 .5 1e-7 0xFF 10n 1_000")
	testutil.SliceEqual(t, []string{"0", "42", "3.14", ".5", "1e-7", "0xFF", "10n", "1_000"}, texts)
}

func TestHashbangAndBOM(t *testing.T) {
	src := "\xEF\xBB\xBF#!/usr/bin/env node\nimport 'x'"
	testutil.SliceEqual(t, []TokenKind{TokKwImport, TokString, TokEOF}, tokenKinds(src))
}

func TestPrivateNamesAndUnicode(t *testing.T) {
	testutil.SliceEqual(t, []string{"#secret", "ünïcode", "$el", "_x"}, tokenTexts("#secret ünïcode $el _x"))
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New([]byte("a \x01 b"), nil)
	tokens, diags := l.Tokenize()
	testutil.Len(t, diags, 1)
	testutil.Contains(t, diags[0].Message, "unexpected character")
	testutil.Len(t, tokens, 3)
}

func TestLookupKeyword(t *testing.T) {
	for _, kw := range keywords {
		kind, ok := LookupKeyword(kw.text)
		testutil.True(t, ok, kw.text)
		testutil.Equal(t, kw.kind, kind)
	}
	_, ok := LookupKeyword("importx")
	testutil.False(t, ok)
	for i := 1; i < len(keywords); i++ {
		testutil.Less(t, keywords[i-1].text, keywords[i].text, "keyword table must stay sorted")
	}
}
