package lexer

import "sort"

// keywords is the sorted keyword table for binary search.
// IMPORTANT: This slice MUST remain sorted by text.
var keywords = []struct {
	text string
	kind TokenKind
}{
	{"as", TokKwAs},
	{"assert", TokKwAssert},
	{"default", TokKwDefault},
	{"export", TokKwExport},
	{"from", TokKwFrom},
	{"import", TokKwImport},
	{"with", TokKwWith},
}

// LookupKeyword returns the token kind for a module keyword.
func LookupKeyword(text string) (TokenKind, bool) {
	i := sort.Search(len(keywords), func(i int) bool {
		return keywords[i].text >= text
	})
	if i < len(keywords) && keywords[i].text == text {
		return keywords[i].kind, true
	}
	return TokIdent, false
}

// controlHeadWords introduce a parenthesized head after which a '/' starts
// a regular expression literal.
var controlHeadWords = map[string]struct{}{
	"if":    {},
	"while": {},
	"for":   {},
}

// regexpPrefixWords are the reserved words after which a '/' starts a
// regular expression literal rather than a division.
var regexpPrefixWords = map[string]struct{}{
	"await":      {},
	"case":       {},
	"delete":     {},
	"do":         {},
	"else":       {},
	"in":         {},
	"instanceof": {},
	"new":        {},
	"of":         {},
	"return":     {},
	"throw":      {},
	"typeof":     {},
	"void":       {},
	"yield":      {},
}
