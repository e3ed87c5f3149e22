package lexer

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// ErrMalformedString is returned by Unquote for literals that are not
// well-formed quoted strings or contain an invalid escape sequence.
var ErrMalformedString = errors.New("malformed string literal")

// Unquote decodes the value of a single- or double-quoted string literal.
// The raw text must include its surrounding quotes.
func Unquote(raw []byte) (string, error) {
	if len(raw) < 2 {
		return "", ErrMalformedString
	}
	quote := raw[0]
	if (quote != '"' && quote != '\'') || raw[len(raw)-1] != quote {
		return "", ErrMalformedString
	}
	body := raw[1 : len(raw)-1]
	if bytes.IndexByte(body, '\\') < 0 {
		return string(body), nil
	}

	var b strings.Builder
	b.Grow(len(body))
	var pendingHigh rune = -1

	flush := func() {
		if pendingHigh >= 0 {
			b.WriteRune(utf8.RuneError)
			pendingHigh = -1
		}
	}
	writeUnit := func(r rune) {
		switch {
		case utf16.IsSurrogate(r) && r < 0xDC00:
			flush()
			pendingHigh = r
		case utf16.IsSurrogate(r):
			if pendingHigh >= 0 {
				b.WriteRune(utf16.DecodeRune(pendingHigh, r))
				pendingHigh = -1
			} else {
				b.WriteRune(utf8.RuneError)
			}
		default:
			flush()
			b.WriteRune(r)
		}
	}

	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			flush()
			r, size := utf8.DecodeRune(body[i:])
			if r == utf8.RuneError && size == 1 {
				b.WriteByte(c)
			} else {
				b.WriteRune(r)
			}
			i += size
			continue
		}
		i++
		if i >= len(body) {
			return "", ErrMalformedString
		}
		c = body[i]
		i++
		switch c {
		case 'b':
			writeUnit('\b')
		case 'f':
			writeUnit('\f')
		case 'n':
			writeUnit('\n')
		case 'r':
			writeUnit('\r')
		case 't':
			writeUnit('\t')
		case 'v':
			writeUnit('\v')
		case '\n':
			// line continuation
		case '\r':
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case 'x':
			v, ok := parseHex(body, i, 2)
			if !ok {
				return "", ErrMalformedString
			}
			i += 2
			writeUnit(v)
		case 'u':
			v, n, ok := parseUnicodeEscape(body, i)
			if !ok {
				return "", ErrMalformedString
			}
			i += n
			writeUnit(v)
		default:
			if c >= '0' && c <= '7' {
				// legacy octal escape, up to three digits and at most 0o377
				v := rune(c - '0')
				for n := 0; n < 2 && i < len(body) && body[i] >= '0' && body[i] <= '7'; n++ {
					next := v*8 + rune(body[i]-'0')
					if next > 0o377 {
						break
					}
					v = next
					i++
				}
				writeUnit(v)
				continue
			}
			// any other escaped character stands for itself
			i--
			r, size := utf8.DecodeRune(body[i:])
			i += size
			if r == 0x2028 || r == 0x2029 {
				// escaped line terminator is a line continuation
				continue
			}
			writeUnit(r)
		}
	}
	flush()
	return b.String(), nil
}

func parseUnicodeEscape(body []byte, i int) (rune, int, bool) {
	if i < len(body) && body[i] == '{' {
		end := i + 1
		for end < len(body) && body[end] != '}' {
			end++
		}
		if end >= len(body) || end == i+1 {
			return 0, 0, false
		}
		v, ok := parseHex(body, i+1, end-i-1)
		if !ok || v > utf8.MaxRune {
			return 0, 0, false
		}
		return v, end - i + 1, true
	}
	v, ok := parseHex(body, i, 4)
	return v, 4, ok
}

func parseHex(body []byte, i, n int) (rune, bool) {
	if i+n > len(body) || n > 8 {
		return 0, false
	}
	var v rune
	for _, c := range body[i : i+n] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | rune(d)
	}
	return v, true
}
