package token

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Quote returns v as a JSON string literal. Only NUL, '"', '\\', and the
// backspace, tab, carriage return, line feed and form feed characters are
// escaped; everything else, single quotes included, is written as is.
func Quote(v string) string {
	return string(AppendQuote(make([]byte, 0, len(v)+2), v, false))
}

// QuoteControl is like Quote but also escapes the remaining C0 control
// characters and DEL as \u00XX, so that the result is accepted by a strict
// parser.
func QuoteControl(v string) string {
	return string(AppendQuote(make([]byte, 0, len(v)+2), v, true))
}

func AppendQuote(d []byte, v string, control bool) []byte {
	d = append(d, '"')
	for _, r := range v {
		switch r {
		case 0:
			d = append(d, '\\', 'u', '0', '0', '0', '0')
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if control && (r < 0x20 || r == 0x7f) {
				d = append(d, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&0xf])
				continue
			}
			d = utf8.AppendRune(d, r)
		}
	}
	return append(d, '"')
}

// scanString returns the length of the string literal starting at d[0],
// which must be '"'. Raw control characters are an error unless control
// is set.
func scanString(d []byte, control bool) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return 0, ErrUnterminated
	}
	escaped := false
	start := 1
	n := len(d)
	for start < n {
		r, sz := utf8.DecodeRune(d[start:])
		if r == utf8.RuneError && sz == 1 {
			return start, ErrBadUTF8
		}
		start += sz
		if escaped {
			escaped = false
			switch r {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				if start+4 > n {
					return start, ErrUnterminated
				}
				if !allHex(d[start : start+4]) {
					return start, ErrBadUnicode
				}
				start += 4
			default:
				return start - sz, ErrBadEscape
			}
			continue
		}
		switch {
		case r == '"':
			return start, nil
		case r == '\\':
			escaped = true
		case r < 0x20 && !control:
			return start - sz, ErrUnicodeControl
		}
	}
	return start, ErrUnterminated
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

func hexVal(d []byte) rune {
	var r rune
	for _, c := range d {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		default:
			r |= rune(c-'A') + 10
		}
	}
	return r
}

// Unquote decodes a complete string literal as produced by the tokenizer.
// Escaped surrogate pairs are combined; a lone surrogate decodes to
// U+FFFD.
func Unquote(d []byte) (string, error) {
	n, err := scanString(d, true)
	if err != nil {
		return "", err
	}
	if n != len(d) {
		return "", ErrUnterminated
	}
	b := &strings.Builder{}
	b.Grow(len(d))
	i := 1
	end := len(d) - 1
	for i < end {
		c := d[i]
		if c != '\\' {
			r, sz := utf8.DecodeRune(d[i:end])
			b.WriteRune(r)
			i += sz
			continue
		}
		i++
		switch d[i] {
		case '"', '\\', '/':
			b.WriteByte(d[i])
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r := hexVal(d[i+1 : i+5])
			i += 4
			if utf16.IsSurrogate(r) {
				pair := utf8.RuneError
				if i+6 < end && d[i+1] == '\\' && d[i+2] == 'u' {
					pair = utf16.DecodeRune(r, hexVal(d[i+3:i+7]))
					if pair != utf8.RuneError {
						i += 6
					}
				}
				r = pair
			}
			b.WriteRune(r)
		}
		i++
	}
	return b.String(), nil
}
