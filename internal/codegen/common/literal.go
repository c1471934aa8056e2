package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// EncodingError reports source text that cannot be expressed as a C++
// string literal.
type EncodingError struct {
	Name   string // descriptor name, empty when not known
	Offset int    // byte offset into the source
	Reason string
}

func (e *EncodingError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("cannot encode source at byte %d: %s", e.Offset, e.Reason)
	}
	return fmt.Sprintf("shader %q: cannot encode source at byte %d: %s", e.Name, e.Offset, e.Reason)
}

// EncodeStringLiteral returns src as a double-quoted C++ narrow string literal
// on a single line.
//
// Only escapes shared by C++ and Go are emitted (simple escapes and 3-digit
// octal), so strconv.Unquote decodes the result back to src. A '?' directly
// following another '?' is written as \077 so no trigraph can form. NUL bytes
// and invalid UTF-8 are rejected with an *EncodingError.
func EncodeStringLiteral(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src) + len(src)/8 + 2)
	b.WriteByte('"')

	prev := rune(-1)
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size == 1 {
			return "", &EncodingError{Offset: i, Reason: fmt.Sprintf("invalid UTF-8 byte 0x%02x", src[i])}
		}

		switch r {
		case 0:
			return "", &EncodingError{Offset: i, Reason: "NUL byte"}
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case '?':
			if prev == '?' {
				b.WriteString(`\077`)
			} else {
				b.WriteByte('?')
			}
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\%03o`, r)
			} else {
				b.WriteString(src[i : i+size])
			}
		}

		prev = r
		i += size
	}

	b.WriteByte('"')
	return b.String(), nil
}
