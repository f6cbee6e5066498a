package dwgbits

import (
	"fmt"
	"unicode/utf8"

	"github.com/svanichkin/dwgbits/codepage"
)

// UTF8Len returns the number of bytes TUToUTF8 produces for u.
func UTF8Len(u []uint16) int {
	n := 0
	for _, c := range u {
		switch {
		case c < 0x80:
			n++
		case c < 0x800:
			n += 2
		default:
			n += 3
		}
	}
	return n
}

// TUToUTF8 converts UCS-2 code units to UTF-8. Every unit becomes one 1, 2
// or 3 byte sequence; surrogate units are not paired.
func TUToUTF8(u []uint16) string {
	out := make([]byte, 0, UTF8Len(u))
	for _, c := range u {
		out = appendUnit(out, c)
	}
	return string(out)
}

func appendUnit(out []byte, c uint16) []byte {
	switch {
	case c < 0x80:
		return append(out, byte(c))
	case c < 0x800:
		return append(out, 0xC0|byte(c>>6), 0x80|byte(c&0x3F))
	}
	return append(out, 0xE0|byte(c>>12), 0x80|byte(c>>6&0x3F), 0x80|byte(c&0x3F))
}

// UTF8ToTU converts UTF-8 to UCS-2 code units. Sequences longer than three
// bytes and malformed bytes become U+FFFD. With quoted set, the backslash
// escapes \" \\ \r and \n are resolved first.
func UTF8ToTU(s string, quoted bool) []uint16 {
	out := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case quoted && c == '\\' && i+1 < len(s):
			switch s[i+1] {
			case '"', '\\':
				out = append(out, uint16(s[i+1]))
				i += 2
				continue
			case 'r':
				out = append(out, '\r')
				i += 2
				continue
			case 'n':
				out = append(out, '\n')
				i += 2
				continue
			}
			out = append(out, '\\')
			i++
		case c < 0x80:
			out = append(out, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(s) && cont(s[i+1]):
			out = append(out, uint16(c&0x1F)<<6|uint16(s[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(s) && cont(s[i+1]) && cont(s[i+2]):
			out = append(out, uint16(c&0x0F)<<12|uint16(s[i+1]&0x3F)<<6|uint16(s[i+2]&0x3F))
			i += 3
		case c&0xF8 == 0xF0 && i+3 < len(s) && cont(s[i+1]) && cont(s[i+2]) && cont(s[i+3]):
			out = append(out, utf8.RuneError)
			i += 4
		default:
			out = append(out, utf8.RuneError)
			i++
		}
	}
	return out
}

func cont(b byte) bool { return b&0xC0 == 0x80 }

// EmbedTU downgrades UCS-2 to narrow bytes. Units below 0x100 are copied
// as bytes, everything else becomes the escape \U+XXXX.
func EmbedTU(u []uint16) []byte {
	out := make([]byte, 0, len(u))
	for _, c := range u {
		if c < 0x100 {
			out = append(out, byte(c))
			continue
		}
		out = appendEscape(out, c)
	}
	return out
}

func appendEscape(out []byte, c uint16) []byte {
	return fmt.Appendf(out, `\U+%04X`, c)
}

// UnembedTV widens narrow bytes, turning each \U+XXXX escape back into its
// code unit. Other backslash sequences are copied unchanged.
func UnembedTV(b []byte) []uint16 {
	out := make([]uint16, 0, len(b))
	for i := 0; i < len(b); i++ {
		if v, ok := unicodeEscape(b[i:]); ok {
			out = append(out, v)
			i += 6
			continue
		}
		out = append(out, uint16(b[i]))
	}
	return out
}

// unicodeEscape matches \U+XXXX, uppercase hex only, at the start of b.
func unicodeEscape(b []byte) (uint16, bool) {
	if len(b) < 7 || b[0] != '\\' || b[1] != 'U' || b[2] != '+' {
		return 0, false
	}
	return parseHex4(b[3:7])
}

// asianEscape matches \M+nXXXX at the start of b.
func asianEscape(b []byte) (codepage.Codepage, uint16, bool) {
	if len(b) < 8 || b[0] != '\\' || b[1] != 'M' || b[2] != '+' {
		return 0, 0, false
	}
	cp, ok := codepage.AsianEscapePage(int(b[3]) - '0')
	if !ok {
		return 0, 0, false
	}
	v, ok := parseHex4(b[4:8])
	return cp, v, ok
}

func parseHex4(b []byte) (uint16, bool) {
	var v uint16
	for _, c := range b[:4] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | uint16(d)
	}
	return v, true
}

// ExpandAsianEscapes rewrites every \M+nXXXX escape into \U+XXXX, decoding
// XXXX through the codepage n selects. Escapes the table cannot decode are
// left alone.
func ExpandAsianEscapes(b []byte, t codepage.Table) []byte {
	if t == nil {
		t = codepage.Default
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if cp, v, ok := asianEscape(b[i:]); ok {
			if r := t.Decode(cp, v); r != 0 && r <= 0xFFFF {
				out = appendEscape(out, uint16(r))
				i += 7
				continue
			}
		}
		out = append(out, b[i])
	}
	return out
}

// TVToUTF8 decodes narrow text in codepage cp. \U+XXXX and \M+nXXXX
// escapes are resolved; bytes the codepage cannot map become U+FFFD.
func TVToUTF8(b []byte, cp codepage.Codepage, t codepage.Table) string {
	if t == nil {
		t = codepage.Default
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c == '\\' {
			if v, ok := unicodeEscape(b[i:]); ok {
				out = appendUnit(out, v)
				i += 6
				continue
			}
			if acp, v, ok := asianEscape(b[i:]); ok {
				if r := t.Decode(acp, v); r != 0 {
					out = utf8.AppendRune(out, r)
					i += 7
					continue
				}
			}
		}
		if c < 0x80 || cp == codepage.UTF8 {
			out = append(out, c)
			continue
		}
		code := uint16(c)
		if cp.IsLeadByte(c) && i+1 < len(b) {
			code = code<<8 | uint16(b[i+1])
			i++
		}
		r := t.Decode(cp, code)
		if r == 0 {
			r = utf8.RuneError
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// UTF8ToTV encodes s as narrow text in codepage cp. Characters outside the
// codepage are written as \U+XXXX, characters beyond the BMP as '?'.
func UTF8ToTV(s string, cp codepage.Codepage, t codepage.Table) []byte {
	if cp == codepage.UTF8 {
		return []byte(s)
	}
	if t == nil {
		t = codepage.Default
	}
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r < 0x80 {
			out = append(out, byte(r))
			continue
		}
		if r > 0xFFFF {
			out = append(out, '?')
			continue
		}
		switch code := t.Encode(cp, r); {
		case code > 0xFF:
			out = append(out, byte(code>>8), byte(code))
		case code != 0:
			out = append(out, byte(code))
		default:
			out = appendEscape(out, uint16(r))
		}
	}
	return out
}

// narrowOf downgrades wide text to the session codepage, escaping what it
// cannot represent.
func narrowOf(u []uint16, cp codepage.Codepage, t codepage.Table) []byte {
	switch cp {
	case codepage.UTF8:
		return []byte(TUToUTF8(u))
	case codepage.ISO8859_1, codepage.Undefined:
		return EmbedTU(u)
	}
	out := make([]byte, 0, len(u))
	for _, c := range u {
		if c < 0x80 {
			out = append(out, byte(c))
			continue
		}
		switch code := t.Encode(cp, rune(c)); {
		case code > 0xFF:
			out = append(out, byte(code>>8), byte(code))
		case code != 0:
			out = append(out, byte(code))
		default:
			out = appendEscape(out, c)
		}
	}
	return out
}

// wideOf widens narrow text from the session codepage.
func wideOf(b []byte, cp codepage.Codepage, t codepage.Table) []uint16 {
	switch cp {
	case codepage.ISO8859_1, codepage.Undefined:
		return UnembedTV(b)
	}
	return UTF8ToTU(TVToUTF8(b, cp, t), false)
}
