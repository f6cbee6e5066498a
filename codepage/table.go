package codepage

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// Table converts single characters between a codepage and Unicode. A zero
// result means the character is not in the codepage's repertoire.
type Table interface {
	// Decode returns the code point of code in cp. Double-byte codes carry
	// the lead byte in the high 8 bits.
	Decode(cp Codepage, code uint16) rune
	// Encode returns the code of r in cp.
	Encode(cp Codepage, r rune) uint16
}

// Default is the Table backed by golang.org/x/text. Codepages x/text has no
// table for (CP857, CP861, CP864, CP869, JOHAB) only map ASCII.
var Default Table = xtextTable{}

type xtextTable struct{}

var singleByte = map[Codepage]*charmap.Charmap{
	ISO8859_1: charmap.ISO8859_1,
	ISO8859_2: charmap.ISO8859_2,
	ISO8859_3: charmap.ISO8859_3,
	ISO8859_4: charmap.ISO8859_4,
	ISO8859_5: charmap.ISO8859_5,
	ISO8859_6: charmap.ISO8859_6,
	ISO8859_7: charmap.ISO8859_7,
	ISO8859_8: charmap.ISO8859_8,
	ISO8859_9: charmap.ISO8859_9,
	CP437:     charmap.CodePage437,
	CP850:     charmap.CodePage850,
	CP852:     charmap.CodePage852,
	CP855:     charmap.CodePage855,
	CP860:     charmap.CodePage860,
	CP863:     charmap.CodePage863,
	CP865:     charmap.CodePage865,
	CP866:     charmap.CodePage866,
	Macintosh: charmap.Macintosh,
	ANSI874:   charmap.Windows874,
	ANSI1250:  charmap.Windows1250,
	ANSI1251:  charmap.Windows1251,
	ANSI1252:  charmap.Windows1252,
	ANSI1253:  charmap.Windows1253,
	ANSI1254:  charmap.Windows1254,
	ANSI1255:  charmap.Windows1255,
	ANSI1256:  charmap.Windows1256,
	ANSI1257:  charmap.Windows1257,
	ANSI1258:  charmap.Windows1258,
}

func multiByte(cp Codepage) encoding.Encoding {
	switch cp {
	case CP932, ANSI932:
		return japanese.ShiftJIS
	case Big5, ANSI950:
		return traditionalchinese.Big5
	case CP949, ANSI949:
		return korean.EUCKR
	case GB2312, ANSI936:
		return simplifiedchinese.GBK
	}
	return nil
}

func (xtextTable) Decode(cp Codepage, code uint16) rune {
	switch cp {
	case UTF8, UTF16, Undefined:
		if code >= 0xD800 && code < 0xE000 {
			return 0
		}
		return rune(code)
	case ISO8859_1:
		if code < 0x100 {
			return rune(code)
		}
		return 0
	}
	if code < 0x80 {
		return rune(code)
	}
	if cm, ok := singleByte[cp]; ok {
		if code > 0xFF {
			return 0
		}
		r := cm.DecodeByte(byte(code))
		if r == utf8.RuneError {
			return 0
		}
		return r
	}
	enc := multiByte(cp)
	if enc == nil {
		return 0
	}
	var src []byte
	if code > 0xFF {
		src = []byte{byte(code >> 8), byte(code)}
	} else {
		src = []byte{byte(code)}
	}
	out, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return 0
	}
	r, n := utf8.DecodeRune(out)
	if r == utf8.RuneError || n != len(out) {
		return 0
	}
	return r
}

func (xtextTable) Encode(cp Codepage, r rune) uint16 {
	switch cp {
	case UTF8, UTF16, Undefined:
		if r > 0xFFFF {
			return 0
		}
		return uint16(r)
	case ISO8859_1:
		if r < 0x100 {
			return uint16(r)
		}
		return 0
	}
	if r < 0x80 {
		return uint16(r)
	}
	if cm, ok := singleByte[cp]; ok {
		if b, ok := cm.EncodeRune(r); ok {
			return uint16(b)
		}
		return 0
	}
	enc := multiByte(cp)
	if enc == nil || !utf8.ValidRune(r) {
		return 0
	}
	out, err := enc.NewEncoder().Bytes([]byte(string(r)))
	if err != nil {
		return 0
	}
	switch len(out) {
	case 1:
		return uint16(out[0])
	case 2:
		return uint16(out[0])<<8 | uint16(out[1])
	}
	return 0
}
