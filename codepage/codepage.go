// Package codepage enumerates the legacy narrow codepages a drawing can
// declare and maps their codes to and from Unicode.
package codepage

import (
	"strings"

	"github.com/pkg/errors"
)

// Codepage is the closed set of codepages a DWG header can name. The numeric
// values are the ones stored in the file.
type Codepage uint8

const (
	UTF8 Codepage = iota
	USASCII
	ISO8859_1
	ISO8859_2
	ISO8859_3
	ISO8859_4
	ISO8859_5
	ISO8859_6
	ISO8859_7
	ISO8859_8
	ISO8859_9
	CP437
	CP850
	CP852
	CP855
	CP857
	CP860
	CP861
	CP863
	CP864
	CP865
	CP869
	CP932
	Macintosh
	Big5
	CP949
	Johab
	CP866
	ANSI1250
	ANSI1251
	ANSI1252
	GB2312
	ANSI1253
	ANSI1254
	ANSI1255
	ANSI1256
	ANSI1257
	ANSI874
	ANSI932
	ANSI936
	ANSI949
	ANSI950
	ANSI1361
	UTF16
	ANSI1258
	// Undefined is what an unknown name parses to.
	Undefined
)

// ErrUnknown is returned by Parse for names outside the enumeration.
var ErrUnknown = errors.New("codepage: unknown name")

var names = [...]string{
	"UTF8", "US_ASCII",
	"ISO-8859-1", "ISO-8859-2", "ISO-8859-3", "ISO-8859-4", "ISO-8859-5",
	"ISO-8859-6", "ISO-8859-7", "ISO-8859-8", "ISO-8859-9",
	"CP437", "CP850", "CP852", "CP855", "CP857", "CP860", "CP861", "CP863",
	"CP864", "CP865", "CP869", "CP932", "MACINTOSH", "BIG5", "CP949",
	"JOHAB", "CP866",
	"ANSI_1250", "ANSI_1251", "ANSI_1252",
	"GB2312",
	"ANSI_1253", "ANSI_1254", "ANSI_1255", "ANSI_1256", "ANSI_1257",
	"ANSI_874", "ANSI_932", "ANSI_936", "ANSI_949", "ANSI_950", "ANSI_1361",
	"UTF16",
	"ANSI_1258",
	"UNDEFINED",
}

// String returns the DXF spelling ($DWGCODEPAGE) of cp.
func (cp Codepage) String() string {
	if int(cp) < len(names) {
		return names[cp]
	}
	return "UNDEFINED"
}

// Parse resolves a DXF codepage name. Matching ignores case; unknown names
// yield Undefined together with ErrUnknown.
func Parse(name string) (Codepage, error) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Codepage(i), nil
		}
	}
	return Undefined, errors.Wrapf(ErrUnknown, "%q", name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (cp *Codepage) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*cp = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (cp Codepage) MarshalText() ([]byte, error) {
	return []byte(cp.String()), nil
}

// IsAsian reports whether cp stores some characters as two bytes.
func (cp Codepage) IsAsian() bool {
	switch cp {
	case CP932, ANSI932, Big5, ANSI950, CP949, ANSI949, Johab, ANSI1361,
		GB2312, ANSI936, UTF16:
		return true
	}
	return false
}

// IsLeadByte reports whether b starts a double-byte character in cp.
func (cp Codepage) IsLeadByte(b byte) bool {
	switch cp {
	case CP932, ANSI932:
		return (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xFC)
	case Big5, ANSI950, CP949, ANSI949, GB2312, ANSI936:
		return b >= 0x81 && b <= 0xFE
	case Johab, ANSI1361:
		return (b >= 0x84 && b <= 0xD3) || (b >= 0xD8 && b <= 0xF9)
	}
	return false
}

// AsianEscapePage maps the selector n (1..5) of a \M+n escape to its codepage.
func AsianEscapePage(n int) (Codepage, bool) {
	switch n {
	case 1:
		return ANSI932, true
	case 2:
		return ANSI950, true
	case 3:
		return ANSI949, true
	case 4:
		return ANSI1361, true
	case 5:
		return ANSI936, true
	}
	return Undefined, false
}
