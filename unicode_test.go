package dwgbits

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/svanichkin/dwgbits/codepage"
)

func TestUnicode_WideRoundTrips(t *testing.T) {
	units := []uint16{'A', 0xE9, 0x4E2D, 0x263A, 0xD800}

	utf := TUToUTF8(units)
	assert.Len(t, utf, UTF8Len(units))
	assert.Equal(t, 1+2+3+3+3, UTF8Len(units))
	if diff := cmp.Diff(units, UTF8ToTU(utf, false)); diff != "" {
		t.Errorf("wide -> utf8 -> wide (-want +got):\n%s", diff)
	}

	narrow := EmbedTU(units)
	assert.Equal(t, "A\xE9\\U+4E2D\\U+263A\\U+D800", string(narrow))
	if diff := cmp.Diff(units, UnembedTV(narrow)); diff != "" {
		t.Errorf("wide -> narrow -> wide (-want +got):\n%s", diff)
	}
}

func TestUnicode_UTF8ToTU(t *testing.T) {
	for _, tc := range []struct {
		name   string
		in     string
		quoted bool
		want   []uint16
	}{
		{name: "ascii", in: "abc", want: []uint16{'a', 'b', 'c'}},
		{name: "two_byte", in: "é", want: []uint16{0xE9}},
		{name: "three_byte", in: "中", want: []uint16{0x4E2D}},
		{name: "four_byte", in: "a😀b", want: []uint16{'a', 0xFFFD, 'b'}},
		{name: "malformed", in: "a\xFFb", want: []uint16{'a', 0xFFFD, 'b'}},
		{name: "truncated", in: "a\xE4\xB8", want: []uint16{'a', 0xFFFD, 0xFFFD}},
		{name: "unquoted_backslash", in: `a\nb`, want: []uint16{'a', '\\', 'n', 'b'}},
		{name: "quoted", in: `a\"b\\c\nd\re\t`, quoted: true, want: []uint16{'a', '"', 'b', '\\', 'c', '\n', 'd', '\r', 'e', '\\', 't'}},
		{name: "quoted_trailing_backslash", in: `x\`, quoted: true, want: []uint16{'x', '\\'}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UTF8ToTU(tc.in, tc.quoted))
		})
	}
}

func TestUnicode_UnembedOnlyExactEscapes(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want []uint16
	}{
		{in: `\P`, want: []uint16{'\\', 'P'}},
		{in: `\U+12`, want: []uint16{'\\', 'U', '+', '1', '2'}},
		{in: `\U+00E9!`, want: []uint16{0xE9, '!'}},
		{in: `\U+00e9`, want: []uint16{'\\', 'U', '+', '0', '0', 'e', '9'}},
		{in: `\U+XYZW`, want: []uint16{'\\', 'U', '+', 'X', 'Y', 'Z', 'W'}},
		{in: `\u+0041`, want: []uint16{'\\', 'u', '+', '0', '0', '4', '1'}},
	} {
		assert.Equal(t, tc.want, UnembedTV([]byte(tc.in)), tc.in)
	}
}

func TestUnicode_ExpandAsianEscapes(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{in: `\M+182A0`, want: `\U+3042`},
		{in: `x\M+2A440y`, want: `x\U+4E00y`},
		{in: `\M+5C4E3`, want: `\U+4F60`},
		{in: `\M+3B0A1`, want: `\U+AC00`},
		{in: `\M+982A0`, want: `\M+982A0`},
		{in: `\M+182`, want: `\M+182`},
		{in: `\M+182a0`, want: `\M+182a0`},
	} {
		assert.Equal(t, tc.want, string(ExpandAsianEscapes([]byte(tc.in), nil)), tc.in)
	}
}

func TestUnicode_TVToUTF8(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
		cp   codepage.Codepage
		want string
	}{
		{name: "ansi_1252", in: []byte{'a', 0x80, 0xE9}, cp: codepage.ANSI1252, want: "a€é"},
		{name: "cp437", in: []byte{0x82}, cp: codepage.CP437, want: "é"},
		{name: "sjis_pair", in: []byte{0x82, 0xA0, 'z'}, cp: codepage.ANSI932, want: "あz"},
		{name: "sjis_kana", in: []byte{0xB1}, cp: codepage.ANSI932, want: "ｱ"},
		{name: "escape", in: []byte(`a\U+4E2Db`), cp: codepage.ANSI1252, want: "a中b"},
		{name: "asian_escape", in: []byte(`\M+182A0`), cp: codepage.ANSI1252, want: "あ"},
		{name: "utf8_passthrough", in: []byte("héllo"), cp: codepage.UTF8, want: "héllo"},
		{name: "no_table", in: []byte{'a', 0xC0}, cp: codepage.CP869, want: "a\uFFFD"},
		{name: "other_backslash", in: []byte(`\P`), cp: codepage.ANSI1252, want: `\P`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TVToUTF8(tc.in, tc.cp, nil))
		})
	}
}

func TestUnicode_UTF8ToTV(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		cp   codepage.Codepage
		want []byte
	}{
		{name: "ansi_1252", in: "a€é", cp: codepage.ANSI1252, want: []byte{'a', 0x80, 0xE9}},
		{name: "escaped", in: "中", cp: codepage.ANSI1252, want: []byte(`\U+4E2D`)},
		{name: "sjis", in: "あ", cp: codepage.ANSI932, want: []byte{0x82, 0xA0}},
		{name: "astral", in: "😀", cp: codepage.ANSI1252, want: []byte("?")},
		{name: "utf8", in: "中", cp: codepage.UTF8, want: []byte("中")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := UTF8ToTV(tc.in, tc.cp, nil)
			assert.Equal(t, tc.want, got)
		})
	}
}
