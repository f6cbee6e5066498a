package codepage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.Equal(t, 45, int(Undefined))
	for cp := UTF8; cp <= Undefined; cp++ {
		got, err := Parse(cp.String())
		require.NoError(t, err, cp.String())
		assert.Equal(t, cp, got)
	}
	assert.Equal(t, "ANSI_1252", ANSI1252.String())
	assert.Equal(t, "GB2312", Codepage(31).String())
	assert.Equal(t, "UTF16", Codepage(43).String())
	assert.Equal(t, "UNDEFINED", Undefined.String())

	got, err := Parse("ansi_1251")
	require.NoError(t, err)
	assert.Equal(t, ANSI1251, got)

	got, err = Parse("EBCDIC")
	assert.Equal(t, Undefined, got)
	assert.True(t, errors.Is(err, ErrUnknown))
}

func TestUnmarshalText(t *testing.T) {
	var cp Codepage
	require.NoError(t, cp.UnmarshalText([]byte("CP437")))
	assert.Equal(t, CP437, cp)
	require.NoError(t, cp.UnmarshalText([]byte("undefined")))
	assert.Equal(t, Undefined, cp)
	b, err := Undefined.MarshalText()
	require.NoError(t, err)
	cp = CP437
	require.NoError(t, cp.UnmarshalText(b))
	assert.Equal(t, Undefined, cp)
	assert.Error(t, cp.UnmarshalText([]byte("nope")))
	assert.Equal(t, CP437, cp)

	b, err = Big5.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "BIG5", string(b))
}

func TestLeadBytes(t *testing.T) {
	for _, tc := range []struct {
		name string
		cp   Codepage
		b    byte
		lead bool
	}{
		{name: "sjis_low", cp: ANSI932, b: 0x81, lead: true},
		{name: "sjis_kana", cp: ANSI932, b: 0xB1, lead: false},
		{name: "sjis_high", cp: CP932, b: 0xE0, lead: true},
		{name: "big5", cp: Big5, b: 0xA4, lead: true},
		{name: "gbk_ascii", cp: ANSI936, b: 'A', lead: false},
		{name: "johab_gap", cp: ANSI1361, b: 0xD5, lead: false},
		{name: "johab", cp: Johab, b: 0x88, lead: true},
		{name: "latin", cp: ANSI1252, b: 0xE9, lead: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.lead, tc.cp.IsLeadByte(tc.b))
		})
	}
	assert.True(t, ANSI949.IsAsian())
	assert.False(t, ANSI1252.IsAsian())
}

func TestAsianEscapePage(t *testing.T) {
	want := []Codepage{ANSI932, ANSI950, ANSI949, ANSI1361, ANSI936}
	for i, w := range want {
		cp, ok := AsianEscapePage(i + 1)
		require.True(t, ok)
		assert.Equal(t, w, cp)
	}
	_, ok := AsianEscapePage(6)
	assert.False(t, ok)
}

func TestDefaultTable(t *testing.T) {
	for _, tc := range []struct {
		name string
		cp   Codepage
		code uint16
		r    rune
	}{
		{name: "ascii", cp: ANSI1252, code: 'A', r: 'A'},
		{name: "latin1", cp: ISO8859_1, code: 0xE9, r: 'é'},
		{name: "euro", cp: ANSI1252, code: 0x80, r: '€'},
		{name: "cyrillic", cp: ANSI1251, code: 0xC0, r: 'А'},
		{name: "dos", cp: CP437, code: 0x82, r: 'é'},
		{name: "sjis", cp: ANSI932, code: 0x82A0, r: 'あ'},
		{name: "big5", cp: Big5, code: 0xA440, r: '一'},
		{name: "gbk", cp: ANSI936, code: 0xC4E3, r: '你'},
		{name: "korean", cp: ANSI949, code: 0xB0A1, r: '가'},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.r, Default.Decode(tc.cp, tc.code))
			assert.Equal(t, tc.code, Default.Encode(tc.cp, tc.r))
		})
	}

	assert.Zero(t, Default.Encode(ANSI1252, 'あ'))
	assert.Zero(t, Default.Encode(ISO8859_1, '€'))
	assert.Zero(t, Default.Decode(CP869, 0xC0))
	assert.Equal(t, rune('z'), Default.Decode(CP869, 'z'))
}
