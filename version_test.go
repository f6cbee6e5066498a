package dwgbits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Version
	}{
		{in: "R2000", want: R2000},
		{in: "r14", want: R14},
		{in: "2004", want: R2004},
		{in: "AC1032", want: R2018},
		{in: "AC1012", want: R13},
		{in: "R2.6", want: R2_6},
		{in: "MC0.0", want: R1_1},
	} {
		got, err := ParseVersion(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseVersion("AC9999")
	assert.ErrorIs(t, err, ErrUnknownVersion)

	for v := R1_1; v <= R2018; v++ {
		got, err := ParseVersion(v.Magic())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
	assert.Equal(t, "AC1015", R2000.Magic())
	assert.Equal(t, "INVALID", Version(200).String())
}

func TestVersion_Text(t *testing.T) {
	var v Version
	require.NoError(t, v.UnmarshalText([]byte("R2010")))
	assert.Equal(t, R2010, v)
	b, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "R2010", string(b))
	assert.Error(t, v.UnmarshalText([]byte("?")))
}

func TestVariantOf(t *testing.T) {
	for _, tc := range []struct {
		v    Version
		want Variant
	}{
		{v: R11, want: Variant{ShortLengths: true}},
		{v: R13, want: Variant{KindNibble: true, CountedNul: true}},
		{v: R2000, want: Variant{KindNibble: true, DefaultFlags: true, CountedNul: true}},
		{v: R2004, want: Variant{KindNibble: true, DefaultFlags: true, Truecolor: true}},
		{v: R2007, want: Variant{KindNibble: true, DefaultFlags: true, Truecolor: true, Wide: true}},
		{v: R2018, want: Variant{KindNibble: true, DefaultFlags: true, Truecolor: true, Wide: true}},
	} {
		assert.Equal(t, tc.want, VariantOf(tc.v), tc.v.String())
	}
}
