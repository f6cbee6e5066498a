package dwgbits

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svanichkin/dwgbits/codepage"
)

func TestTV_Terminator(t *testing.T) {
	for _, tc := range []struct {
		name string
		ver  Version
		bits uint64
		tail []byte
	}{
		{name: "r11_rs_length", ver: R11, bits: 16 + 24},
		{name: "r14_counts_nul", ver: R14, bits: 10 + 32},
		{name: "r2000_counts_nul", ver: R2000, bits: 10 + 32},
		{name: "r2004_plain", ver: R2004, bits: 10 + 24},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var events []Event
			w := New(Options{Version: tc.ver})
			w.WriteTV([]byte("abc"))
			assert.Equal(t, tc.bits, w.Position())

			r := NewReader(w.Bytes(), Options{Version: tc.ver, Recorder: RecorderFunc(func(ev Event) {
				events = append(events, ev)
			})})
			assert.Equal(t, []byte("abc"), r.ReadTV())
			assert.Equal(t, tc.bits, r.Position())
			assert.Empty(t, events)
		})
	}
}

func TestTV_ForeignTerminatorIsTolerated(t *testing.T) {
	w := writer(R2000)
	w.WriteTV([]byte("abc"))

	var events []Event
	r := NewReader(w.Bytes(), Options{Version: R2004, Recorder: RecorderFunc(func(ev Event) {
		events = append(events, ev)
	})})
	assert.Equal(t, []byte("abc"), r.ReadTV())
	require.Len(t, events, 1)
	assert.Equal(t, SeverityDebug, events[0].Severity)
	assert.Equal(t, CodeHeuristic, events[0].Code)
	assert.Zero(t, r.Errors())
}

func TestTV_EmptyAndEmbeddedNul(t *testing.T) {
	w := writer(R2000)
	w.WriteTV(nil)
	assert.Equal(t, uint64(2), w.Position())
	w.WriteTV([]byte("ab\x00cd"))

	r := reread(w)
	assert.Empty(t, r.ReadTV())
	assert.Equal(t, []byte("ab"), r.ReadTV())
}

func TestTV_Truncates(t *testing.T) {
	w := writer(R2004)
	w.WriteTV(bytes.Repeat([]byte{'x'}, 70000))
	assert.Equal(t, 1, w.Warnings())
	assert.Zero(t, w.Errors())

	got := reread(w).ReadTV()
	assert.Len(t, got, 0xFFFF)
}

func TestTF(t *testing.T) {
	w := writer(R2000)
	w.WriteTF([]byte("AC1015"), 6)
	w.WriteTF([]byte("ab"), 4)
	w.WriteTF([]byte("toolong"), 3)
	assert.Equal(t, 1, w.Warnings())

	r := reread(w)
	assert.Equal(t, []byte("AC1015"), r.ReadTF(6))
	assert.Equal(t, []byte{'a', 'b', 0, 0}, r.ReadTF(4))
	dst := make([]byte, 3)
	r.ReadTFF(dst)
	assert.Equal(t, []byte("too"), dst)
	assert.Nil(t, r.ReadTF(1))
	assert.Equal(t, 1, r.Errors())
}

func TestTU(t *testing.T) {
	units := []uint16{'h', 'i', 0x4E2D}
	w := writer(R2007)
	w.WriteTU(units)
	assert.Equal(t, uint64(10+16*4), w.Position())
	w.WriteTU(nil)
	w.WriteTU([]uint16{'a', 0, 'b'})

	r := reread(w)
	if diff := cmp.Diff(units, r.ReadTU()); diff != "" {
		t.Fatalf("TU mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, r.ReadTU())
	assert.Equal(t, []uint16{'a'}, r.ReadTU())
	assert.Zero(t, r.Errors())
}

func TestTU32(t *testing.T) {
	w := writer(R2007)
	w.WriteTU32([]uint16{'x', 0x263A})
	assert.Equal(t, []byte{4, 0, 0, 0, 'x', 0, 0x3A, 0x26}, w.Bytes())
	assert.Equal(t, []uint16{'x', 0x263A}, reread(w).ReadTU32())

	ucs4 := []byte{
		12, 0, 0, 0,
		'A', 0, 0, 0,
		0x00, 0xF6, 0x01, 0x00,
		0, 0, 0, 0,
	}
	r := NewReader(ucs4, Options{Version: R2007})
	assert.Equal(t, []uint16{'A', 0xD83D, 0xDE00}, r.ReadTU32())

	odd := []byte{4, 0, 0, 0, 'A', 0, 'B', 0}
	r = NewReader(odd, Options{Version: R2007})
	assert.Equal(t, []uint16{'A', 'B'}, r.ReadTU32())
}

func TestT32(t *testing.T) {
	w := writer(R2000)
	w.WriteT32(NarrowText([]byte("abc")))
	got := reread(w).ReadT32()
	assert.False(t, got.IsWide())
	assert.Equal(t, []byte("abc"), got.Narrow())

	w = writer(R2010)
	w.WriteT32(NarrowText([]byte("abc")))
	got = reread(w).ReadT32()
	assert.True(t, got.IsWide())
	assert.Equal(t, []uint16{'a', 'b', 'c'}, got.Wide())
}

func TestT_ConvertsBetweenWidths(t *testing.T) {
	t.Run("narrow_to_wide", func(t *testing.T) {
		w := New(Options{Version: R2007, FromVersion: R2000, Codepage: codepage.ANSI1252})
		w.WriteT(NarrowText([]byte{'h', 0xE9, 'l', 0x80}))

		r := NewReader(w.Bytes(), Options{Version: R2007})
		got := r.ReadT()
		require.True(t, got.IsWide())
		assert.Equal(t, []uint16{'h', 0xE9, 'l', 0x20AC}, got.Wide())
		assert.Equal(t, "hél€", r.TextString(got))
	})
	t.Run("wide_to_narrow", func(t *testing.T) {
		w := New(Options{Version: R2000, FromVersion: R2007, Codepage: codepage.ANSI1252})
		w.WriteT(WideText([]uint16{0x4E2D, 'x', 0xE9}))

		r := NewReader(w.Bytes(), Options{Version: R2000, Codepage: codepage.ANSI1252})
		got := r.ReadT()
		require.False(t, got.IsWide())
		assert.Equal(t, []byte(`\U+4E2Dx`+"\xE9"), got.Narrow())
		assert.Equal(t, "中xé", r.TextString(got))
	})
	t.Run("asian_codepage", func(t *testing.T) {
		w := New(Options{Version: R2000, FromVersion: R2007, Codepage: codepage.ANSI932})
		w.WriteT(WideText([]uint16{0x3042, 'a'}))

		r := NewReader(w.Bytes(), Options{Version: R2000, Codepage: codepage.ANSI932})
		got := r.ReadT()
		assert.Equal(t, []byte{0x82, 0xA0, 'a'}, got.Narrow())
		assert.Equal(t, "あa", r.TextString(got))
	})
}

func TestT_Helpers(t *testing.T) {
	narrow := NewReader(nil, Options{Version: R2000, Codepage: codepage.ANSI1251})
	wide := NewReader(nil, Options{Version: R2007})

	for _, c := range []*Cursor{narrow, wide} {
		txt := c.SetT("Дом")
		assert.Equal(t, c.SourceVariant().Wide, txt.IsWide())
		assert.True(t, c.EqualT(txt, "Дом"))
		assert.False(t, c.EqualT(txt, "Дым"))
		assert.Equal(t, "Дом", c.TextString(txt))
		assert.False(t, EmptyT(txt))
		assert.True(t, EmptyT(c.SetT("")))
	}
	assert.Equal(t, []byte{0xC4, 0xEE, 0xEC}, narrow.SetT("Дом").Narrow())
	assert.True(t, EmptyT(Text{}))
}
