package dwgbits

import (
	"bytes"
	"slices"
	"unicode/utf16"
)

// Text is a string as a session stores it: narrow codepage bytes before
// R2007, UCS-2 code units from R2007.
type Text struct {
	narrow []byte
	wide   []uint16
	isWide bool
}

// NarrowText wraps codepage bytes.
func NarrowText(b []byte) Text { return Text{narrow: b} }

// WideText wraps UCS-2 code units.
func WideText(u []uint16) Text { return Text{wide: u, isWide: true} }

// IsWide reports whether t holds code units.
func (t Text) IsWide() bool { return t.isWide }

// Narrow returns the bytes of a narrow text.
func (t Text) Narrow() []byte { return t.narrow }

// Wide returns the code units of a wide text.
func (t Text) Wide() []uint16 { return t.wide }

// Len returns the number of bytes or code units.
func (t Text) Len() int {
	if t.isWide {
		return len(t.wide)
	}
	return len(t.narrow)
}

func (c *Cursor) readLength() int {
	if c.SourceVariant().ShortLengths {
		return int(c.ReadRS())
	}
	return int(c.ReadBS())
}

func (c *Cursor) writeLength(n int) {
	if c.Variant().ShortLengths {
		c.WriteRS(uint16(n))
		return
	}
	c.WriteBS(uint16(n))
}

// ReadTF reads n raw bytes.
func (c *Cursor) ReadTF(n int) []byte {
	if n <= 0 || !c.has("TF", 8*n) {
		return nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = c.readByte()
	}
	return b
}

// ReadTFF fills dst with raw bytes.
func (c *Cursor) ReadTFF(dst []byte) {
	if !c.has("TFF", 8*len(dst)) {
		clear(dst)
		return
	}
	for i := range dst {
		dst[i] = c.readByte()
	}
}

// WriteTF writes exactly n bytes of b, zero-padded or cut.
func (c *Cursor) WriteTF(b []byte, n int) {
	if n <= 0 {
		return
	}
	if len(b) > n {
		c.report(SeverityWarning, CodeTruncated, "TF", "%d bytes cut to %d", len(b), n)
	}
	c.reserve("TF", 8*n)
	for i := 0; i < n; i++ {
		var v byte
		if i < len(b) {
			v = b[i]
		}
		c.writeByte(v)
	}
}

// ReadTV reads a length-prefixed narrow string. The length is RS before R13
// and BS after. One trailing NUL is dropped whether or not the writer
// counted it.
func (c *Cursor) ReadTV() []byte {
	n := c.readLength()
	if n == 0 || !c.has("TV", 8*n) {
		return nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = c.readByte()
	}
	counted := c.SourceVariant().CountedNul
	if b[n-1] == 0 {
		if !counted {
			c.report(SeverityDebug, CodeHeuristic, "TV", "terminator counted in length %d", n)
		}
		return b[:n-1]
	}
	if counted {
		c.report(SeverityDebug, CodeHeuristic, "TV", "no terminator in length %d", n)
	}
	return b
}

// WriteTV writes a narrow string, up to its first NUL. Targets R13 to R2000
// get a terminator counted in the length. Strings longer than the 16-bit
// length allows are cut with a warning.
func (c *Cursor) WriteTV(b []byte) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	nul := 0
	if len(b) > 0 && c.Variant().CountedNul {
		nul = 1
	}
	if len(b)+nul > 0xFFFF {
		c.report(SeverityWarning, CodeTruncated, "TV", "%d bytes cut to %d", len(b), 0xFFFF-nul)
		b = b[:0xFFFF-nul]
	}
	c.writeLength(len(b) + nul)
	c.reserve("TV", 8*(len(b)+nul))
	for _, v := range b {
		c.writeByte(v)
	}
	if nul == 1 {
		c.writeByte(0)
	}
}

// ReadTU reads a UCS-2 string prefixed by its BS unit count. A trailing zero
// unit is dropped.
func (c *Cursor) ReadTU() []uint16 {
	n := int(c.ReadBS())
	if n == 0 || !c.has("TU", 16*n) {
		return nil
	}
	u := make([]uint16, n)
	for i := range u {
		lo := c.readByte()
		u[i] = uint16(c.readByte())<<8 | uint16(lo)
	}
	if u[n-1] == 0 {
		u = u[:n-1]
	}
	return u
}

// WriteTU writes u up to its first zero unit, followed by a counted
// terminator. An empty string is a zero count.
func (c *Cursor) WriteTU(u []uint16) {
	if i := slices.Index(u, 0); i >= 0 {
		u = u[:i]
	}
	if len(u) == 0 {
		c.WriteBS(0)
		return
	}
	if len(u)+1 > 0xFFFF {
		c.report(SeverityWarning, CodeTruncated, "TU", "%d units cut to %d", len(u), 0xFFFE)
		u = u[:0xFFFE]
	}
	c.WriteBS(uint16(len(u) + 1))
	c.reserve("TU", 16*(len(u)+1))
	for _, v := range u {
		c.writeByte(byte(v))
		c.writeByte(byte(v >> 8))
	}
	c.writeByte(0)
	c.writeByte(0)
}

// ReadTU32 reads a wide string prefixed by its RL byte count. The payload
// is taken as UCS-4 when the count is a multiple of 4 and the first unit's
// upper two bytes are zero; otherwise as UCS-2.
func (c *Cursor) ReadTU32() []uint16 {
	n := int(c.ReadRL())
	if n == 0 || !c.has("TU32", 8*n) {
		return nil
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = c.readByte()
	}
	var u []uint16
	if n%4 == 0 && b[2] == 0 && b[3] == 0 {
		u = make([]uint16, 0, n/4)
		for i := 0; i+4 <= n; i += 4 {
			r := rune(b[i]) | rune(b[i+1])<<8 | rune(b[i+2])<<16 | rune(b[i+3])<<24
			if r > 0xFFFF {
				r1, r2 := utf16.EncodeRune(r)
				u = append(u, uint16(r1), uint16(r2))
				continue
			}
			u = append(u, uint16(r))
		}
	} else {
		if n%2 != 0 {
			c.report(SeverityWarning, CodeInvalidValue, "TU32", "odd byte count %d", n)
		}
		u = make([]uint16, n/2)
		for i := range u {
			u[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
		}
	}
	if len(u) > 0 && u[len(u)-1] == 0 {
		u = u[:len(u)-1]
	}
	return u
}

// WriteTU32 writes u as UCS-2 with an RL byte count and no terminator.
func (c *Cursor) WriteTU32(u []uint16) {
	c.WriteRL(uint32(2 * len(u)))
	c.reserve("TU32", 16*len(u))
	for _, v := range u {
		c.writeByte(byte(v))
		c.writeByte(byte(v >> 8))
	}
}

// ReadT32 reads an RL-counted string: wide from R2007, narrow before.
func (c *Cursor) ReadT32() Text {
	if c.SourceVariant().Wide {
		return WideText(c.ReadTU32())
	}
	n := int(c.ReadRL())
	if n == 0 || !c.has("T32", 8*n) {
		return NarrowText(nil)
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = c.readByte()
	}
	if b[n-1] == 0 {
		b = b[:n-1]
	}
	return NarrowText(b)
}

// WriteT32 writes an RL-counted string in the target's width.
func (c *Cursor) WriteT32(t Text) {
	if c.Variant().Wide {
		c.WriteTU32(c.wideText(t))
		return
	}
	b := c.narrowText(t)
	c.WriteRL(uint32(len(b)))
	c.reserve("T32", 8*len(b))
	for _, v := range b {
		c.writeByte(v)
	}
}

// ReadT reads a string in the source release's representation.
func (c *Cursor) ReadT() Text {
	if c.SourceVariant().Wide {
		return WideText(c.ReadTU())
	}
	return NarrowText(c.ReadTV())
}

// WriteT writes t in the target release's representation, converting
// between narrow and wide through the session codepage when they differ.
func (c *Cursor) WriteT(t Text) {
	if c.Variant().Wide {
		c.WriteTU(c.wideText(t))
		return
	}
	c.WriteTV(c.narrowText(t))
}

func (c *Cursor) wideText(t Text) []uint16 {
	if t.isWide {
		return t.wide
	}
	return wideOf(t.narrow, c.Codepage, c.tables())
}

func (c *Cursor) narrowText(t Text) []byte {
	if !t.isWide {
		return t.narrow
	}
	return narrowOf(t.wide, c.Codepage, c.tables())
}

// TextString converts t to UTF-8.
func (c *Cursor) TextString(t Text) string {
	if t.isWide {
		return TUToUTF8(t.wide)
	}
	return TVToUTF8(t.narrow, c.Codepage, c.tables())
}

// SetT converts UTF-8 into the representation of the source release, the
// one ReadT returns.
func (c *Cursor) SetT(s string) Text {
	if c.SourceVariant().Wide {
		return WideText(UTF8ToTU(s, false))
	}
	return NarrowText(UTF8ToTV(s, c.Codepage, c.tables()))
}

// EqualT reports whether t holds the UTF-8 string s.
func (c *Cursor) EqualT(t Text, s string) bool {
	if t.isWide {
		return slices.Equal(t.wide, UTF8ToTU(s, false))
	}
	return bytes.Equal(t.narrow, UTF8ToTV(s, c.Codepage, c.tables()))
}

// EmptyT reports whether t has no characters.
func EmptyT(t Text) bool { return t.Len() == 0 }
