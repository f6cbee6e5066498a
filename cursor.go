package dwgbits

import (
	"fmt"

	"github.com/svanichkin/dwgbits/codepage"
)

const (
	// pageSize is the growth step of writer buffers.
	pageSize = 4096
	// MaxBufferSize bounds writer growth. Larger requests abort the cursor.
	MaxBufferSize = 1<<31 - 1
)

// Cursor is a bit position inside a byte buffer, plus the session settings
// every primitive needs. Bits are consumed most significant first within a
// byte. A Cursor is not safe for concurrent use; independent cursors over
// disjoint buffers are.
type Cursor struct {
	buf      []byte
	off      int   // current byte
	bit      uint8 // 0..7 within buf[off]
	used     int   // bytes touched by writes
	growable bool

	// Version is the release being written (or read, for readers).
	Version Version
	// FromVersion is the release the data was decoded from.
	FromVersion Version
	// Codepage applies to narrow (TV) strings.
	Codepage codepage.Codepage
	// Tables converts narrow codes; codepage.Default when nil.
	Tables codepage.Table

	rec      Recorder
	strict   Strictness
	errs     int
	warnings int
}

// New returns an empty, growable cursor for writing.
func New(opts Options) *Cursor {
	c := opts.cursor()
	c.growable = true
	return c
}

// NewReader returns a cursor over data positioned at bit 0. The cursor reads
// data in place.
func NewReader(data []byte, opts Options) *Cursor {
	c := opts.cursor()
	c.buf = data
	return c
}

// Position returns the absolute bit position.
func (c *Cursor) Position() uint64 {
	return uint64(c.off)*8 + uint64(c.bit)
}

// Offset returns the current byte and bit.
func (c *Cursor) Offset() (int, uint8) {
	return c.off, c.bit
}

// Len returns the size of the underlying buffer in bytes.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of bits left before the end of the buffer.
func (c *Cursor) Remaining() uint64 {
	end := uint64(len(c.buf)) * 8
	if p := c.Position(); p < end {
		return end - p
	}
	return 0
}

// Bytes returns the meaningful part of the buffer: the whole input for
// readers, everything written so far for writers.
func (c *Cursor) Bytes() []byte {
	if !c.growable {
		return c.buf
	}
	n := c.used
	if end := c.off + int((c.bit+7)/8); end > n {
		n = end
	}
	if n > len(c.buf) {
		n = len(c.buf)
	}
	return c.buf[:n]
}

// SetPosition moves to an absolute bit position. Readers refuse to move past
// the end of the buffer (the position is clamped and OutOfBounds recorded);
// writers grow.
func (c *Cursor) SetPosition(pos uint64) {
	end := uint64(len(c.buf)) * 8
	if pos > end {
		if c.growable {
			c.grow("seek", int((pos+7)/8))
		} else {
			c.report(SeverityError, CodeOutOfBounds, "seek", "position %d beyond end %d", pos, end)
			pos = end
		}
	}
	c.off = int(pos / 8)
	c.bit = uint8(pos % 8)
}

// Advance moves the position by delta bits in either direction. Moving before
// the start records a BufferUnderflow warning and resets to 0. Moving past the
// end records a BufferOverflow warning and stops at the end, unless the cursor
// grows.
func (c *Cursor) Advance(delta int64) {
	pos := int64(c.Position()) + delta
	if pos < 0 {
		c.report(SeverityWarning, CodeBufferUnderflow, "advance", "moved %d bits before start", -pos)
		c.off, c.bit = 0, 0
		return
	}
	end := int64(len(c.buf)) * 8
	if pos > end {
		if c.growable {
			c.grow("advance", int((pos+7)/8))
		} else {
			c.report(SeverityWarning, CodeBufferOverflow, "advance", "moved %d bits past end", pos-end)
			pos = end
		}
	}
	c.off = int(pos / 8)
	c.bit = uint8(pos % 8)
}

// AlignByte moves to the next byte boundary if the cursor is inside a byte.
// Skipped bits are left as they are.
func (c *Cursor) AlignByte() {
	if c.bit != 0 {
		c.bit = 0
		c.off++
		if c.growable {
			c.grow("align", c.off)
			c.touch()
		}
	}
}

// ResetOrigin discards the bytes before the current one; offsets become
// relative to it. The bit position inside the byte is kept.
func (c *Cursor) ResetOrigin() {
	c.buf = c.buf[c.off:]
	c.used -= c.off
	if c.used < 0 {
		c.used = 0
	}
	c.off = 0
}

// Sub returns a reader over bytes [from, to) of c's buffer sharing its memory
// and session settings. Writes through the view land in c's buffer until the
// view grows past its end.
func (c *Cursor) Sub(from, to int) *Cursor {
	if from < 0 || to > len(c.buf) || from > to {
		c.report(SeverityError, CodeOutOfBounds, "sub", "range [%d,%d) outside buffer of %d bytes", from, to, len(c.buf))
		from = min(max(from, 0), len(c.buf))
		to = min(max(to, from), len(c.buf))
	}
	s := &Cursor{
		buf:         c.buf[from:to:to],
		Version:     c.Version,
		FromVersion: c.FromVersion,
		Codepage:    c.Codepage,
		Tables:      c.Tables,
		rec:         c.rec,
		strict:      c.strict,
	}
	return s
}

// Errors returns the number of error events recorded on c.
func (c *Cursor) Errors() int { return c.errs }

// Warnings returns the number of warning events recorded on c.
func (c *Cursor) Warnings() int { return c.warnings }

// ResetCounters zeroes the error and warning counters.
func (c *Cursor) ResetCounters() { c.errs, c.warnings = 0, 0 }

// Variant resolves the write-side variant.
func (c *Cursor) Variant() Variant { return VariantOf(c.Version) }

// SourceVariant resolves the read-side variant.
func (c *Cursor) SourceVariant() Variant { return VariantOf(c.FromVersion) }

func (c *Cursor) tables() codepage.Table {
	if c.Tables == nil {
		return codepage.Default
	}
	return c.Tables
}

func (c *Cursor) report(sev Severity, code Code, op, format string, args ...any) {
	ev := Event{
		Severity: sev,
		Code:     code,
		Op:       op,
		Byte:     c.off,
		Bit:      c.bit,
		Msg:      fmt.Sprintf(format, args...),
	}
	switch sev {
	case SeverityError:
		c.errs++
	case SeverityWarning:
		c.warnings++
	}
	rec := c.rec
	if rec == nil {
		rec = nopRecorder
	}
	rec.Record(ev)
	if code == CodeOutOfMemory || (sev == SeverityError && c.strict.limit > 0 && c.errs > c.strict.limit) {
		panic(&AbortError{Event: ev, Errors: c.errs, Snapshot: c.Snapshot()})
	}
}

// has reports whether n more bits can be read, recording an overflow if not.
func (c *Cursor) has(op string, n int) bool {
	if c.off*8+int(c.bit)+n <= len(c.buf)*8 {
		return true
	}
	c.report(SeverityError, CodeBufferOverflow, op, "need %d bits, %d left", n, c.Remaining())
	return false
}

// reserve makes room for n more bits at the current position.
func (c *Cursor) reserve(op string, n int) {
	c.grow(op, (c.off*8+int(c.bit)+n+7)/8)
}

// grow extends the buffer to at least size bytes, a page at a time.
func (c *Cursor) grow(op string, size int) {
	if size <= len(c.buf) {
		return
	}
	if size > MaxBufferSize {
		c.report(SeverityError, CodeOutOfMemory, op, "buffer of %d bytes exceeds %d", size, MaxBufferSize)
		return
	}
	n := (size - len(c.buf) + pageSize - 1) / pageSize * pageSize
	c.buf = append(c.buf, make([]byte, n)...)
}

func (c *Cursor) touch() {
	if n := c.off + int((c.bit+7)/8); n > c.used {
		c.used = n
	}
}

func (c *Cursor) readBit() uint8 {
	v := (c.buf[c.off] >> (7 - c.bit)) & 1
	c.bit++
	if c.bit == 8 {
		c.bit = 0
		c.off++
	}
	return v
}

func (c *Cursor) readByte() byte {
	if c.bit == 0 {
		v := c.buf[c.off]
		c.off++
		return v
	}
	v := c.buf[c.off]<<c.bit | c.buf[c.off+1]>>(8-c.bit)
	c.off++
	return v
}

func (c *Cursor) writeBit(v uint8) {
	mask := byte(0x80) >> c.bit
	if v&1 != 0 {
		c.buf[c.off] |= mask
	} else {
		c.buf[c.off] &^= mask
	}
	c.bit++
	if c.bit == 8 {
		c.bit = 0
		c.off++
	}
	c.touch()
}

func (c *Cursor) writeByte(v byte) {
	if c.bit == 0 {
		c.buf[c.off] = v
		c.off++
		c.touch()
		return
	}
	// верхние bit бит первого байта уже заняты
	keep := byte(0xFF) << (8 - c.bit)
	c.buf[c.off] = c.buf[c.off]&keep | v>>c.bit
	c.buf[c.off+1] = c.buf[c.off+1]&^keep | v<<(8-c.bit)
	c.off++
	c.touch()
}
