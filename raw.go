package dwgbits

import (
	"math"
	"time"
)

// nanBits is the pattern returned by double reads that failed.
const nanBits = 0xFFFFFFFFFFFFFFFF

// NaN is the sentinel double returned on read failure.
var NaN = math.Float64frombits(nanBits)

// IsNaNSentinel reports whether f is the read-failure sentinel. Ordinary NaN
// payloads do not match.
func IsNaNSentinel(f float64) bool {
	return math.Float64bits(f) == nanBits
}

// ReadB reads one bit.
func (c *Cursor) ReadB() uint8 {
	if !c.has("B", 1) {
		return 0
	}
	return c.readBit()
}

// WriteB writes the low bit of v.
func (c *Cursor) WriteB(v uint8) {
	c.reserve("B", 1)
	c.writeBit(v)
}

// ReadBB reads two bits, the first one being the high bit of the result.
func (c *Cursor) ReadBB() uint8 {
	if !c.has("BB", 2) {
		return 0
	}
	if c.bit < 7 {
		v := (c.buf[c.off] >> (6 - c.bit)) & 3
		c.bit += 2
		if c.bit == 8 {
			c.bit = 0
			c.off++
		}
		return v
	}
	// последний бит байта + первый бит следующего
	v := (c.buf[c.off]&1)<<1 | c.buf[c.off+1]>>7
	c.off++
	c.bit = 1
	return v
}

// WriteBB writes the low two bits of v.
func (c *Cursor) WriteBB(v uint8) {
	c.reserve("BB", 2)
	c.writeBit(v >> 1)
	c.writeBit(v)
}

// Read3B reads the variable-length code 0, 10, 110, 111 as 0, 2, 6, 7.
func (c *Cursor) Read3B() uint8 {
	var v uint8
	for i := 0; i < 3; i++ {
		if !c.has("3B", 1) {
			return v
		}
		b := c.readBit()
		v = v<<1 | b
		if b == 0 {
			break
		}
	}
	return v
}

// Write3B writes one of 0, 2, 6 or 7. Other values are recorded and written
// as the next representable value.
func (c *Cursor) Write3B(v uint8) {
	switch v {
	case 0:
		c.WriteB(0)
	case 2:
		c.WriteBB(2)
	case 6, 7:
		c.WriteBB(3)
		c.WriteB(v & 1)
	default:
		c.report(SeverityError, CodeInvalidValue, "3B", "%d has no 3B code", v)
		switch {
		case v == 1:
			c.Write3B(2)
		case v < 6:
			c.Write3B(6)
		default:
			c.Write3B(7)
		}
	}
}

// Read4Bits reads a nibble, high bit first.
func (c *Cursor) Read4Bits() uint8 {
	if !c.has("4BITS", 4) {
		return 0
	}
	var v uint8
	for i := 0; i < 4; i++ {
		v = v<<1 | c.readBit()
	}
	return v
}

// Write4Bits writes the low nibble of v, high bit first.
func (c *Cursor) Write4Bits(v uint8) {
	c.reserve("4BITS", 4)
	for i := 3; i >= 0; i-- {
		c.writeBit(v >> i)
	}
}

// ReadRC reads a raw byte at any bit offset.
func (c *Cursor) ReadRC() byte {
	if !c.has("RC", 8) {
		return 0
	}
	return c.readByte()
}

// WriteRC writes a raw byte at any bit offset.
func (c *Cursor) WriteRC(v byte) {
	c.reserve("RC", 8)
	c.writeByte(v)
}

// ReadRS reads a little-endian 16-bit value.
func (c *Cursor) ReadRS() uint16 {
	if !c.has("RS", 16) {
		return 0
	}
	lo := c.readByte()
	return uint16(c.readByte())<<8 | uint16(lo)
}

// WriteRS writes v little-endian.
func (c *Cursor) WriteRS(v uint16) {
	c.reserve("RS", 16)
	c.writeByte(byte(v))
	c.writeByte(byte(v >> 8))
}

// ReadRSBE reads a big-endian 16-bit value.
func (c *Cursor) ReadRSBE() uint16 {
	if !c.has("RS_BE", 16) {
		return 0
	}
	hi := c.readByte()
	return uint16(hi)<<8 | uint16(c.readByte())
}

// WriteRSBE writes v big-endian.
func (c *Cursor) WriteRSBE(v uint16) {
	c.reserve("RS_BE", 16)
	c.writeByte(byte(v >> 8))
	c.writeByte(byte(v))
}

// ReadRL reads a little-endian 32-bit value.
func (c *Cursor) ReadRL() uint32 {
	if !c.has("RL", 32) {
		return 0
	}
	var v uint32
	for i := 0; i < 4; i++ {
		v |= uint32(c.readByte()) << (8 * i)
	}
	return v
}

// WriteRL writes v little-endian.
func (c *Cursor) WriteRL(v uint32) {
	c.reserve("RL", 32)
	for i := 0; i < 4; i++ {
		c.writeByte(byte(v >> (8 * i)))
	}
}

// ReadRLBE reads a big-endian 32-bit value.
func (c *Cursor) ReadRLBE() uint32 {
	if !c.has("RL_BE", 32) {
		return 0
	}
	var v uint32
	for i := 0; i < 4; i++ {
		v = v<<8 | uint32(c.readByte())
	}
	return v
}

// WriteRLBE writes v big-endian.
func (c *Cursor) WriteRLBE(v uint32) {
	c.reserve("RL_BE", 32)
	for i := 3; i >= 0; i-- {
		c.writeByte(byte(v >> (8 * i)))
	}
}

// ReadRLL reads a little-endian 64-bit value.
func (c *Cursor) ReadRLL() uint64 {
	if !c.has("RLL", 64) {
		return 0
	}
	return c.readLE(8)
}

// WriteRLL writes v little-endian.
func (c *Cursor) WriteRLL(v uint64) {
	c.reserve("RLL", 64)
	c.writeLE(v, 8)
}

// ReadRD reads a little-endian IEEE-754 double. On overflow it returns the
// NaN sentinel.
func (c *Cursor) ReadRD() float64 {
	if !c.has("RD", 64) {
		return NaN
	}
	return math.Float64frombits(c.readLE(8))
}

// WriteRD writes f bit-exactly.
func (c *Cursor) WriteRD(f float64) {
	c.reserve("RD", 64)
	c.writeLE(math.Float64bits(f), 8)
}

// Read2RD reads two raw doubles.
func (c *Cursor) Read2RD() [2]float64 {
	return [2]float64{c.ReadRD(), c.ReadRD()}
}

// Write2RD writes two raw doubles.
func (c *Cursor) Write2RD(p [2]float64) {
	c.WriteRD(p[0])
	c.WriteRD(p[1])
}

// Read3RD reads three raw doubles.
func (c *Cursor) Read3RD() [3]float64 {
	return [3]float64{c.ReadRD(), c.ReadRD(), c.ReadRD()}
}

// Write3RD writes three raw doubles.
func (c *Cursor) Write3RD(p [3]float64) {
	c.WriteRD(p[0])
	c.WriteRD(p[1])
	c.WriteRD(p[2])
}

// ReadBits reads n raw bits into a new slice, packed from the first byte's
// high bit. A short buffer returns nil.
func (c *Cursor) ReadBits(n int) []byte {
	if n < 0 || !c.has("bits", n) {
		return nil
	}
	out := make([]byte, (n+7)/8)
	for i := 0; i < n/8; i++ {
		out[i] = c.readByte()
	}
	if r := n % 8; r != 0 {
		var v byte
		for i := 0; i < r; i++ {
			v = v<<1 | c.readBit()
		}
		out[n/8] = v << (8 - r)
	}
	return out
}

// WriteBits writes the first n bits of src, high bit first.
func (c *Cursor) WriteBits(src []byte, n int) {
	if n > len(src)*8 {
		c.report(SeverityError, CodeInvalidValue, "bits", "%d bits requested from %d bytes", n, len(src))
		n = len(src) * 8
	}
	if n <= 0 {
		return
	}
	c.reserve("bits", n)
	for i := 0; i < n/8; i++ {
		c.writeByte(src[i])
	}
	if r := n % 8; r != 0 {
		v := src[n/8]
		for i := 0; i < r; i++ {
			c.writeBit(v >> (7 - i))
		}
	}
}

func (c *Cursor) readLE(n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v |= uint64(c.readByte()) << (8 * i)
	}
	return v
}

func (c *Cursor) writeLE(v uint64, n int) {
	for i := 0; i < n; i++ {
		c.writeByte(byte(v >> (8 * i)))
	}
}

// Timestamp is a Julian day number and the milliseconds into that day.
type Timestamp struct {
	Days   uint32
	Millis uint32
}

const unixEpochJulianDay = 2440588

// Time converts t to UTC wall time.
func (t Timestamp) Time() time.Time {
	secs := (int64(t.Days) - unixEpochJulianDay) * 86400
	return time.Unix(secs, int64(t.Millis)*int64(time.Millisecond)).UTC()
}

// TimestampOf converts wall time to a Timestamp.
func TimestampOf(tm time.Time) Timestamp {
	ms := tm.UnixMilli()
	days := ms / 86400000
	rem := ms % 86400000
	if rem < 0 {
		days--
		rem += 86400000
	}
	return Timestamp{Days: uint32(days + unixEpochJulianDay), Millis: uint32(rem)}
}

// ReadTIMEBLL reads a timestamp as two BL values.
func (c *Cursor) ReadTIMEBLL() Timestamp {
	return Timestamp{Days: c.ReadBL(), Millis: c.ReadBL()}
}

// WriteTIMEBLL writes a timestamp as two BL values.
func (c *Cursor) WriteTIMEBLL(t Timestamp) {
	c.WriteBL(t.Days)
	c.WriteBL(t.Millis)
}

// ReadTIMERLL reads a timestamp as two RL values.
func (c *Cursor) ReadTIMERLL() Timestamp {
	return Timestamp{Days: c.ReadRL(), Millis: c.ReadRL()}
}

// WriteTIMERLL writes a timestamp as two RL values.
func (c *Cursor) WriteTIMERLL(t Timestamp) {
	c.WriteRL(t.Days)
	c.WriteRL(t.Millis)
}
