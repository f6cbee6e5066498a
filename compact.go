package dwgbits

import "math"

// epsilon is the tolerance of DD default matching and BE normalization.
const epsilon = 1e-12

// ReadBS reads a bitshort: 00 RS, 01 RC, 10 zero, 11 256.
func (c *Cursor) ReadBS() uint16 {
	if !c.has("BS", 2) {
		return 0
	}
	switch c.ReadBB() {
	case 0:
		return c.ReadRS()
	case 1:
		return uint16(c.ReadRC())
	case 2:
		return 0
	}
	return 256
}

// WriteBS writes v in the shortest bitshort form.
func (c *Cursor) WriteBS(v uint16) {
	switch {
	case v == 0:
		c.WriteBB(2)
	case v == 256:
		c.WriteBB(3)
	case v < 256:
		c.WriteBB(1)
		c.WriteRC(byte(v))
	default:
		c.WriteBB(0)
		c.WriteRS(v)
	}
}

// ReadBL reads a bitlong: 00 RL, 01 RC, 10 zero. The prefix 11 is invalid;
// it is recorded and 256 returned.
func (c *Cursor) ReadBL() uint32 {
	if !c.has("BL", 2) {
		return 0
	}
	switch c.ReadBB() {
	case 0:
		return c.ReadRL()
	case 1:
		return uint32(c.ReadRC())
	case 2:
		return 0
	}
	c.report(SeverityError, CodeInvalidPrefix, "BL", "prefix 11")
	return 256
}

// WriteBL writes v in the shortest bitlong form.
func (c *Cursor) WriteBL(v uint32) {
	switch {
	case v == 0:
		c.WriteBB(2)
	case v < 256:
		c.WriteBB(1)
		c.WriteRC(byte(v))
	default:
		c.WriteBB(0)
		c.WriteRL(v)
	}
}

// ReadBLd reads a signed bitlong.
func (c *Cursor) ReadBLd() int32 {
	return int32(c.ReadBL())
}

// WriteBLd writes a signed bitlong. Negative values always take the full form.
func (c *Cursor) WriteBLd(v int32) {
	switch {
	case v == 0:
		c.WriteBB(2)
	case v > 0 && v < 256:
		c.WriteBB(1)
		c.WriteRC(byte(v))
	default:
		c.WriteBB(0)
		c.WriteRL(uint32(v))
	}
}

// ReadBOT reads an object type: 00 RC, 01 RC+0x1F0, 1x RS.
func (c *Cursor) ReadBOT() uint16 {
	if !c.has("BOT", 2) {
		return 0
	}
	switch c.ReadBB() {
	case 0:
		return uint16(c.ReadRC())
	case 1:
		return uint16(c.ReadRC()) + 0x1F0
	}
	return c.ReadRS()
}

// WriteBOT writes an object type in the shortest form.
func (c *Cursor) WriteBOT(v uint16) {
	switch {
	case v < 256:
		c.WriteBB(0)
		c.WriteRC(byte(v))
	case v >= 0x1F0 && v < 0x1F0+256:
		c.WriteBB(1)
		c.WriteRC(byte(v - 0x1F0))
	default:
		c.WriteBB(2)
		c.WriteRS(v)
	}
}

// maxBLL is one past the largest value a 7-byte payload holds.
const maxBLL = 1 << 56

func byteLen(v uint64) int {
	n := 0
	for v != 0 {
		n++
		v >>= 8
	}
	return n
}

// ReadBLL reads a 3-bit byte count followed by that many little-endian bytes.
func (c *Cursor) ReadBLL() uint64 {
	if !c.has("BLL", 3) {
		return 0
	}
	n := int(c.ReadBB())<<1 | int(c.ReadB())
	return c.readCounted("BLL", n)
}

// WriteBLL writes v with the smallest byte count. Values of 2^56 and more
// do not fit; they are recorded and their low 56 bits written.
func (c *Cursor) WriteBLL(v uint64) {
	if v >= maxBLL {
		c.report(SeverityError, CodeInvalidValue, "BLL", "%#x needs 8 bytes", v)
		v &= maxBLL - 1
	}
	n := byteLen(v)
	c.WriteBB(uint8(n >> 1))
	c.WriteB(uint8(n))
	c.writeCounted(v, n)
}

// Read3BLL reads a 3B byte count (0, 2, 6 or 7) and the little-endian payload.
func (c *Cursor) Read3BLL() uint64 {
	if !c.has("3BLL", 1) {
		return 0
	}
	return c.readCounted("3BLL", int(c.Read3B()))
}

// Write3BLL writes v with the smallest 3B byte count that holds it.
func (c *Cursor) Write3BLL(v uint64) {
	if v >= maxBLL {
		c.report(SeverityError, CodeInvalidValue, "3BLL", "%#x needs 8 bytes", v)
		v &= maxBLL - 1
	}
	var n uint8
	switch k := byteLen(v); {
	case k == 0:
		n = 0
	case k <= 2:
		n = 2
	case k <= 6:
		n = 6
	default:
		n = 7
	}
	c.Write3B(n)
	c.writeCounted(v, int(n))
}

func (c *Cursor) readCounted(op string, n int) uint64 {
	switch n {
	case 0:
		return 0
	case 1:
		return uint64(c.ReadRC())
	case 2:
		return uint64(c.ReadRS())
	case 4:
		return uint64(c.ReadRL())
	}
	if !c.has(op, 8*n) {
		return 0
	}
	return c.readLE(n)
}

func (c *Cursor) writeCounted(v uint64, n int) {
	if n == 0 {
		return
	}
	c.reserve("BLL", 8*n)
	c.writeLE(v, n)
}

const (
	maxMC  = 1 << 34
	maxUMC = 1 << 56
	maxMS  = 1 << 30
)

// ReadMC reads a signed modular char: 7-bit groups, least significant first,
// 0x80 on every byte but the last, 0x40 in the last byte for negatives.
func (c *Cursor) ReadMC() int64 {
	var v int64
	for i := 0; i < 5; i++ {
		if !c.has("MC", 8) {
			return 0
		}
		b := c.readByte()
		if b&0x80 == 0 {
			v |= int64(b&0x3F) << (7 * i)
			if b&0x40 != 0 {
				return -v
			}
			return v
		}
		v |= int64(b&0x7F) << (7 * i)
	}
	c.report(SeverityError, CodeInvalidValue, "MC", "more than 5 bytes")
	return 0
}

// WriteMC writes v as a modular char. |v| must be below 2^34.
func (c *Cursor) WriteMC(v int64) {
	neg := v < 0
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}
	if u >= maxMC {
		c.report(SeverityError, CodeInvalidValue, "MC", "%d out of range", v)
		u &= maxMC - 1
	}
	for u >= 0x40 {
		c.WriteRC(byte(u&0x7F) | 0x80)
		u >>= 7
	}
	last := byte(u)
	if neg {
		last |= 0x40
	}
	c.WriteRC(last)
}

// ReadUMC reads an unsigned modular char of up to 8 bytes.
func (c *Cursor) ReadUMC() uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		if !c.has("UMC", 8) {
			return 0
		}
		b := c.readByte()
		v |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return v
		}
	}
	c.report(SeverityError, CodeInvalidValue, "UMC", "more than 8 bytes")
	return 0
}

// WriteUMC writes v as an unsigned modular char. v must be below 2^56.
func (c *Cursor) WriteUMC(v uint64) {
	if v >= maxUMC {
		c.report(SeverityError, CodeInvalidValue, "UMC", "%d out of range", v)
		v &= maxUMC - 1
	}
	for v >= 0x80 {
		c.WriteRC(byte(v&0x7F) | 0x80)
		v >>= 7
	}
	c.WriteRC(byte(v))
}

// ReadMS reads a modular short: 15-bit little-endian words, 0x8000 marking
// continuation, at most two words.
func (c *Cursor) ReadMS() uint32 {
	var v uint32
	for i := 0; i < 2; i++ {
		if !c.has("MS", 16) {
			return 0
		}
		w := c.ReadRS()
		v |= uint32(w&0x7FFF) << (15 * i)
		if w&0x8000 == 0 {
			return v
		}
	}
	c.report(SeverityError, CodeInvalidValue, "MS", "more than 2 words")
	return 0
}

// WriteMS writes v as a modular short. v must be below 2^30.
func (c *Cursor) WriteMS(v uint32) {
	if v >= maxMS {
		c.report(SeverityError, CodeInvalidValue, "MS", "%d out of range", v)
		v &= maxMS - 1
	}
	if v >= 0x8000 {
		c.WriteRS(uint16(v&0x7FFF) | 0x8000)
		v >>= 15
	}
	c.WriteRS(uint16(v))
}

// ReadBD reads a bitdouble: 00 RD, 01 1.0, 10 0.0. The prefix 11 is
// invalid and yields the NaN sentinel.
func (c *Cursor) ReadBD() float64 {
	if !c.has("BD", 2) {
		return NaN
	}
	switch c.ReadBB() {
	case 0:
		return c.ReadRD()
	case 1:
		return 1.0
	case 2:
		return 0.0
	}
	c.report(SeverityError, CodeInvalidPrefix, "BD", "prefix 11")
	return NaN
}

// WriteBD writes f, using the shortcuts for exactly 0.0 and 1.0.
// Negative zero is kept as a raw double.
func (c *Cursor) WriteBD(f float64) {
	switch {
	case f == 0 && !math.Signbit(f):
		c.WriteBB(2)
	case f == 1:
		c.WriteBB(1)
	default:
		c.WriteBB(0)
		c.WriteRD(f)
	}
}

// Read2BD reads two bitdoubles.
func (c *Cursor) Read2BD() [2]float64 {
	return [2]float64{c.ReadBD(), c.ReadBD()}
}

// Write2BD writes two bitdoubles.
func (c *Cursor) Write2BD(p [2]float64) {
	c.WriteBD(p[0])
	c.WriteBD(p[1])
}

// Read3BD reads three bitdoubles.
func (c *Cursor) Read3BD() [3]float64 {
	return [3]float64{c.ReadBD(), c.ReadBD(), c.ReadBD()}
}

// Write3BD writes three bitdoubles.
func (c *Cursor) Write3BD(p [3]float64) {
	c.WriteBD(p[0])
	c.WriteBD(p[1])
	c.WriteBD(p[2])
}

// ReadDD reads a double that patches def:
//
//	00  def unchanged
//	01  4 bytes replace bytes 0..3 of def
//	10  bytes 4,5 then bytes 0..3 replace those of def
//	11  raw double
func (c *Cursor) ReadDD(def float64) float64 {
	if !c.has("DD", 2) {
		return NaN
	}
	bits := math.Float64bits(def)
	switch c.ReadBB() {
	case 0:
		return def
	case 1:
		if !c.has("DD", 32) {
			return NaN
		}
		bits = bits&^0xFFFFFFFF | c.readLE(4)
		return math.Float64frombits(bits)
	case 2:
		if !c.has("DD", 48) {
			return NaN
		}
		b4 := uint64(c.readByte())
		b5 := uint64(c.readByte())
		low := c.readLE(4)
		bits = bits&0xFFFF000000000000 | b5<<40 | b4<<32 | low
		return math.Float64frombits(bits)
	}
	return c.ReadRD()
}

// WriteDD writes f relative to def, sending as few bytes as the shared high
// bytes allow. Values within epsilon of def collapse to def.
func (c *Cursor) WriteDD(f, def float64) {
	v, d := math.Float64bits(f), math.Float64bits(def)
	switch {
	case v == d || math.Abs(f-def) < epsilon:
		c.WriteBB(0)
	case v>>32 == d>>32:
		c.WriteBB(1)
		c.reserve("DD", 32)
		c.writeLE(v, 4)
	case v>>48 == d>>48:
		c.WriteBB(2)
		c.reserve("DD", 48)
		c.writeByte(byte(v >> 32))
		c.writeByte(byte(v >> 40))
		c.writeLE(v, 4)
	default:
		c.WriteBB(3)
		c.WriteRD(f)
	}
}

// Read2DD reads two DD values against the matching defaults.
func (c *Cursor) Read2DD(def [2]float64) [2]float64 {
	return [2]float64{c.ReadDD(def[0]), c.ReadDD(def[1])}
}

// Write2DD writes two DD values against the matching defaults.
func (c *Cursor) Write2DD(p, def [2]float64) {
	c.WriteDD(p[0], def[0])
	c.WriteDD(p[1], def[1])
}

// ReadBT reads a thickness. From R2000 a set flag bit means 0.0.
func (c *Cursor) ReadBT() float64 {
	if c.SourceVariant().DefaultFlags && c.ReadB() == 1 {
		return 0.0
	}
	return c.ReadBD()
}

// WriteBT writes a thickness.
func (c *Cursor) WriteBT(f float64) {
	if c.Variant().DefaultFlags {
		if f == 0 && !math.Signbit(f) {
			c.WriteB(1)
			return
		}
		c.WriteB(0)
	}
	c.WriteBD(f)
}

// ReadBE reads an extrusion vector. From R2000 a set flag bit means (0,0,1).
// A vector with zero x and y gets z normalized to +1 or -1.
func (c *Cursor) ReadBE() [3]float64 {
	if c.SourceVariant().DefaultFlags && c.ReadB() == 1 {
		return [3]float64{0, 0, 1}
	}
	return normalizeExtrusion(c.Read3BD())
}

// WriteBE writes an extrusion vector, normalized the way ReadBE does.
func (c *Cursor) WriteBE(p [3]float64) {
	p = normalizeExtrusion(p)
	if c.Variant().DefaultFlags {
		if p[0] == 0 && p[1] == 0 && p[2] == 1 {
			c.WriteB(1)
			return
		}
		c.WriteB(0)
	}
	c.Write3BD(p)
}

// normalizeExtrusion maps a vector with zero x and y onto (0,0,+1) or (0,0,-1).
func normalizeExtrusion(p [3]float64) [3]float64 {
	if math.Abs(p[0]) < epsilon && math.Abs(p[1]) < epsilon {
		p[0], p[1] = 0, 0
		if p[2] < 0 || math.Signbit(p[2]) {
			p[2] = -1
		} else {
			p[2] = 1
		}
	}
	return p
}
