package dwgbits

import "hash/crc32"

// crc16Table is the reflected 0xA001 (CRC-16/ARC) table.
var crc16Table = func() (t [256]uint16) {
	for i := range t {
		v := uint16(i)
		for k := 0; k < 8; k++ {
			if v&1 != 0 {
				v = v>>1 ^ 0xA001
			} else {
				v >>= 1
			}
		}
		t[i] = v
	}
	return t
}()

// CRC16 continues the section checksum seed over data.
func CRC16(seed uint16, data []byte) uint16 {
	acc := seed
	for _, b := range data {
		acc = acc>>8&0xFF ^ crc16Table[b^byte(acc)]
	}
	return acc
}

// CRC32 continues the IEEE CRC-32 seed over data. A zero seed starts a new
// checksum; passing a previous result chains it.
func CRC32(seed uint32, data []byte) uint32 {
	return crc32.Update(seed, crc32.IEEETable, data)
}

// span returns bytes [start, off) of the buffer, recording bad ranges.
func (c *Cursor) span(op string, start int) []byte {
	if start < 0 || start > c.off || c.off > len(c.buf) {
		c.report(SeverityError, CodeOutOfBounds, op, "range [%d,%d) outside buffer of %d bytes", start, c.off, len(c.buf))
		return nil
	}
	return c.buf[start:c.off]
}

// padByte writes zero bits up to the next byte boundary.
func (c *Cursor) padByte() {
	if c.bit == 0 {
		return
	}
	c.reserve("pad", int(8-c.bit))
	for c.bit != 0 {
		c.writeBit(0)
	}
}

// ReadCRC16 aligns to the next byte and reads a stored little-endian CRC.
func (c *Cursor) ReadCRC16() uint16 {
	c.AlignByte()
	return c.ReadRS()
}

// VerifyCRC16 aligns to the next byte, checksums bytes [start, current)
// with seed and compares the result with the little-endian CRC stored next.
// A mismatch is recorded; decoding may continue either way.
func (c *Cursor) VerifyCRC16(start int, seed uint16) bool {
	return c.verifyCRC16(start, seed, false)
}

// VerifyCRC16BE is VerifyCRC16 for a big-endian stored CRC.
func (c *Cursor) VerifyCRC16BE(start int, seed uint16) bool {
	return c.verifyCRC16(start, seed, true)
}

func (c *Cursor) verifyCRC16(start int, seed uint16, be bool) bool {
	c.AlignByte()
	data := c.span("CRC", start)
	if data == nil && start != c.off {
		return false
	}
	want := CRC16(seed, data)
	var got uint16
	if be {
		got = c.ReadRSBE()
	} else {
		got = c.ReadRS()
	}
	if got != want {
		c.report(SeverityError, CodeCRCMismatch, "CRC", "stored %#04x, computed %#04x over [%d,%d)", got, want, start, start+len(data))
		return false
	}
	return true
}

// WriteCRC16 pads to a byte boundary with zero bits, checksums bytes
// [start, current) and appends the result little-endian.
func (c *Cursor) WriteCRC16(start int, seed uint16) uint16 {
	c.padByte()
	crc := CRC16(seed, c.span("CRC", start))
	c.WriteRS(crc)
	return crc
}

// WriteCRC16BE is WriteCRC16 with the result stored big-endian.
func (c *Cursor) WriteCRC16BE(start int, seed uint16) uint16 {
	c.padByte()
	crc := CRC16(seed, c.span("CRC", start))
	c.WriteRSBE(crc)
	return crc
}

// WriteCRC32 pads to a byte boundary, checksums bytes [start, current) and
// appends the result as RL.
func (c *Cursor) WriteCRC32(start int, seed uint32) uint32 {
	c.padByte()
	crc := CRC32(seed, c.span("CRC32", start))
	c.WriteRL(crc)
	return crc
}
