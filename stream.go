package dwgbits

// StringStream locates the string stream of an R2007+ object. The object's
// data starts at c's current byte and is bitsize bits long. Its last bit
// says whether strings are present; before it sits the stream size in bits
// (RS, with 0x8000 announcing a second, higher RS before it) and before that
// the strings themselves.
//
// The returned cursor shares c's buffer, is limited to the object and is
// positioned at the first string bit. ok is false when the object has no
// strings or the size words are corrupt; the cursor is then positioned at
// the end of the object.
func (c *Cursor) StringStream(bitsize uint64) (str *Cursor, ok bool) {
	end := c.off + int((bitsize+7)/8)
	if end > len(c.buf) {
		c.report(SeverityError, CodeOutOfBounds, "strings", "object of %d bits past buffer end", bitsize)
		end = len(c.buf)
		bitsize = uint64(end-c.off) * 8
	}
	str = c.Sub(c.off, end)
	if bitsize < 1 {
		return str, false
	}
	flag := bitsize - 1
	str.SetPosition(flag)
	if str.ReadB() == 0 {
		str.SetPosition(bitsize)
		return str, false
	}
	if flag < 16 {
		str.report(SeverityError, CodeInvalidValue, "strings", "no room for size in %d bits", bitsize)
		return str, false
	}
	pos := flag - 16
	str.SetPosition(pos)
	size := uint64(str.ReadRS())
	if size&0x8000 != 0 {
		if pos < 16 {
			str.report(SeverityError, CodeInvalidValue, "strings", "no room for high size word")
			return str, false
		}
		pos -= 16
		str.SetPosition(pos)
		hi := uint64(str.ReadRS())
		size = size&0x7FFF | hi<<15
	}
	if size > pos {
		str.report(SeverityError, CodeInvalidValue, "strings", "stream of %d bits before bit %d", size, pos)
		str.SetPosition(bitsize)
		return str, false
	}
	str.SetPosition(pos - size)
	return str, true
}

// WriteStringStream appends the bits written to str, the size words and the
// presence flag, in the layout StringStream reads back.
func (c *Cursor) WriteStringStream(str *Cursor) {
	if str == nil || str.Position() == 0 {
		c.WriteB(0)
		return
	}
	size := str.Position()
	if size >= 1<<30 {
		c.report(SeverityError, CodeInvalidValue, "strings", "stream of %d bits", size)
		c.WriteB(0)
		return
	}
	c.WriteBits(str.buf, int(size))
	if size > 0x7FFF {
		c.WriteRS(uint16(size >> 15))
		c.WriteRS(uint16(size&0x7FFF) | 0x8000)
	} else {
		c.WriteRS(uint16(size))
	}
	c.WriteB(1)
}
