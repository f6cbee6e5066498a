package dwgbits

import (
	"fmt"

	"github.com/pkg/errors"
)

// Handle kinds as stored in the high nibble of the code byte.
const (
	HandleAbsolute    uint8 = 0
	HandleSoftOwner   uint8 = 2
	HandleHardOwner   uint8 = 3
	HandleSoftPointer uint8 = 4
	HandleHardPointer uint8 = 5
	HandlePlusOne     uint8 = 6
	HandleMinusOne    uint8 = 8
	HandlePlusOffset  uint8 = 10
	HandleMinusOffset uint8 = 12
)

const (
	maxHandleKind = 14
	maxHandleSize = 8
)

// Handle is an object reference: a kind code, the byte count of the
// magnitude on the wire and the magnitude itself.
type Handle struct {
	Code  uint8
	Size  uint8
	Value uint64
}

// Absent reports whether h is the zero handle, which is how "no reference"
// decodes.
func (h Handle) Absent() bool {
	return h.Code == 0 && h.Size == 0 && h.Value == 0
}

// IsNull reports whether h refers to nothing. Absent handles are null too.
func (h Handle) IsNull() bool { return h.Value == 0 }

func (h Handle) String() string {
	return fmt.Sprintf("(%d.%d.%X)", h.Code, h.Size, h.Value)
}

// Resolve returns the absolute handle h refers to when read from the object
// with handle base. Owner and pointer kinds are absolute already.
func (h Handle) Resolve(base uint64) uint64 {
	switch h.Code {
	case HandlePlusOne:
		return base + 1
	case HandleMinusOne:
		return base - 1
	case HandlePlusOffset:
		return base + h.Value
	case HandleMinusOffset:
		return base - h.Value
	}
	return h.Value
}

// ReadH reads a handle. From R13 the code byte holds kind<<4|size; older
// releases store only the size. A size above 8 or a kind above 14 is
// corrupt data and returns ErrInvalidHandle.
func (c *Cursor) ReadH() (Handle, error) {
	var h Handle
	if !c.has("H", 8) {
		return h, errors.Wrap(ErrBufferOverflow, "handle code")
	}
	code := c.readByte()
	if c.SourceVariant().KindNibble {
		h.Code = code >> 4
		h.Size = code & 0x0F
	} else {
		h.Size = code
	}
	if h.Size > maxHandleSize || h.Code > maxHandleKind {
		c.report(SeverityError, CodeInvalidHandle, "H", "code byte %#02x", code)
		return Handle{}, errors.Wrapf(ErrInvalidHandle, "code byte %#02x at %d.%d", code, c.off-1, c.bit)
	}
	if !c.has("H", 8*int(h.Size)) {
		return Handle{}, errors.Wrap(ErrBufferOverflow, "handle value")
	}
	for i := uint8(0); i < h.Size; i++ {
		h.Value = h.Value<<8 | uint64(c.readByte())
	}
	return h, nil
}

// WriteH writes h with the minimal number of magnitude bytes. A nil handle
// is written as a single zero byte; so is a kind-0 null handle.
func (c *Cursor) WriteH(h *Handle) {
	if h == nil {
		c.WriteRC(0)
		return
	}
	size := uint8(byteLen(h.Value))
	if h.Code > maxHandleKind {
		c.report(SeverityError, CodeInvalidHandle, "H", "kind %d", h.Code)
	}
	if c.Variant().KindNibble {
		c.WriteRC(h.Code<<4 | size)
	} else {
		c.WriteRC(size)
	}
	c.reserve("H", 8*int(size))
	for i := int(size) - 1; i >= 0; i-- {
		c.writeByte(byte(h.Value >> (8 * i)))
	}
}
