package dwgbits

import "github.com/pkg/errors"

var (
	ErrBufferOverflow  = errors.New("dwgbits: buffer overflow")
	ErrBufferUnderflow = errors.New("dwgbits: buffer underflow")
	ErrOutOfBounds     = errors.New("dwgbits: position out of bounds")
	ErrInvalidHandle   = errors.New("dwgbits: invalid handle")
	ErrInvalidPrefix   = errors.New("dwgbits: invalid prefix")
	ErrInvalidValue    = errors.New("dwgbits: value out of domain")
	ErrTruncated       = errors.New("dwgbits: value truncated")
	ErrCRCMismatch     = errors.New("dwgbits: crc mismatch")
	ErrOutOfMemory     = errors.New("dwgbits: out of memory")
	ErrInvalidSnapshot = errors.New("dwgbits: invalid snapshot")
)
