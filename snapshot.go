package dwgbits

import (
	"encoding/binary"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// --- ZSTD helpers ---

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(MaxBufferSize),
	)
	if err != nil {
		panic(err)
	}
	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

func compressZstd(dst, data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, dst)
	zstdEncPool.Put(enc)
	return out
}

func decompressZstd(data []byte) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(data, nil)
	zstdDecPool.Put(dec)
	return out, err
}

// Snapshot captures the meaningful bytes of c and its position:
// uvarint byte offset, bit, then a zstd frame of the bytes.
func (c *Cursor) Snapshot() []byte {
	hdr := binary.AppendUvarint(nil, uint64(c.off))
	hdr = append(hdr, c.bit)
	return compressZstd(hdr, c.Bytes())
}

// Restore rebuilds a reader from a Snapshot, positioned where the snapshot
// was taken.
func Restore(snapshot []byte, opts Options) (*Cursor, error) {
	off, n := binary.Uvarint(snapshot)
	if n <= 0 || n >= len(snapshot) {
		return nil, errors.Wrap(ErrInvalidSnapshot, "header")
	}
	bit := snapshot[n]
	if bit > 7 {
		return nil, errors.Wrapf(ErrInvalidSnapshot, "bit %d", bit)
	}
	data, err := decompressZstd(snapshot[n+1:])
	if err != nil {
		return nil, errors.Wrap(err, "dwgbits: snapshot")
	}
	pos := off*8 + uint64(bit)
	if pos > uint64(len(data))*8 {
		return nil, errors.Wrapf(ErrInvalidSnapshot, "position %d past %d bytes", pos, len(data))
	}
	c := NewReader(data, opts)
	c.SetPosition(pos)
	return c, nil
}
