package stream

import "encoding/binary"

// Endianness represents byte order for multi-byte fields.
type Endianness int

const (
	// BigEndian uses big-endian byte order. This is the default for every
	// field a movie encodes.
	BigEndian Endianness = iota

	// LittleEndian uses little-endian byte order, as written by Flash
	// authoring tools.
	LittleEndian
)

// String returns "big" or "little".
func (e Endianness) String() string {
	if e == LittleEndian {
		return "little"
	}
	return "big"
}

// byteOrder maps e to its encoding/binary order.
func (e Endianness) byteOrder() binary.ByteOrder {
	if e == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// putUint encodes the low len(buf) bytes of v into buf. Odd widths such as
// 24-bit fields have no encoding/binary helper and are shifted by hand.
func putUint(buf []byte, v uint64, endian Endianness) {
	order := endian.byteOrder()
	switch len(buf) {
	case 1:
		buf[0] = byte(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	case 8:
		order.PutUint64(buf, v)
	default:
		n := len(buf)
		for i := 0; i < n; i++ {
			b := byte(v >> uint(8*i))
			if endian == LittleEndian {
				buf[i] = b
			} else {
				buf[n-1-i] = b
			}
		}
	}
}

// getUint decodes buf as an unsigned integer of len(buf) bytes.
func getUint(buf []byte, endian Endianness) uint64 {
	order := endian.byteOrder()
	switch len(buf) {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(order.Uint16(buf))
	case 4:
		return uint64(order.Uint32(buf))
	case 8:
		return order.Uint64(buf)
	}
	var v uint64
	n := len(buf)
	for i := 0; i < n; i++ {
		b := buf[i]
		if endian == LittleEndian {
			b = buf[n-1-i]
		}
		v = v<<8 | uint64(b)
	}
	return v
}

// sizeOf returns the byte width of T.
func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// ReadEndian reads a T at a fixed offset in the given byte order without
// moving any Reader. Decoding uses it for the version and file length in
// the uncompressed prefix, which sit at fixed positions ahead of the body.
//
// Example:
//
//	length, err := stream.ReadEndian[uint32](sr, 4, "file length", stream.LittleEndian)
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	buf := make([]byte, sizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		var zero T
		return zero, err
	}
	return T(getUint(buf, endian)), nil
}
