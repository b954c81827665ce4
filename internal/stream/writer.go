package stream

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmbeddedNull is returned when a string written with WriteCString
// contains a zero byte, which would end it early on decode.
var ErrEmbeddedNull = errors.New("string contains a zero byte")

// SafeWriter wraps io.Writer with position tracking, bit packing and
// framing markers.
type SafeWriter struct {
	w      io.Writer
	offset int64
	endian Endianness

	// Pending bits of a partially filled byte, MSB first.
	bits  byte
	nbits int

	frames []frame
}

// NewSafeWriter creates a new big-endian SafeWriter.
func NewSafeWriter(w io.Writer) *SafeWriter {
	return &SafeWriter{
		w:      w,
		offset: 0,
	}
}

// SetByteOrder selects the byte order for multi-byte fields.
func (sw *SafeWriter) SetByteOrder(e Endianness) {
	sw.endian = e
}

// ByteOrder returns the byte order for multi-byte fields.
func (sw *SafeWriter) ByteOrder() Endianness {
	return sw.endian
}

// Offset returns the current position (number of complete bytes written).
func (sw *SafeWriter) Offset() int64 {
	return sw.offset
}

// Aligned reports whether the writer is on a byte boundary.
func (sw *SafeWriter) Aligned() bool {
	return sw.nbits == 0
}

func (sw *SafeWriter) emit(b []byte) error {
	n, err := sw.w.Write(b)
	sw.offset += int64(n)
	return err
}

// WriteBytes writes raw bytes to the underlying writer. When the writer
// is mid-byte the bytes are bit-packed after the pending bits.
func (sw *SafeWriter) WriteBytes(b []byte) error {
	if sw.nbits != 0 {
		for _, c := range b {
			if err := sw.WriteBits(uint64(c), 8); err != nil {
				return err
			}
		}
		return nil
	}
	return sw.emit(b)
}

// WriteString writes a string as bytes to the underlying writer.
func (sw *SafeWriter) WriteString(s string) error {
	return sw.WriteBytes([]byte(s))
}

// WriteCString writes s followed by a zero terminator.
func (sw *SafeWriter) WriteCString(s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("%q: %w", s, ErrEmbeddedNull)
	}
	if err := sw.WriteString(s); err != nil {
		return err
	}
	return sw.WriteUint(0, 8)
}

// WriteBits writes the low n bits of v (0-64), MSB first.
func (sw *SafeWriter) WriteBits(v uint64, n int) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("invalid bit width %d", n)
	}
	for i := n - 1; i >= 0; i-- {
		sw.bits = sw.bits<<1 | byte(v>>uint(i)&1)
		sw.nbits++
		if sw.nbits == 8 {
			b := sw.bits
			sw.bits, sw.nbits = 0, 0
			if err := sw.emit([]byte{b}); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSignedBits writes v as a two's complement bit field of width n.
func (sw *SafeWriter) WriteSignedBits(v int64, n int) error {
	if n <= 0 || n > 64 {
		return fmt.Errorf("invalid bit width %d", n)
	}
	if n < 64 {
		lo, hi := -(int64(1) << uint(n-1)), int64(1)<<uint(n-1)
		if v < lo || v >= hi {
			return fmt.Errorf("value %d does not fit in %d signed bits", v, n)
		}
	}
	return sw.WriteBits(uint64(v), n)
}

// Align pads a partially written byte with zero bits.
func (sw *SafeWriter) Align() error {
	if sw.nbits == 0 {
		return nil
	}
	return sw.WriteBits(0, 8-sw.nbits)
}

// WriteUint writes v as an unsigned field of the given bit width. On a byte
// boundary, widths that are a multiple of 8 use the writer's byte order;
// otherwise the value is bit-packed. No padding is added.
func (sw *SafeWriter) WriteUint(v uint64, width int) error {
	if width <= 0 || width > 64 {
		return fmt.Errorf("invalid field width %d", width)
	}
	if width < 64 && v>>uint(width) != 0 {
		return fmt.Errorf("value %d does not fit in %d bits", v, width)
	}
	if sw.nbits != 0 || width%8 != 0 {
		return sw.WriteBits(v, width)
	}
	buf := make([]byte, width/8)
	putUint(buf, v, sw.endian)
	return sw.emit(buf)
}

// Write writes a value of type T in the writer's byte order.
// T must be uint8, uint16, uint32, or uint64.
func Write[T uint8 | uint16 | uint32 | uint64](sw *SafeWriter, val T) error {
	return sw.WriteUint(uint64(val), sizeOf[T]()*8)
}

// Begin opens a frame named name at the current offset.
func (sw *SafeWriter) Begin(name string) {
	sw.frames = append(sw.frames, frame{name: name, start: sw.offset})
}

// End closes the innermost frame and returns the number of bytes written
// inside it. It panics with *types.FramingError when name is not the
// innermost frame.
func (sw *SafeWriter) End(name string) int64 {
	f := popFrame(&sw.frames, name)
	return sw.offset - f.start
}

// Depth returns the number of open frames.
func (sw *SafeWriter) Depth() int {
	return len(sw.frames)
}
