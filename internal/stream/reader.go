// Package stream provides the cursor primitives every tag is encoded and
// decoded with: bounds-checked reads, offset-tracked writes, bit packing,
// and named framing markers.
package stream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/simonhull/swfkit/internal/types"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
// Reads outside [0, size) fail with *types.UnderflowError.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off+int64(len(b)) > sr.size {
		return &types.UnderflowError{
			Path:   sr.path,
			What:   what,
			Offset: off,
			Length: len(b),
			Limit:  sr.size,
		}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Reader provides sequential reading with automatic offset tracking,
// bit-level fields and nested record limits.
type Reader struct {
	*SafeReader
	offset int64
	endian Endianness

	// Pending bits of a partially consumed byte, MSB first.
	bits  byte
	nbits int

	frames []frame
}

// NewReader creates a new big-endian Reader starting at the given offset.
func NewReader(sr *SafeReader, offset int64) *Reader {
	return &Reader{
		SafeReader: sr,
		offset:     offset,
	}
}

// SetByteOrder selects the byte order for multi-byte fields.
func (r *Reader) SetByteOrder(e Endianness) {
	r.endian = e
}

// ByteOrder returns the byte order for multi-byte fields.
func (r *Reader) ByteOrder() Endianness {
	return r.endian
}

// limit is the end of the innermost open frame, or the data size.
func (r *Reader) limit() int64 {
	if n := len(r.frames); n > 0 {
		return r.frames[n-1].limit
	}
	return r.size
}

// read fills b from the current offset, honouring the innermost frame.
func (r *Reader) read(b []byte, what string) error {
	if limit := r.limit(); r.offset+int64(len(b)) > limit {
		return &types.UnderflowError{
			Path:   r.path,
			What:   what,
			Offset: r.offset,
			Length: len(b),
			Limit:  limit,
		}
	}
	if err := r.SafeReader.ReadAt(b, r.offset, what); err != nil {
		return err
	}
	r.offset += int64(len(b))
	return nil
}

// ReadBits reads an unsigned bit field of width n (0-64), MSB first.
func (r *Reader) ReadBits(n int, what string) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%s: invalid bit width %d", what, n)
	}
	var v uint64
	for i := 0; i < n; i++ {
		if r.nbits == 0 {
			var b [1]byte
			if err := r.read(b[:], what); err != nil {
				return 0, err
			}
			r.bits = b[0]
			r.nbits = 8
		}
		r.nbits--
		v = v<<1 | uint64(r.bits>>uint(r.nbits)&1)
	}
	return v, nil
}

// ReadSignedBits reads a two's complement bit field of width n.
func (r *Reader) ReadSignedBits(n int, what string) (int64, error) {
	v, err := r.ReadBits(n, what)
	if err != nil || n == 0 || n == 64 {
		return int64(v), err
	}
	if v&(1<<uint(n-1)) != 0 {
		return int64(v) - int64(1)<<uint(n), nil
	}
	return int64(v), nil
}

// Align discards the rest of a partially read byte.
func (r *Reader) Align() {
	r.nbits = 0
}

// ReadUint reads an unsigned integer of the given bit width. Byte-aligned
// widths that are a multiple of 8 use the reader's byte order; anything
// else is read as a bit field.
func (r *Reader) ReadUint(width int, what string) (uint64, error) {
	if width <= 0 || width > 64 {
		return 0, fmt.Errorf("%s: invalid field width %d", what, width)
	}
	if r.nbits != 0 || width%8 != 0 {
		return r.ReadBits(width, what)
	}
	buf := make([]byte, width/8)
	if err := r.read(buf, what); err != nil {
		return 0, err
	}
	return getUint(buf, r.endian), nil
}

// ReadValue reads a numeric value and advances the offset.
func ReadValue[T uint8 | uint16 | uint32 | uint64](r *Reader, what string) (T, error) {
	v, err := r.ReadUint(sizeOf[T]()*8, what)
	return T(v), err
}

// ReadBytes reads n raw bytes and advances the offset.
func (r *Reader) ReadBytes(n int, what string) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%s: negative length %d", what, n)
	}
	buf := make([]byte, n)
	if r.nbits != 0 {
		for i := range buf {
			v, err := r.ReadBits(8, what)
			if err != nil {
				return nil, err
			}
			buf[i] = byte(v)
		}
		return buf, nil
	}
	if err := r.read(buf, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadCString reads bytes up to a zero terminator and returns them without
// the terminator. The offset is left just past the terminator. A missing
// terminator before the frame or data limit is an underflow.
func (r *Reader) ReadCString(what string) (string, error) {
	r.Align()

	limit := r.limit()
	pos := r.offset
	var out []byte
	chunk := make([]byte, 32)

	for {
		avail := limit - pos
		if avail <= 0 {
			return "", &types.UnderflowError{
				Path:   r.path,
				What:   what + " terminator",
				Offset: pos,
				Length: 1,
				Limit:  limit,
			}
		}
		n := int64(len(chunk))
		if n > avail {
			n = avail
		}
		if err := r.SafeReader.ReadAt(chunk[:n], pos, what); err != nil {
			return "", err
		}
		if i := bytes.IndexByte(chunk[:n], 0); i >= 0 {
			out = append(out, chunk[:i]...)
			r.offset = pos + int64(i) + 1
			return string(out), nil
		}
		out = append(out, chunk[:n]...)
		pos += n
	}
}

// Offset returns the current offset.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Remaining returns the bytes left before the innermost limit.
func (r *Reader) Remaining() int64 {
	return r.limit() - r.offset
}

// Begin opens a frame of length bytes named name. Reads inside the frame
// cannot pass its end. Fails with *types.UnderflowError when the frame
// would extend past the enclosing limit.
func (r *Reader) Begin(name string, length int64) error {
	r.Align()
	end := r.offset + length
	if limit := r.limit(); length < 0 || end > limit {
		return &types.UnderflowError{
			Path:   r.path,
			What:   name,
			Offset: r.offset,
			Length: int(length),
			Limit:  limit,
		}
	}
	r.frames = append(r.frames, frame{name: name, start: r.offset, limit: end})
	return nil
}

// End closes the innermost frame and returns the bytes consumed inside it.
// It panics with *types.FramingError when name is not the innermost frame.
func (r *Reader) End(name string) int64 {
	f := popFrame(&r.frames, name)
	r.Align()
	return r.offset - f.start
}

// Depth returns the number of open frames.
func (r *Reader) Depth() int {
	return len(r.frames)
}

// ChainReader allows chaining multiple reads with deferred error checking.
// This avoids repetitive "if err != nil" checks.
type ChainReader struct {
	*Reader
	err error
}

// NewChainReader creates a new ChainReader.
func NewChainReader(r *Reader) *ChainReader {
	return &ChainReader{Reader: r}
}

// ReadChained reads a value with deferred error checking.
// If a previous read failed, returns zero value without attempting read.
func ReadChained[T uint8 | uint16 | uint32 | uint64](cr *ChainReader, what string) T {
	if cr.err != nil {
		var zero T
		return zero
	}

	val, err := ReadValue[T](cr.Reader, what)
	if err != nil {
		cr.err = err
		var zero T
		return zero
	}

	return val
}

// Bits reads an unsigned bit field, accumulating any error.
func (cr *ChainReader) Bits(n int, what string) uint64 {
	if cr.err != nil {
		return 0
	}
	v, err := cr.Reader.ReadBits(n, what)
	cr.err = err
	return v
}

// SignedBits reads a signed bit field, accumulating any error.
func (cr *ChainReader) SignedBits(n int, what string) int64 {
	if cr.err != nil {
		return 0
	}
	v, err := cr.Reader.ReadSignedBits(n, what)
	cr.err = err
	return v
}

// Error returns the accumulated error, if any.
func (cr *ChainReader) Error() error {
	return cr.err
}
