// Package tag implements the records a movie is made of.
//
// Every record starts with a header holding its type code and payload
// length. Short payloads (under 63 bytes) use a single 16-bit field,
// longer ones set the length bits to 0x3F and follow with a 32-bit length:
//
//	short: code<<6 | length
//	long:  code<<6 | 0x3F, length (32 bits)
//
// Encoding is a two-phase operation. Measure runs the length pass and
// returns a Measured value; Encode takes that value and runs the encode
// pass, so a record cannot be written without being sized first. If the
// bytes written differ from the measured length, Encode reports a
// *types.ConsistencyError.
//
//	m := tag.Measure(export)
//	err := tag.Encode(w, m)
//
// The set of record types is closed: Tag has unexported methods and Decode
// dispatches on Code with a switch. Codes without an implementation decode
// to Unknown, which keeps the raw payload so the record round-trips.
package tag

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/simonhull/swfkit/internal/stream"
	"github.com/simonhull/swfkit/internal/types"
)

const (
	// longLength in the length bits of a header means a 32-bit length follows.
	longLength = 0x3F

	shortHeaderLength = 2
	longHeaderLength  = 6
)

// Tag is one record of a movie.
type Tag interface {
	// Code identifies the record type on the wire.
	Code() Code

	// Name is a stable label for diagnostics. It is not encoded.
	Name() string

	// PayloadLength returns the number of payload bytes the record
	// currently encodes to, excluding the header.
	PayloadLength() int

	encodePayload(w *stream.SafeWriter) error
	decodePayload(r *stream.Reader, length int) error
}

// HeaderLength returns the header size for a payload of the given length.
func HeaderLength(payload int) int {
	if payload < longLength {
		return shortHeaderLength
	}
	return longHeaderLength
}

// Measured is the result of the length pass over one record.
type Measured struct {
	tag     Tag
	payload int
}

// Measure runs the length pass for t.
func Measure(t Tag) Measured {
	return Measured{tag: t, payload: t.PayloadLength()}
}

// Tag returns the measured record.
func (m Measured) Tag() Tag {
	return m.tag
}

// PayloadLength returns the measured payload size.
func (m Measured) PayloadLength() int {
	return m.payload
}

// HeaderLength returns the size of the header the record will be written with.
func (m Measured) HeaderLength() int {
	return HeaderLength(m.payload)
}

// Total returns header plus payload.
func (m Measured) Total() int {
	return m.HeaderLength() + m.payload
}

// Encode runs the encode pass for a measured record: the header carrying
// the measured length, then the payload.
//
// A *types.ConsistencyError means the record changed after it was measured
// or its length pass is wrong. The header has already been written at that
// point, so the output must be discarded. Errors from the underlying writer
// are returned wrapped.
func Encode(w *stream.SafeWriter, m Measured) (err error) {
	if m.tag == nil {
		return errors.New("tag: encode of a zero Measured")
	}
	if !w.Aligned() {
		return fmt.Errorf("%s: record must start on a byte boundary", m.tag.Name())
	}
	if uint64(m.payload) > math.MaxUint32 {
		return fmt.Errorf("%s: payload of %d bytes exceeds the 32-bit length field", m.tag.Name(), m.payload)
	}
	code := m.tag.Code()
	if code > MaxCode {
		return fmt.Errorf("%s: code %d does not fit in a record header", m.tag.Name(), code)
	}

	name := m.tag.Name()
	w.Begin(name)
	err = encodeRecord(w, code, m)
	written := w.End(name)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	if written != int64(m.Total()) {
		return &types.ConsistencyError{
			Tag:      name,
			Measured: int64(m.Total()),
			Encoded:  written,
		}
	}
	return nil
}

func encodeRecord(w *stream.SafeWriter, code Code, m Measured) error {
	word := uint64(code) << 6
	if m.payload < longLength {
		if err := w.WriteUint(word|uint64(m.payload), 16); err != nil {
			return err
		}
	} else {
		if err := w.WriteUint(word|longLength, 16); err != nil {
			return err
		}
		if err := w.WriteUint(uint64(m.payload), 32); err != nil {
			return err
		}
	}

	if err := m.tag.encodePayload(w); err != nil {
		return err
	}
	return w.Align()
}

// Decode reads one record: the header, then exactly the payload length it
// declares. Reads past the declared length or the end of the data fail
// with *types.UnderflowError. A payload that is not fully consumed is a
// *types.CorruptedFileError. On error no record is returned and the reader
// position is undefined.
func Decode(r *stream.Reader) (Tag, error) {
	start := r.Offset()

	header, err := stream.ReadValue[uint16](r, "record header")
	if err != nil {
		return nil, err
	}
	code := Code(header >> 6)
	length := int64(header & longLength)
	if length == longLength {
		long, err := stream.ReadValue[uint32](r, "record length")
		if err != nil {
			return nil, err
		}
		length = int64(long)
	}

	t := newTag(code)
	name := t.Name()

	if err := r.Begin(name, length); err != nil {
		return nil, err
	}
	err = t.decodePayload(r, int(length))
	consumed := r.End(name)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	if consumed != length {
		return nil, &types.CorruptedFileError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("%s declares %d payload bytes but uses %d", name, length, consumed),
		}
	}
	return t, nil
}

// DecodeExpect decodes one record and checks that it has the given code.
func DecodeExpect(r *stream.Reader, code Code) (Tag, error) {
	start := r.Offset()
	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if t.Code() != code {
		return nil, &types.CorruptedFileError{
			Path:   r.Path(),
			Offset: start,
			Reason: fmt.Sprintf("expected %s record, found %s", code, t.Code()),
		}
	}
	return t, nil
}

// newTag returns an empty record for code, ready to decode into.
func newTag(code Code) Tag {
	switch code {
	case CodeEnd:
		return &End{}
	case CodeShowFrame:
		return &ShowFrame{}
	case CodeSetBackgroundColor:
		return &SetBackgroundColor{}
	case CodeExport:
		return &Export{}
	case CodeImport:
		return &Import{}
	default:
		return &Unknown{code: code}
	}
}

// Marshal encodes a single record with big-endian fields.
func Marshal(t Tag) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(stream.NewSafeWriter(&buf), Measure(t)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data holding exactly one big-endian record.
func Unmarshal(data []byte) (Tag, error) {
	sr := stream.NewSafeReader(bytes.NewReader(data), int64(len(data)), "record")
	r := stream.NewReader(sr, 0)

	t, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if rest := r.Remaining(); rest != 0 {
		return nil, &types.CorruptedFileError{
			Path:   "record",
			Offset: r.Offset(),
			Reason: fmt.Sprintf("%d trailing bytes after %s", rest, t.Name()),
		}
	}
	return t, nil
}
