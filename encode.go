package swfkit

import (
	"fmt"
	"io"
	"math"

	"github.com/simonhull/swfkit/internal/registry"
	"github.com/simonhull/swfkit/internal/stream"
	"github.com/simonhull/swfkit/internal/types"
	"github.com/simonhull/swfkit/tag"
)

// headerPrefixLength covers signature, version and file length. The prefix
// is never compressed; everything after it is the body.
const headerPrefixLength = 8

// Encode writes the movie to w.
//
// Every record is measured first, in order, so the header can carry the
// total length. The records are then encoded in the same order. An End
// record is appended when the last record is not one. For FormatZlib the
// body after the 8-byte prefix is zlib-compressed.
//
// A *ConsistencyError means a record changed size between the two passes;
// whatever reached w must be discarded.
func (m *Movie) Encode(w io.Writer) error {
	return m.encode(w, m.format)
}

func (m *Movie) encode(w io.Writer, format Format) error {
	codec := registry.Get(format)
	if codec == nil {
		return &UnsupportedFormatError{
			Path:   m.Path,
			Reason: fmt.Sprintf("no body codec for %s movies", format),
		}
	}
	if err := m.frameSize.validate(); err != nil {
		return fmt.Errorf("frame size: %w", err)
	}
	rate, err := fixed8(m.frameRate)
	if err != nil {
		return err
	}
	frames := m.FrameCount()
	if frames > math.MaxUint16 {
		return fmt.Errorf("%d frames do not fit the 16-bit frame count", frames)
	}

	measured := m.measure()
	bodyLength := int64(m.frameSize.encodedLength() + 4)
	for _, mt := range measured {
		bodyLength += int64(mt.Total())
	}
	fileLength := headerPrefixLength + bodyLength
	if fileLength > math.MaxUint32 {
		return fmt.Errorf("movie of %d bytes exceeds the 32-bit file length", fileLength)
	}

	prefix := stream.NewSafeWriter(w)
	prefix.SetByteOrder(m.byteOrder)
	if err := prefix.WriteBytes(format.Signature()); err != nil {
		return fmt.Errorf("write signature: %w", err)
	}
	if err := stream.Write(prefix, m.version); err != nil {
		return fmt.Errorf("write version: %w", err)
	}
	if err := stream.Write(prefix, uint32(fileLength)); err != nil {
		return fmt.Errorf("write file length: %w", err)
	}

	body, err := codec.NewWriter(w)
	if err != nil {
		return fmt.Errorf("open %s body: %w", format, err)
	}
	sw := stream.NewSafeWriter(body)
	sw.SetByteOrder(m.byteOrder)

	if err := m.encodeBody(sw, rate, uint16(frames), measured); err != nil {
		_ = body.Close() //nolint:errcheck // Already failing
		return err
	}
	if err := body.Close(); err != nil {
		return fmt.Errorf("flush %s body: %w", format, err)
	}

	if sw.Offset() != bodyLength {
		return &types.ConsistencyError{
			Tag:      "Movie",
			Measured: fileLength,
			Encoded:  headerPrefixLength + sw.Offset(),
		}
	}

	m.logger.Debug("encoded movie",
		"format", format.String(),
		"records", len(measured),
		"length", fileLength,
	)
	return nil
}

// measure runs the length pass over every record, adding an End record
// when the sequence lacks one.
func (m *Movie) measure() []tag.Measured {
	measured := make([]tag.Measured, 0, len(m.tags)+1)
	for _, t := range m.tags {
		measured = append(measured, tag.Measure(t))
	}
	if n := len(m.tags); n == 0 || m.tags[n-1].Code() != tag.CodeEnd {
		measured = append(measured, tag.Measure(&tag.End{}))
	}
	return measured
}

func (m *Movie) encodeBody(sw *stream.SafeWriter, rate, frames uint16, measured []tag.Measured) error {
	if err := m.frameSize.encode(sw); err != nil {
		return fmt.Errorf("write frame size: %w", err)
	}
	if err := stream.Write(sw, rate); err != nil {
		return fmt.Errorf("write frame rate: %w", err)
	}
	if err := stream.Write(sw, frames); err != nil {
		return fmt.Errorf("write frame count: %w", err)
	}
	for i, mt := range measured {
		if err := tag.Encode(sw, mt); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// fixed8 converts a rate to 8.8 fixed point.
func fixed8(rate float32) (uint16, error) {
	if !(rate >= 0 && rate <= MaxFrameRate) {
		return 0, fmt.Errorf("frame rate %v outside [0, %v]", rate, MaxFrameRate)
	}
	return uint16(math.Round(float64(rate) * 256)), nil
}
