package swfkit

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/simonhull/swfkit/internal/registry"
	"github.com/simonhull/swfkit/internal/stream"
	"github.com/simonhull/swfkit/internal/types"
	"github.com/simonhull/swfkit/tag"
)

// Decode reads a movie of the given size from r. The path is only used in
// errors and warnings.
//
// Decoding stops at the first record that fails; no partial movie is
// returned. Records with codes this package does not model are kept as
// *tag.Unknown and reported as warnings.
func Decode(r io.ReaderAt, size int64, path string, opts ...Option) (*Movie, error) {
	return decodeMovie(context.Background(), r, size, path, applyOptions(opts))
}

func decodeMovie(ctx context.Context, r io.ReaderAt, size int64, path string, o *options) (*Movie, error) {
	format, err := types.DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}
	codec := registry.Get(format)
	if codec == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no body codec for %s movies", format),
		}
	}

	sr := stream.NewSafeReader(r, size, path)
	version, err := stream.ReadEndian[uint8](sr, 3, "version", o.byteOrder)
	if err != nil {
		return nil, err
	}
	fileLength, err := stream.ReadEndian[uint32](sr, 4, "file length", o.byteOrder)
	if err != nil {
		return nil, err
	}

	m := &Movie{
		Path:      path,
		Size:      size,
		format:    format,
		version:   version,
		byteOrder: o.byteOrder,
		logger:    o.logger,
	}

	data, err := readBody(codec, r, size, path, o.maxBodySize)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != int64(fileLength) {
		m.warn("header", 4, "file length field says %d bytes, movie has %d", fileLength, len(data))
	}

	// Offsets inside the body count from the start of the uncompressed
	// movie, prefix included.
	br := stream.NewReader(stream.NewSafeReader(bytes.NewReader(data), int64(len(data)), path), headerPrefixLength)
	br.SetByteOrder(o.byteOrder)

	if m.frameSize, err = decodeBounds(br); err != nil {
		return nil, err
	}
	cr := stream.NewChainReader(br)
	rate := stream.ReadChained[uint16](cr, "frame rate")
	frames := stream.ReadChained[uint16](cr, "frame count")
	if err := cr.Error(); err != nil {
		return nil, err
	}
	m.frameRate = float32(rate) / 256

	if err := m.decodeTags(ctx, br); err != nil {
		return nil, err
	}

	if got := m.FrameCount(); got != int(frames) {
		m.warn("header", 0, "header declares %d frames, movie has %d", frames, got)
	}
	m.lastID = m.largestEntryID()

	if o.strictParsing && len(m.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", m.Warnings[0])
	}
	if o.ignoreWarnings {
		m.Warnings = nil
	}
	return m, nil
}

// readBody returns the uncompressed movie: the prefix as stored, followed
// by the decoded body.
func readBody(codec registry.BodyCodec, r io.ReaderAt, size int64, path string, limit int64) ([]byte, error) {
	prefix := make([]byte, headerPrefixLength)
	if err := stream.NewSafeReader(r, size, path).ReadAt(prefix, 0, "header"); err != nil {
		return nil, err
	}

	src, err := codec.NewReader(io.NewSectionReader(r, headerPrefixLength, size-headerPrefixLength))
	if err != nil {
		return nil, &CorruptedFileError{
			Path:   path,
			Offset: headerPrefixLength,
			Reason: fmt.Sprintf("open body: %v", err),
		}
	}
	defer src.Close() //nolint:errcheck // Read-only

	var in io.Reader = src
	if limit > 0 {
		in = io.LimitReader(src, limit+1)
	}

	buf := bytes.NewBuffer(prefix)
	n, err := io.Copy(buf, in)
	if err != nil {
		return nil, &CorruptedFileError{
			Path:   path,
			Offset: headerPrefixLength,
			Reason: fmt.Sprintf("read body: %v", err),
		}
	}
	if limit > 0 && n > limit {
		return nil, fmt.Errorf("%s: body exceeds the %d byte limit", path, limit)
	}
	return buf.Bytes(), nil
}

// decodeTags reads records until End or the end of the data.
func (m *Movie) decodeTags(ctx context.Context, r *stream.Reader) error {
	for r.Remaining() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		offset := r.Offset()
		t, err := tag.Decode(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", len(m.tags), err)
		}
		m.logger.Debug("decoded record",
			"path", m.Path,
			"offset", offset,
			"code", uint16(t.Code()),
			"name", t.Name(),
			"length", t.PayloadLength(),
		)

		if t.Code() == tag.CodeEnd {
			if rest := r.Remaining(); rest > 0 {
				m.warn("tags", r.Offset(), "%d bytes after End record ignored", rest)
			}
			return nil
		}
		if u, ok := t.(*tag.Unknown); ok {
			m.warn("tags", offset, "%s kept as %d raw bytes", u.Code(), u.PayloadLength())
		}
		m.tags = append(m.tags, t)
	}

	m.warn("tags", r.Offset(), "missing End record")
	return nil
}

// largestEntryID returns the largest identifier named by an Export or
// Import record, so identifiers allocated after decoding do not collide
// with them.
func (m *Movie) largestEntryID() uint16 {
	var largest uint16
	for _, t := range m.tags {
		var entries []tag.NameEntry
		switch v := t.(type) {
		case *tag.Export:
			entries = v.Entries()
		case *tag.Import:
			entries = v.Entries()
		}
		for _, e := range entries {
			largest = max(largest, e.ID)
		}
	}
	return largest
}
