package swfkit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/simonhull/swfkit/internal/types"
	"github.com/simonhull/swfkit/tag"
)

// DefaultVersion is the format version new movies are written with.
const DefaultVersion = 10

// MaxFrameRate is the largest rate the 8.8 fixed-point field can hold.
const MaxFrameRate = float32(math.MaxUint16) / 256

// ErrIdentifiersExhausted is the panic value of NewIdentifier once every
// 16-bit identifier has been handed out.
var ErrIdentifiersExhausted = errors.New("all 65535 object identifiers are in use")

// Movie is an ordered sequence of records plus the header properties that
// precede them.
//
// A Movie owns the records added to it. Once a record is passed to Add the
// caller should no longer modify it; the movie encodes it in insertion
// order and drops every reference on Reset.
//
//	movie := swfkit.NewMovie()
//	movie.SetFrameSize(swfkit.Pixels(550, 400))
//	id := movie.NewIdentifier()
//	export, _ := tag.NewExport(tag.NameEntry{ID: id, Name: "hero"})
//	movie.Add(export, &tag.ShowFrame{})
type Movie struct {
	// Path the movie was opened from, empty for movies built in memory.
	Path string

	// Size of the file it was decoded from, 0 for movies built in memory.
	Size int64

	// Warnings encountered during decoding (non-fatal issues)
	Warnings []Warning

	format    Format
	version   uint8
	frameSize Bounds
	frameRate float32

	tags   []tag.Tag
	lastID uint16

	byteOrder ByteOrder
	logger    *slog.Logger
}

// NewMovie returns an empty uncompressed movie at DefaultVersion, 12 frames
// per second and a zero frame size. Only WithByteOrder and WithLogger
// affect a new movie; the other options apply to decoding.
func NewMovie(opts ...Option) *Movie {
	o := applyOptions(opts)
	return &Movie{
		format:    FormatUncompressed,
		version:   DefaultVersion,
		frameRate: 12,
		byteOrder: o.byteOrder,
		logger:    o.logger,
	}
}

// NewIdentifier returns the next unused object identifier. Identifiers
// start at 1 and increase by one per call. It panics with
// ErrIdentifiersExhausted after 65535 calls.
func (m *Movie) NewIdentifier() uint16 {
	if m.lastID == math.MaxUint16 {
		panic(ErrIdentifiersExhausted)
	}
	m.lastID++
	return m.lastID
}

// IdentifiersLeft returns how many more times NewIdentifier can be called
// without panicking.
func (m *Movie) IdentifiersLeft() int {
	return math.MaxUint16 - int(m.lastID)
}

// Add appends records to the movie and takes ownership of them. Nothing is
// added if any record is nil.
func (m *Movie) Add(tags ...tag.Tag) error {
	for i, t := range tags {
		if t == nil {
			return fmt.Errorf("add record %d: nil record", i)
		}
	}
	m.tags = append(m.tags, tags...)
	return nil
}

// Tags returns the records in encode order. The slice is a copy but the
// records are the movie's own.
func (m *Movie) Tags() []tag.Tag {
	out := make([]tag.Tag, len(m.tags))
	copy(out, m.tags)
	return out
}

// Len returns the number of records.
func (m *Movie) Len() int {
	return len(m.tags)
}

// Exports returns every Export record in order.
func (m *Movie) Exports() []*tag.Export {
	var out []*tag.Export
	for _, t := range m.tags {
		if e, ok := t.(*tag.Export); ok {
			out = append(out, e)
		}
	}
	return out
}

// FrameCount returns the number of ShowFrame records.
func (m *Movie) FrameCount() int {
	n := 0
	for _, t := range m.tags {
		if t.Code() == tag.CodeShowFrame {
			n++
		}
	}
	return n
}

// Reset drops every record and restarts identifier allocation. Header
// properties are kept.
func (m *Movie) Reset() {
	clear(m.tags)
	m.tags = nil
	m.lastID = 0
	m.Warnings = nil
}

// Format returns the body encoding the movie is written with.
func (m *Movie) Format() Format { return m.format }

// SetFormat selects the body encoding. Only formats with a registered body
// codec can be encoded.
func (m *Movie) SetFormat(f Format) { m.format = f }

// Version returns the format version written in the header.
func (m *Movie) Version() uint8 { return m.version }

// SetVersion sets the format version written in the header.
func (m *Movie) SetVersion(v uint8) { m.version = v }

// FrameSize returns the stage rectangle.
func (m *Movie) FrameSize() Bounds { return m.frameSize }

// SetFrameSize sets the stage rectangle.
func (m *Movie) SetFrameSize(b Bounds) { m.frameSize = b }

// FrameRate returns frames per second.
func (m *Movie) FrameRate() float32 { return m.frameRate }

// SetFrameRate sets frames per second. The header stores the rate in 8.8
// fixed point, so it is rounded to the nearest 1/256 when encoded and must
// lie in [0, MaxFrameRate].
func (m *Movie) SetFrameRate(rate float32) { m.frameRate = rate }

// ByteOrder returns the byte order used for multi-byte fields.
func (m *Movie) ByteOrder() ByteOrder { return m.byteOrder }

// warn records a non-fatal issue.
func (m *Movie) warn(stage string, offset int64, format string, args ...any) {
	w := types.Warning{Stage: stage, Message: fmt.Sprintf(format, args...), Offset: offset}
	m.logger.Warn("decode warning", "path", m.Path, "stage", w.Stage, "offset", w.Offset, "message", w.Message)
	m.Warnings = append(m.Warnings, w)
}
