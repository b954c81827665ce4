package swfkit

import (
	"io"
	"log/slog"

	"github.com/simonhull/swfkit/internal/stream"
)

// ByteOrder selects how multi-byte fields are laid out.
type ByteOrder = stream.Endianness

// Byte orders. Every multi-byte field of a movie uses the same one.
const (
	BigEndian    = stream.BigEndian
	LittleEndian = stream.LittleEndian
)

// Option configures how movies are created and decoded.
//
// Options use the functional options pattern:
//
//	movie, err := swfkit.Open("intro.swf",
//	    swfkit.WithStrictParsing(),
//	    swfkit.WithLogger(logger),
//	)
type Option func(*options)

type options struct {
	strictParsing  bool         // Fail on any warning
	ignoreWarnings bool         // Drop warnings instead of collecting them
	logger         *slog.Logger // Debug trace of decoded records
	byteOrder      ByteOrder    // Layout of multi-byte fields
	maxBodySize    int64        // Largest body accepted after decompression (0 = no limit)
}

func defaultOptions() *options {
	return &options{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		byteOrder: BigEndian,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default decoding keeps going when it meets records it does not model,
// a missing End record or a header that disagrees with the body, and
// reports those as Movie.Warnings. With strict parsing any of them fails
// the decode.
func WithStrictParsing() Option {
	return func(o *options) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings discards warnings instead of collecting them in
// Movie.Warnings.
func WithIgnoreWarnings() Option {
	return func(o *options) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger used for debug tracing. Each decoded record
// is logged at debug level. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithByteOrder sets the byte order of every multi-byte field, both in the
// header and in records. The default is BigEndian.
func WithByteOrder(order ByteOrder) Option {
	return func(o *options) {
		o.byteOrder = order
	}
}

// WithMaxBodySize limits the size of a movie body after decompression.
// Larger bodies fail to decode. This protects against compressed inputs
// that expand without bound.
//
// Default is 0 (no limit).
func WithMaxBodySize(bytes int64) Option {
	return func(o *options) {
		o.maxBodySize = bytes
	}
}
