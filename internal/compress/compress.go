// Package compress provides the body codecs for each movie format and
// registers them with the registry.
//
// The codec values are protocol constants of the format: a "CWS" movie is
// always zlib, and the first 8 bytes (signature, version, file length)
// are never compressed.
package compress

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/simonhull/swfkit/internal/registry"
	"github.com/simonhull/swfkit/internal/types"
)

// Identity passes the body through unchanged. Used for "FWS" movies.
type Identity struct{}

// NewReader returns r unchanged.
func (Identity) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

// NewWriter returns w with a no-op Close.
func (Identity) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Zlib compresses the body with zlib. Used for "CWS" movies.
type Zlib struct {
	// Level is passed to zlib.NewWriterLevel as is, so the zero value is
	// zlib.NoCompression. The registered codec uses DefaultZlib.
	Level int
}

// DefaultZlib is the codec registered for "CWS" movies.
var DefaultZlib = Zlib{Level: zlib.DefaultCompression}

// NewReader returns a zlib decompressor reading from r.
func (z Zlib) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	return zr, nil
}

// NewWriter returns a zlib compressor writing to w.
func (z Zlib) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw, err := zlib.NewWriterLevel(w, z.Level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	return zw, nil
}

func init() {
	registry.Register(types.FormatUncompressed, Identity{})
	registry.Register(types.FormatZlib, DefaultZlib)
}
