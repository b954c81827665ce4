// Package registry maps movie formats to the codecs that read and write
// the movie body (everything after the 8-byte signature block).
package registry

import (
	"io"

	"github.com/simonhull/swfkit/internal/types"
)

// BodyCodec transforms the movie body on its way to and from storage.
type BodyCodec interface {
	// NewReader returns a reader that yields the decoded body read from r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a writer that encodes the body into w. The caller
	// must Close it to flush any buffered output.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

// codecs maps formats to their body codecs.
var codecs = make(map[types.Format]BodyCodec)

// Register registers a body codec for a format.
// This is called by codec packages during initialization (init functions).
func Register(format types.Format, codec BodyCodec) {
	codecs[format] = codec
}

// Get returns the body codec for a given format.
// Returns nil if no codec is registered for the format.
func Get(format types.Format) BodyCodec {
	return codecs[format]
}
