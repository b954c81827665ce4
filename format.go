package swfkit

import (
	"io"

	"github.com/simonhull/swfkit/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Body encodings, named after their signatures FWS, CWS and ZWS.
const (
	FormatUnknown      = types.FormatUnknown
	FormatUncompressed = types.FormatUncompressed
	FormatZlib         = types.FormatZlib
	FormatLZMA         = types.FormatLZMA
)

// DetectFormat reads the signature at the start of r.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}

// ParseFormat maps a format name or signature, such as "zlib" or "cws",
// to a Format.
func ParseFormat(name string) (Format, bool) {
	return types.ParseFormat(name)
}
