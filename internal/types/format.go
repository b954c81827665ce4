package types

import (
	"io"
)

// Format identifies how a movie body is stored, as announced by the
// three-byte signature at the start of the file.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported signature.
	FormatUnknown Format = iota
	// FormatUncompressed is a plain movie ("FWS").
	FormatUncompressed
	// FormatZlib is a movie whose body after the first 8 bytes is zlib compressed ("CWS").
	FormatZlib
	// FormatLZMA is a movie whose body is LZMA compressed ("ZWS").
	FormatLZMA
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatUncompressed:
		return "uncompressed"
	case FormatZlib:
		return "zlib"
	case FormatLZMA:
		return "lzma"
	default:
		return "unknown"
	}
}

// Signature returns the three signature bytes written for this format.
// Returns nil for FormatUnknown.
func (f Format) Signature() []byte {
	switch f {
	case FormatUncompressed:
		return []byte("FWS")
	case FormatZlib:
		return []byte("CWS")
	case FormatLZMA:
		return []byte("ZWS")
	default:
		return nil
	}
}

// ParseFormat maps a format name (as returned by String) back to a Format.
func ParseFormat(name string) (Format, bool) {
	switch name {
	case "uncompressed", "fws":
		return FormatUncompressed, true
	case "zlib", "cws":
		return FormatZlib, true
	case "lzma", "zws":
		return FormatLZMA, true
	default:
		return FormatUnknown, false
	}
}

// DetectFormat determines the movie format by examining the signature bytes.
//
// Detection does not validate anything past the signature.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 3 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	magic := make([]byte, 3)
	if n, err := r.ReadAt(magic, 0); n < len(magic) {
		reason := "failed to read signature"
		if err != nil {
			reason += ": " + err.Error()
		}
		return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: reason}
	}

	switch string(magic) {
	case "FWS":
		return FormatUncompressed, nil
	case "CWS":
		return FormatZlib, nil
	case "ZWS":
		return FormatLZMA, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unrecognised signature",
	}
}
