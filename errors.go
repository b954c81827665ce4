package swfkit

import (
	"github.com/simonhull/swfkit/internal/types"
)

// UnderflowError is an alias to types.UnderflowError.
// Re-exporting from internal/types to maintain public API.
type UnderflowError = types.UnderflowError

// FramingError is an alias to types.FramingError. It is only ever seen as
// a panic value.
type FramingError = types.FramingError

// ConsistencyError is an alias to types.ConsistencyError.
type ConsistencyError = types.ConsistencyError

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
type CorruptedFileError = types.CorruptedFileError

// Warning is an alias to types.Warning.
type Warning = types.Warning

// Sentinels matched by the typed errors above, for use with errors.Is.
var (
	ErrUnderflow   = types.ErrUnderflow
	ErrFraming     = types.ErrFraming
	ErrConsistency = types.ErrConsistency
	ErrCorrupted   = types.ErrCorrupted
)
