package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. The typed errors below unwrap to them.
var (
	// ErrUnderflow is matched by UnderflowError.
	ErrUnderflow = errors.New("stream underflow")

	// ErrFraming is matched by FramingError.
	ErrFraming = errors.New("framing mismatch")

	// ErrConsistency is matched by ConsistencyError.
	ErrConsistency = errors.New("length/encode mismatch")

	// ErrCorrupted is matched by CorruptedFileError.
	ErrCorrupted = errors.New("corrupted movie")
)

// UnderflowError is returned when a decode reads past the end of the
// available bytes, or past the end of the record currently being decoded.
type UnderflowError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Limit  int64
}

func (e *UnderflowError) Error() string {
	if e.Offset >= e.Limit {
		return fmt.Sprintf("%s: offset %d out of bounds (limit: %d) while reading %s",
			e.Path, e.Offset, e.Limit, e.What)
	}
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed limit %d while reading %s",
		e.Path, e.Length, e.Offset, e.Limit, e.What)
}

func (e *UnderflowError) Unwrap() error { return ErrUnderflow }

// FramingError reports a Begin/End marker pair that does not match.
//
// Framing errors are encoder or decoder bugs, never bad input, so the
// stream package panics with a *FramingError rather than returning it.
type FramingError struct {
	Want string // name on top of the frame stack ("" when empty)
	Got  string // name passed to End
}

func (e *FramingError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("framing: end %q without matching begin", e.Got)
	}
	return fmt.Sprintf("framing: end %q while %q is open", e.Got, e.Want)
}

func (e *FramingError) Unwrap() error { return ErrFraming }

// ConsistencyError is returned when the encode pass of a record emits a
// different number of bytes than its length pass promised.
//
// By the time it surfaces the record header has already been written,
// so the output stream must be discarded.
type ConsistencyError struct {
	Tag      string
	Measured int64
	Encoded  int64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: length pass measured %d bytes but encode pass wrote %d", e.Tag, e.Measured, e.Encoded)
}

func (e *ConsistencyError) Unwrap() error { return ErrConsistency }

// UnsupportedFormatError is returned when the movie signature is not recognised
// or names a body encoding that has no registered codec.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when the movie structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted movie at offset %d: %s", e.Path, e.Offset, e.Reason)
}

func (e *CorruptedFileError) Unwrap() error { return ErrCorrupted }

// Warning represents a non-fatal issue encountered during decoding.
//
// Examples include tags with codes this package does not model (kept as
// raw records) and a missing End tag at the end of the data.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "header", "tags"

	// Warning message
	Message string

	// Offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
