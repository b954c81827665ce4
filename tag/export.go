package tag

import (
	"github.com/simonhull/swfkit/internal/stream"
)

// Export makes objects defined in a movie available to other movies by name.
//
// The payload is a 16-bit entry count followed by, for each entry, a 16-bit
// identifier and a zero-terminated name. Entries keep insertion order, which
// is the wire order.
type Export struct {
	entries []NameEntry
}

// NewExport returns an Export holding a copy of entries.
func NewExport(entries ...NameEntry) (*Export, error) {
	e := &Export{}
	if err := e.Add(entries...); err != nil {
		return nil, err
	}
	return e, nil
}

// DecodeExport decodes one record from r and requires it to be an Export.
func DecodeExport(r *stream.Reader) (*Export, error) {
	t, err := DecodeExpect(r, CodeExport)
	if err != nil {
		return nil, err
	}
	return t.(*Export), nil
}

// Code returns CodeExport.
func (e *Export) Code() Code { return CodeExport }

// Name returns "Export".
func (e *Export) Name() string { return "Export" }

// Add appends entries after the existing ones, in order. Identifiers are
// not checked for duplicates. Names containing a zero byte, or growing the
// table past MaxEntries, fail the whole call.
func (e *Export) Add(entries ...NameEntry) error {
	table, err := appendEntries(e.entries, entries)
	if err != nil {
		return err
	}
	e.entries = table
	return nil
}

// Entries returns a copy of the entries in wire order.
func (e *Export) Entries() []NameEntry {
	return cloneEntries(e.entries)
}

// Len returns the number of entries.
func (e *Export) Len() int {
	return len(e.entries)
}

// PayloadLength returns 2 for the count plus, per entry, 2 for the
// identifier, the name length and 1 for the terminator.
func (e *Export) PayloadLength() int {
	return tableLength(e.entries)
}

func (e *Export) encodePayload(w *stream.SafeWriter) error {
	return encodeTable(w, e.entries)
}

func (e *Export) decodePayload(r *stream.Reader, _ int) error {
	entries, err := decodeTable(r)
	if err != nil {
		return err
	}
	e.entries = append(e.entries, entries...)
	return nil
}
