package tag

import (
	"fmt"
	"strings"

	"github.com/simonhull/swfkit/internal/stream"
)

// Import loads objects exported by the movie at URL and binds each one to
// a local identifier. The payload is the zero-terminated URL followed by
// the same table layout as Export.
type Import struct {
	url     string
	entries []NameEntry
}

// NewImport returns an Import of entries from url.
func NewImport(url string, entries ...NameEntry) (*Import, error) {
	if strings.IndexByte(url, 0) >= 0 {
		return nil, fmt.Errorf("import url: %w", ErrEmbeddedNull)
	}
	i := &Import{url: url}
	if err := i.Add(entries...); err != nil {
		return nil, err
	}
	return i, nil
}

// Code returns CodeImport.
func (i *Import) Code() Code { return CodeImport }

// Name returns "Import".
func (i *Import) Name() string { return "Import" }

// URL returns the location of the exporting movie.
func (i *Import) URL() string { return i.url }

// Add appends entries with the same rules as Export.Add.
func (i *Import) Add(entries ...NameEntry) error {
	table, err := appendEntries(i.entries, entries)
	if err != nil {
		return err
	}
	i.entries = table
	return nil
}

// Entries returns a copy of the entries in wire order.
func (i *Import) Entries() []NameEntry {
	return cloneEntries(i.entries)
}

// PayloadLength returns the URL with its terminator plus the entry table.
func (i *Import) PayloadLength() int {
	return len(i.url) + 1 + tableLength(i.entries)
}

func (i *Import) encodePayload(w *stream.SafeWriter) error {
	if err := w.WriteCString(i.url); err != nil {
		return err
	}
	return encodeTable(w, i.entries)
}

func (i *Import) decodePayload(r *stream.Reader, _ int) error {
	url, err := r.ReadCString("import url")
	if err != nil {
		return err
	}
	entries, err := decodeTable(r)
	if err != nil {
		return err
	}
	i.url = url
	i.entries = entries
	return nil
}
