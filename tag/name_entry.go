package tag

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/simonhull/swfkit/internal/stream"
)

// MaxEntries is the largest number of entries the 16-bit count field of a
// name table can describe.
const MaxEntries = math.MaxUint16

// ErrTooManyEntries is returned when a name table would exceed MaxEntries.
var ErrTooManyEntries = errors.New("too many entries for a 16-bit count")

// ErrEmbeddedNull is returned for names containing a zero byte, which
// would terminate the name early when decoded.
var ErrEmbeddedNull = stream.ErrEmbeddedNull

// NameEntry pairs an object identifier with a name.
type NameEntry struct {
	ID   uint16
	Name string
}

// encodedLength is identifier, name bytes and terminator.
func (n NameEntry) encodedLength() int {
	return 2 + len(n.Name) + 1
}

func (n NameEntry) String() string {
	return fmt.Sprintf("%d=%q", n.ID, n.Name)
}

// appendEntries validates added and appends it to table. Nothing is
// appended unless every entry is valid. Duplicate identifiers are allowed.
func appendEntries(table, added []NameEntry) ([]NameEntry, error) {
	if len(table)+len(added) > MaxEntries {
		return table, fmt.Errorf("%d + %d entries: %w", len(table), len(added), ErrTooManyEntries)
	}
	for i, e := range added {
		if strings.IndexByte(e.Name, 0) >= 0 {
			return table, fmt.Errorf("entry %d (id %d): %w", i, e.ID, ErrEmbeddedNull)
		}
	}
	return append(table, added...), nil
}

// tableLength is the count field plus every entry.
func tableLength(entries []NameEntry) int {
	n := 2
	for _, e := range entries {
		n += e.encodedLength()
	}
	return n
}

// encodeTable writes the count, then each entry in order: identifier,
// name bytes, zero terminator.
func encodeTable(w *stream.SafeWriter, entries []NameEntry) error {
	if err := w.WriteUint(uint64(len(entries)), 16); err != nil {
		return fmt.Errorf("entry count: %w", err)
	}
	for _, e := range entries {
		if err := stream.Write(w, e.ID); err != nil {
			return err
		}
		if err := w.WriteCString(e.Name); err != nil {
			return err
		}
	}
	return nil
}

// decodeTable reads a count and that many entries. It returns nothing on
// error so a table is never partially populated.
func decodeTable(r *stream.Reader) ([]NameEntry, error) {
	count, err := stream.ReadValue[uint16](r, "entry count")
	if err != nil {
		return nil, err
	}

	entries := make([]NameEntry, 0, count)
	for i := 0; i < int(count); i++ {
		id, err := stream.ReadValue[uint16](r, "entry identifier")
		if err != nil {
			return nil, fmt.Errorf("entry %d of %d: %w", i, count, err)
		}
		name, err := r.ReadCString("entry name")
		if err != nil {
			return nil, fmt.Errorf("entry %d of %d: %w", i, count, err)
		}
		entries = append(entries, NameEntry{ID: id, Name: name})
	}
	return entries, nil
}

func cloneEntries(entries []NameEntry) []NameEntry {
	out := make([]NameEntry, len(entries))
	copy(out, entries)
	return out
}
