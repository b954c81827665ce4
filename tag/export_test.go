package tag

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/simonhull/swfkit/internal/stream"
	"github.com/simonhull/swfkit/internal/types"
)

func encodeExport(t *testing.T, e *Export) []byte {
	t.Helper()
	var buf bytes.Buffer
	m := Measure(e)
	td.CmpNoError(t, Encode(stream.NewSafeWriter(&buf), m))
	td.Cmp(t, buf.Len(), m.Total(), "encode wrote exactly the measured length")
	return buf.Bytes()
}

func decodeExport(data []byte) (*Export, error) {
	sr := stream.NewSafeReader(bytes.NewReader(data), int64(len(data)), "export.swf")
	return DecodeExport(stream.NewReader(sr, 0))
}

func TestExport_ConcreteScenario(t *testing.T) {
	e, err := NewExport(NameEntry{100, "circle"}, NameEntry{200, "square"})
	td.CmpNoError(t, err)

	want := []byte{
		0x0E, 0x14, // code 56, length 20
		0x00, 0x02, // count
		0x00, 0x64, 'c', 'i', 'r', 'c', 'l', 'e', 0x00,
		0x00, 0xC8, 's', 'q', 'u', 'a', 'r', 'e', 0x00,
	}
	got := encodeExport(t, e)
	td.Cmp(t, got, want)

	decoded, err := decodeExport(want)
	td.CmpNoError(t, err)
	td.Cmp(t, decoded.Entries(), []NameEntry{{100, "circle"}, {200, "square"}})
}

func TestExport_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		entries []NameEntry
	}{
		{name: "empty", entries: []NameEntry{}},
		{name: "single", entries: []NameEntry{{1, "root"}}},
		{name: "empty name", entries: []NameEntry{{7, ""}}},
		{name: "max id", entries: []NameEntry{{0xFFFF, "last"}, {0, "first"}}},
		{name: "utf8 name", entries: []NameEntry{{3, "kreis-ö"}}},
		{name: "long form header", entries: []NameEntry{{9, strings.Repeat("n", 200)}}},
		{name: "duplicate ids", entries: []NameEntry{{5, "a"}, {5, "b"}, {5, "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewExport(tt.entries...)
			td.CmpNoError(t, err)

			decoded, err := decodeExport(encodeExport(t, e))
			td.CmpNoError(t, err)
			td.Cmp(t, decoded.Entries(), tt.entries)
			td.Cmp(t, decoded.Len(), len(tt.entries))
		})
	}
}

func TestExport_RoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 50; round++ {
		entries := make([]NameEntry, rng.IntN(40))
		for i := range entries {
			name := make([]byte, rng.IntN(20))
			for j := range name {
				name[j] = byte(1 + rng.IntN(255)) // never zero
			}
			entries[i] = NameEntry{ID: uint16(rng.UintN(1 << 16)), Name: string(name)}
		}

		e, err := NewExport(entries...)
		td.CmpNoError(t, err)
		decoded, err := decodeExport(encodeExport(t, e))
		td.CmpNoError(t, err)
		td.Cmp(t, decoded.Entries(), entries, "round %d", round)
	}
}

func TestExport_PayloadLength(t *testing.T) {
	tests := []struct {
		entries []NameEntry
		payload int
		total   int
	}{
		{entries: nil, payload: 2, total: 4},
		{entries: []NameEntry{{7, ""}}, payload: 5, total: 7},
		{entries: []NameEntry{{100, "circle"}, {200, "square"}}, payload: 20, total: 22},
		// 5 + 57 = 62: last short form
		{entries: []NameEntry{{1, strings.Repeat("x", 57)}}, payload: 62, total: 64},
		// 5 + 58 = 63: first long form
		{entries: []NameEntry{{1, strings.Repeat("x", 58)}}, payload: 63, total: 69},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("payload %d", tt.payload), func(t *testing.T) {
			e, err := NewExport(tt.entries...)
			td.CmpNoError(t, err)

			m := Measure(e)
			td.Cmp(t, m.PayloadLength(), tt.payload)
			td.Cmp(t, m.Total(), tt.total)
			td.Cmp(t, len(encodeExport(t, e)), tt.total)
		})
	}
}

func TestExport_LongFormHeader(t *testing.T) {
	e, err := NewExport(NameEntry{1, strings.Repeat("x", 58)})
	td.CmpNoError(t, err)

	got := encodeExport(t, e)
	td.Cmp(t, got[:6], []byte{0x0E, 0x3F, 0x00, 0x00, 0x00, 0x3F})
}

func TestExport_CountField(t *testing.T) {
	const n = 300
	entries := make([]NameEntry, n)
	for i := range entries {
		entries[i] = NameEntry{ID: uint16(i), Name: fmt.Sprintf("obj%d", i)}
	}
	e, err := NewExport(entries...)
	td.CmpNoError(t, err)

	data := encodeExport(t, e)
	// long-form header is 6 bytes, count follows
	td.Cmp(t, data[6:8], []byte{0x01, 0x2C})

	decoded, err := decodeExport(data)
	td.CmpNoError(t, err)
	td.Cmp(t, decoded.Len(), n)
}

func TestExport_EmptyNameIsSingleTerminator(t *testing.T) {
	e, err := NewExport(NameEntry{7, ""})
	td.CmpNoError(t, err)

	td.Cmp(t, encodeExport(t, e), []byte{0x0E, 0x05, 0x00, 0x01, 0x00, 0x07, 0x00})
}

func TestExport_Truncated(t *testing.T) {
	e, err := NewExport(NameEntry{100, "circle"}, NameEntry{200, "square"})
	td.CmpNoError(t, err)
	full := encodeExport(t, e)

	t.Run("data cut mid-entry", func(t *testing.T) {
		for cut := 3; cut < len(full); cut++ {
			got, err := decodeExport(full[:cut])
			if !errors.Is(err, types.ErrUnderflow) {
				t.Fatalf("cut at %d: expected underflow, got %v", cut, err)
			}
			td.CmpNil(t, got)
		}
	})

	t.Run("header length cut mid-entry", func(t *testing.T) {
		// The header agrees with the data but the count promises a second
		// entry that is not there.
		short := append([]byte{0x0E, 0x0B}, full[2:13]...)
		got, err := decodeExport(short)
		if !errors.Is(err, types.ErrUnderflow) {
			t.Fatalf("expected underflow, got %v", err)
		}
		td.CmpNil(t, got)
	})

	t.Run("name without terminator", func(t *testing.T) {
		data := []byte{0x0E, 0x06, 0x00, 0x01, 0x00, 0x01, 'a', 'b'}
		_, err := decodeExport(data)
		if !errors.Is(err, types.ErrUnderflow) {
			t.Fatalf("expected underflow, got %v", err)
		}
	})
}

func TestExport_TrailingPayloadIsCorrupt(t *testing.T) {
	// count 0 but the header declares 3 payload bytes
	data := []byte{0x0E, 0x03, 0x00, 0x00, 0xAA}
	_, err := decodeExport(data)
	if !errors.Is(err, types.ErrCorrupted) {
		t.Fatalf("expected corrupted record, got %v", err)
	}
}

func TestExport_Add(t *testing.T) {
	e, err := NewExport(NameEntry{1, "a"})
	td.CmpNoError(t, err)

	td.CmpNoError(t, e.Add(NameEntry{2, "b"}, NameEntry{1, "a"}))
	td.CmpNoError(t, e.Add())
	td.Cmp(t, e.Entries(), []NameEntry{{1, "a"}, {2, "b"}, {1, "a"}})

	err = e.Add(NameEntry{3, "ok"}, NameEntry{4, "bad\x00"})
	if !errors.Is(err, ErrEmbeddedNull) {
		t.Fatalf("expected ErrEmbeddedNull, got %v", err)
	}
	td.Cmp(t, e.Len(), 3, "failed Add leaves the table unchanged")
}

func TestExport_TooManyEntries(t *testing.T) {
	entries := make([]NameEntry, MaxEntries)
	e, err := NewExport(entries...)
	td.CmpNoError(t, err)

	err = e.Add(NameEntry{1, "one too many"})
	if !errors.Is(err, ErrTooManyEntries) {
		t.Fatalf("expected ErrTooManyEntries, got %v", err)
	}
	td.Cmp(t, e.Len(), MaxEntries)
}

func TestExport_CopiesEntries(t *testing.T) {
	src := []NameEntry{{1, "a"}}
	e, err := NewExport(src...)
	td.CmpNoError(t, err)

	src[0].Name = "changed"
	out := e.Entries()
	out[0].Name = "changed too"

	td.Cmp(t, e.Entries(), []NameEntry{{1, "a"}})
}

func TestExport_MutationAfterMeasure(t *testing.T) {
	e, err := NewExport(NameEntry{1, "a"})
	td.CmpNoError(t, err)

	m := Measure(e)
	td.CmpNoError(t, e.Add(NameEntry{2, "b"}))

	err = Encode(stream.NewSafeWriter(&bytes.Buffer{}), m)
	var consistency *types.ConsistencyError
	if !errors.As(err, &consistency) {
		t.Fatalf("expected ConsistencyError, got %v", err)
	}
	td.Cmp(t, consistency, &types.ConsistencyError{Tag: "Export", Measured: 8, Encoded: 12})
}

func TestDecodeExport_WrongCode(t *testing.T) {
	_, err := decodeExport([]byte{0x00, 0x40}) // ShowFrame
	if !errors.Is(err, types.ErrCorrupted) {
		t.Fatalf("expected corrupted, got %v", err)
	}
}
