package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/simonhull/swfkit"
	"github.com/simonhull/swfkit/tag"
)

// Manifest describes the export and import tables of a movie. It is JSON
// extended with // line comments, /* block comments */ and trailing
// commas:
//
//	{
//	  // symbols other movies can load
//	  "exports": [
//	    {"id": 1, "name": "hero"},
//	    {"name": "villain"},  // id allocated
//	  ],
//	  "imports": [
//	    {"url": "shared.swf", "entries": [{"id": 40, "name": "logo"}]},
//	  ],
//	  "frames": 1,
//	}
type Manifest struct {
	Exports []ManifestEntry  `json:"exports"`
	Imports []ManifestImport `json:"imports"`

	// Frames is the number of ShowFrame records appended after the
	// tables. Zero means one.
	Frames int `json:"frames"`
}

// ManifestEntry is one identifier/name pair. A missing id is allocated
// from the movie, skipping every id the manifest names explicitly.
type ManifestEntry struct {
	ID   *uint16 `json:"id"`
	Name string  `json:"name"`
}

// ManifestImport names the entries loaded from another movie.
type ManifestImport struct {
	URL     string          `json:"url"`
	Entries []ManifestEntry `json:"entries"`
}

// ParseManifest strips comments and trailing commas from data and decodes
// the result.
func ParseManifest(data []byte) (*Manifest, error) {
	stripped := jsonc.ToJSON(data)

	var m Manifest
	if err := json.Unmarshal(stripped, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Frames < 0 {
		return nil, errors.New("parsing manifest: frames must not be negative")
	}
	return &m, nil
}

// ReadManifest reads and parses the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Build appends the manifest's records to movie: one Import per import
// source, then a single Export, then the frames.
func (m *Manifest) Build(movie *swfkit.Movie) error {
	alloc := newAllocator(movie, m)

	for i, imp := range m.Imports {
		entries, err := alloc.resolve(imp.Entries)
		if err != nil {
			return fmt.Errorf("import %d (%s): %w", i, imp.URL, err)
		}
		record, err := tag.NewImport(imp.URL, entries...)
		if err != nil {
			return fmt.Errorf("import %d (%s): %w", i, imp.URL, err)
		}
		if err := movie.Add(record); err != nil {
			return err
		}
	}

	if len(m.Exports) > 0 {
		entries, err := alloc.resolve(m.Exports)
		if err != nil {
			return fmt.Errorf("exports: %w", err)
		}
		record, err := tag.NewExport(entries...)
		if err != nil {
			return fmt.Errorf("exports: %w", err)
		}
		if err := movie.Add(record); err != nil {
			return err
		}
	}

	for range max(m.Frames, 1) {
		if err := movie.Add(&tag.ShowFrame{}); err != nil {
			return err
		}
	}
	return nil
}

// allocator hands out movie identifiers that the manifest does not
// already use.
type allocator struct {
	movie    *swfkit.Movie
	explicit map[uint16]bool
}

func newAllocator(movie *swfkit.Movie, m *Manifest) *allocator {
	a := &allocator{movie: movie, explicit: map[uint16]bool{}}
	mark := func(entries []ManifestEntry) {
		for _, e := range entries {
			if e.ID != nil {
				a.explicit[*e.ID] = true
			}
		}
	}
	mark(m.Exports)
	for _, imp := range m.Imports {
		mark(imp.Entries)
	}
	return a
}

// next returns the next free identifier, or ErrIdentifiersExhausted once
// the movie has none left.
func (a *allocator) next() (uint16, error) {
	for a.movie.IdentifiersLeft() > 0 {
		if id := a.movie.NewIdentifier(); !a.explicit[id] {
			return id, nil
		}
	}
	return 0, swfkit.ErrIdentifiersExhausted
}

func (a *allocator) resolve(in []ManifestEntry) ([]tag.NameEntry, error) {
	out := make([]tag.NameEntry, len(in))
	for i, e := range in {
		if e.ID != nil {
			out[i] = tag.NameEntry{ID: *e.ID, Name: e.Name}
			continue
		}
		id, err := a.next()
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		out[i] = tag.NameEntry{ID: id, Name: e.Name}
	}
	return out, nil
}
