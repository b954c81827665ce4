package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/swfkit"
	"github.com/simonhull/swfkit/tag"
)

// Report is the dump of one movie. The json tags also name the CBOR keys.
type Report struct {
	Path       string   `json:"path" yaml:"path"`
	Format     string   `json:"format" yaml:"format"`
	Version    uint8    `json:"version" yaml:"version"`
	Size       int64    `json:"size" yaml:"size"`
	FrameSize  Frame    `json:"frame_size" yaml:"frame_size"`
	FrameRate  float32  `json:"frame_rate" yaml:"frame_rate"`
	FrameCount int      `json:"frame_count" yaml:"frame_count"`
	Digest     string   `json:"digest" yaml:"digest"`
	Records    []Record `json:"records" yaml:"records"`
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Frame is the stage rectangle in twips.
type Frame struct {
	XMin int32 `json:"x_min" yaml:"x_min"`
	XMax int32 `json:"x_max" yaml:"x_max"`
	YMin int32 `json:"y_min" yaml:"y_min"`
	YMax int32 `json:"y_max" yaml:"y_max"`
}

// Record describes one record. Only the fields relevant to its kind are set.
type Record struct {
	Code    uint16  `json:"code" yaml:"code"`
	Name    string  `json:"name" yaml:"name"`
	Length  int     `json:"length" yaml:"length"`
	Color   string  `json:"color,omitempty" yaml:"color,omitempty"`
	URL     string  `json:"url,omitempty" yaml:"url,omitempty"`
	Entries []Entry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Entry is one identifier/name pair of an Export or Import record.
type Entry struct {
	ID   uint16 `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// NewReport summarizes a decoded movie.
func NewReport(m *swfkit.Movie) (Report, error) {
	digest, err := m.Digest()
	if err != nil {
		return Report{}, fmt.Errorf("digest: %w", err)
	}

	b := m.FrameSize()
	r := Report{
		Path:       m.Path,
		Format:     m.Format().String(),
		Version:    m.Version(),
		Size:       m.Size,
		FrameSize:  Frame{XMin: b.XMin, XMax: b.XMax, YMin: b.YMin, YMax: b.YMax},
		FrameRate:  m.FrameRate(),
		FrameCount: m.FrameCount(),
		Digest:     digest.String(),
		Records:    make([]Record, 0, m.Len()),
	}
	for _, t := range m.Tags() {
		r.Records = append(r.Records, newRecord(t))
	}
	for _, w := range m.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r, nil
}

func newRecord(t tag.Tag) Record {
	rec := Record{Code: uint16(t.Code()), Name: t.Name(), Length: t.PayloadLength()}
	switch v := t.(type) {
	case *tag.SetBackgroundColor:
		rec.Color = v.Color.String()
	case *tag.Export:
		rec.Entries = entries(v.Entries())
	case *tag.Import:
		rec.URL = v.URL()
		rec.Entries = entries(v.Entries())
	case *tag.Unknown:
		rec.Name = v.Code().String()
	}
	return rec
}

func entries(in []tag.NameEntry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = Entry{ID: e.ID, Name: e.Name}
	}
	return out
}

// outputFormats lists the values --format accepts.
var outputFormats = []string{"text", "yaml", "json", "cbor"}

func checkFormat(format string) error {
	if !slices.Contains(outputFormats, format) {
		return fmt.Errorf("unknown output format %q (want text, yaml, json or cbor)", format)
	}
	return nil
}

func writeReports(w io.Writer, format string, reports []Report) error {
	switch format {
	case "text":
		for _, r := range reports {
			writeText(w, r)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "cbor":
		mode, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return err
		}
		return mode.NewEncoder(w).Encode(reports)
	default:
		return checkFormat(format)
	}
}

func writeText(w io.Writer, r Report) {
	fmt.Fprintf(w, "%s\n", r.Path)
	fmt.Fprintf(w, "  format:  %s, version %d, %d bytes\n", r.Format, r.Version, r.Size)
	fmt.Fprintf(w, "  stage:   [%d,%d]-[%d,%d] twips, %.2f fps, %d frames\n",
		r.FrameSize.XMin, r.FrameSize.YMin, r.FrameSize.XMax, r.FrameSize.YMax, r.FrameRate, r.FrameCount)
	fmt.Fprintf(w, "  digest:  %s\n", r.Digest)
	for i, rec := range r.Records {
		fmt.Fprintf(w, "  %4d  %-20s code %-4d %6d bytes", i, rec.Name, rec.Code, rec.Length)
		if rec.Color != "" {
			fmt.Fprintf(w, "  %s", rec.Color)
		}
		if rec.URL != "" {
			fmt.Fprintf(w, "  from %q", rec.URL)
		}
		fmt.Fprintln(w)
		for _, e := range rec.Entries {
			fmt.Fprintf(w, "          %5d  %s\n", e.ID, e.Name)
		}
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}
