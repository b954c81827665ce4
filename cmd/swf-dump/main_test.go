package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/maxatome/go-testdeep/td"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/swfkit"
	"github.com/simonhull/swfkit/tag"
)

func writeMovie(t *testing.T) string {
	t.Helper()

	m := swfkit.NewMovie()
	m.SetFrameSize(swfkit.Pixels(100, 50))
	export, err := tag.NewExport(tag.NameEntry{ID: m.NewIdentifier(), Name: "circle"})
	td.CmpNoError(t, err)
	raw, err := tag.NewUnknown(2, []byte{1, 2})
	td.CmpNoError(t, err)
	td.CmpNoError(t, m.Add(tag.NewSetBackgroundColor(tag.Color{R: 0x33}), raw, export, &tag.ShowFrame{}))

	path := filepath.Join(t.TempDir(), "dump.swf")
	td.CmpNoError(t, m.SaveAs(path))
	return path
}

func dump(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.Bytes(), err
}

func checkReport(t *testing.T, r Report) {
	t.Helper()

	td.Cmp(t, r.Format, "uncompressed")
	td.Cmp(t, r.FrameCount, 1)
	td.Cmp(t, r.FrameSize, Frame{XMax: 2000, YMax: 1000})
	td.Cmp(t, r.Warnings, td.Len(1))
	td.Cmp(t, r.Records, []Record{
		{Code: 9, Name: "SetBackgroundColor", Length: 3, Color: "#330000"},
		{Code: 2, Name: "Code(2)", Length: 2},
		{Code: 56, Name: "Export", Length: 11, Entries: []Entry{{ID: 1, Name: "circle"}}},
		{Code: 1, Name: "ShowFrame"},
	})
}

func TestRun_Formats(t *testing.T) {
	path := writeMovie(t)

	t.Run("json", func(t *testing.T) {
		out, err := dump(t, "--format", "json", path)
		td.CmpNoError(t, err)
		var reports []Report
		td.CmpNoError(t, json.Unmarshal(out, &reports))
		td.Cmp(t, reports, td.Len(1))
		checkReport(t, reports[0])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := dump(t, "-f", "yaml", path)
		td.CmpNoError(t, err)
		var reports []Report
		td.CmpNoError(t, yaml.Unmarshal(out, &reports))
		checkReport(t, reports[0])
	})

	t.Run("cbor", func(t *testing.T) {
		out, err := dump(t, "--format=cbor", path)
		td.CmpNoError(t, err)
		var reports []Report
		td.CmpNoError(t, cbor.Unmarshal(out, &reports))
		checkReport(t, reports[0])

		again, err := dump(t, "--format=cbor", path)
		td.CmpNoError(t, err)
		td.Cmp(t, again, out, "deterministic encoding")
	})

	t.Run("text", func(t *testing.T) {
		out, err := dump(t, path)
		td.CmpNoError(t, err)
		td.Cmp(t, string(out), td.All(
			td.Contains("SetBackgroundColor"),
			td.Contains("#330000"),
			td.Contains("circle"),
			td.Contains("warning: tags"),
		))
	})
}

func TestRun_Strict(t *testing.T) {
	_, err := dump(t, "--strict", writeMovie(t))
	td.CmpContains(t, err, "strict parsing failed")
}

func TestRun_Errors(t *testing.T) {
	path := writeMovie(t)

	_, err := dump(t)
	td.CmpContains(t, err, "no movie given")

	_, err = dump(t, "--format", "xml", path)
	td.CmpContains(t, err, "unknown output format")

	_, err = dump(t, "--log-level", "loud", path)
	td.CmpContains(t, err, "--log-level")

	_, err = dump(t, filepath.Join(t.TempDir(), "missing.swf"))
	td.CmpContains(t, err, "open file")

	_, err = dump(t, "--max-body-size", "-1", path)
	td.CmpContains(t, err, "--max-body-size")
}

func TestRun_FormatCheckedBeforeDecoding(t *testing.T) {
	// the movie does not exist, so any decode attempt would fail differently
	_, err := dump(t, "--format", "xml", filepath.Join(t.TempDir(), "missing.swf"))
	td.CmpContains(t, err, "unknown output format")
	td.CmpNot(t, err.Error(), td.Contains("open file"))
}

func TestRun_MaxBodySize(t *testing.T) {
	path := writeMovie(t)

	_, err := dump(t, "--max-body-size", "4", path)
	td.CmpContains(t, err, "byte limit")

	_, err = dump(t, "--max-body-size", "0", path)
	td.CmpNoError(t, err)

	// the default cap leaves ordinary movies alone
	_, err = dump(t, path)
	td.CmpNoError(t, err)
}

func TestRun_Help(t *testing.T) {
	_, err := dump(t, "--help")
	td.CmpNoError(t, err)

	out, err := dump(t, "--version")
	td.CmpNoError(t, err)
	td.CmpContains(t, string(out), swfkit.Version)
}

func TestRun_DigestMatchesLibrary(t *testing.T) {
	path := writeMovie(t)
	m, err := swfkit.Open(path)
	td.CmpNoError(t, err)
	digest, err := m.Digest()
	td.CmpNoError(t, err)

	out, err := dump(t, "--format", "json", path)
	td.CmpNoError(t, err)
	var reports []Report
	td.CmpNoError(t, json.Unmarshal(out, &reports))
	td.Cmp(t, reports[0].Digest, digest.String())

	_, err = os.Stat(path)
	td.CmpNoError(t, err)
}
