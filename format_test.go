package swfkit

import (
	"bytes"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		data []byte
		want Format
	}{
		{data: []byte("FWS\x0a"), want: FormatUncompressed},
		{data: []byte("CWS\x0a"), want: FormatZlib},
		{data: []byte("ZWS\x0d"), want: FormatLZMA},
	}

	for _, tt := range tests {
		got, err := DetectFormat(bytes.NewReader(tt.data), int64(len(tt.data)), "movie.swf")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", tt.data[:3], got, tt.want)
		}
	}
}

func TestDetectFormat_TooSmall(t *testing.T) {
	data := []byte{'F', 'W'}

	_, err := DetectFormat(bytes.NewReader(data), int64(len(data)), "tiny.swf")
	if _, ok := err.(*UnsupportedFormatError); !ok {
		t.Errorf("expected UnsupportedFormatError, got %T", err)
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"uncompressed": FormatUncompressed,
		"cws":          FormatZlib,
		"zlib":         FormatZlib,
	} {
		got, ok := ParseFormat(name)
		if !ok || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseFormat("gzip"); ok {
		t.Error("gzip is not a body encoding")
	}
}
