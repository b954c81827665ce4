package tag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/simonhull/swfkit/internal/stream"
)

// End marks the end of a movie. It has no payload.
type End struct{}

func (*End) Code() Code                              { return CodeEnd }
func (*End) Name() string                            { return "End" }
func (*End) PayloadLength() int                      { return 0 }
func (*End) encodePayload(*stream.SafeWriter) error  { return nil }
func (*End) decodePayload(*stream.Reader, int) error { return nil }

// ShowFrame renders the display list and starts the next frame.
// It has no payload.
type ShowFrame struct{}

func (*ShowFrame) Code() Code                              { return CodeShowFrame }
func (*ShowFrame) Name() string                            { return "ShowFrame" }
func (*ShowFrame) PayloadLength() int                      { return 0 }
func (*ShowFrame) encodePayload(*stream.SafeWriter) error  { return nil }
func (*ShowFrame) decodePayload(*stream.Reader, int) error { return nil }

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// String returns the color as #rrggbb.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses a color written as #rrggbb or rrggbb.
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// SetBackgroundColor sets the color the player clears each frame with.
type SetBackgroundColor struct {
	Color Color
}

// NewSetBackgroundColor returns a SetBackgroundColor for c.
func NewSetBackgroundColor(c Color) *SetBackgroundColor {
	return &SetBackgroundColor{Color: c}
}

func (*SetBackgroundColor) Code() Code         { return CodeSetBackgroundColor }
func (*SetBackgroundColor) Name() string       { return "SetBackgroundColor" }
func (*SetBackgroundColor) PayloadLength() int { return 3 }

func (s *SetBackgroundColor) encodePayload(w *stream.SafeWriter) error {
	return w.WriteBytes([]byte{s.Color.R, s.Color.G, s.Color.B})
}

func (s *SetBackgroundColor) decodePayload(r *stream.Reader, _ int) error {
	cr := stream.NewChainReader(r)
	s.Color = Color{
		R: stream.ReadChained[uint8](cr, "red"),
		G: stream.ReadChained[uint8](cr, "green"),
		B: stream.ReadChained[uint8](cr, "blue"),
	}
	return cr.Error()
}
