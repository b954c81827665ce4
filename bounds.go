package swfkit

import (
	"fmt"
	"math/bits"

	"github.com/simonhull/swfkit/internal/stream"
)

// TwipsPerPixel is the number of twips in one pixel. Frame sizes are
// stored in twips.
const TwipsPerPixel = 20

// maxRectBits is the largest field width the 5-bit size prefix allows.
const maxRectBits = 1<<5 - 1

// MaxPixels is the largest width or height Pixels can express: its twips
// value still fits a signed field of maxRectBits bits. Larger values wrap.
const MaxPixels = (1<<(maxRectBits-1) - 1) / TwipsPerPixel

// Bounds is a rectangle in twips.
type Bounds struct {
	XMin, XMax int32
	YMin, YMax int32
}

// Pixels returns a rectangle of w by h pixels with its origin at zero.
// Sizes above MaxPixels overflow the twips coordinates.
func Pixels(w, h int) Bounds {
	return Bounds{XMax: int32(w * TwipsPerPixel), YMax: int32(h * TwipsPerPixel)}
}

// Width returns the width in twips.
func (b Bounds) Width() int32 { return b.XMax - b.XMin }

// Height returns the height in twips.
func (b Bounds) Height() int32 { return b.YMax - b.YMin }

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d]-[%d,%d]", b.XMin, b.YMin, b.XMax, b.YMax)
}

// fieldBits is the signed width every coordinate is written with: the
// widest of the four, never less than one.
func (b Bounds) fieldBits() int {
	n := 1
	for _, v := range [...]int32{b.XMin, b.XMax, b.YMin, b.YMax} {
		if w := signedWidth(int64(v)); w > n {
			n = w
		}
	}
	return n
}

func signedWidth(v int64) int {
	if v < 0 {
		v = ^v
	}
	return bits.Len64(uint64(v)) + 1
}

// encodedLength is the size prefix plus four fields, padded to a byte.
func (b Bounds) encodedLength() int {
	return (5 + 4*b.fieldBits() + 7) / 8
}

func (b Bounds) validate() error {
	if n := b.fieldBits(); n > maxRectBits {
		return fmt.Errorf("bounds %s need %d-bit fields, limit is %d", b, n, maxRectBits)
	}
	return nil
}

func (b Bounds) encode(w *stream.SafeWriter) error {
	if err := b.validate(); err != nil {
		return err
	}
	n := b.fieldBits()
	if err := w.WriteBits(uint64(n), 5); err != nil {
		return err
	}
	for _, v := range [...]int32{b.XMin, b.XMax, b.YMin, b.YMax} {
		if err := w.WriteSignedBits(int64(v), n); err != nil {
			return err
		}
	}
	return w.Align()
}

func decodeBounds(r *stream.Reader) (Bounds, error) {
	cr := stream.NewChainReader(r)
	n := int(cr.Bits(5, "frame size bits"))
	b := Bounds{
		XMin: int32(cr.SignedBits(n, "frame x min")),
		XMax: int32(cr.SignedBits(n, "frame x max")),
		YMin: int32(cr.SignedBits(n, "frame y min")),
		YMax: int32(cr.SignedBits(n, "frame y max")),
	}
	r.Align()
	return b, cr.Error()
}
