package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// textVerticalBias lifts the text above the geometric centre of the pill.
const textVerticalBias = 20

// measureText returns the pixel size of the ink box of s, rounded outwards.
func measureText(face font.Face, s string) (width, height int) {
	b, _ := font.BoundString(face, s)
	return b.Max.X.Ceil() - b.Min.X.Floor(), b.Max.Y.Ceil() - b.Min.Y.Floor()
}

// textOrigin is the top-left draw position of a width x height text box
// centred in the pill.
func textOrigin(cfg entity.PillConfig, width, height int) image.Point {
	return image.Point{
		X: cfg.X + floorDiv(cfg.Width-width, 2),
		Y: cfg.Y + floorDiv(cfg.Height-height, 2) - textVerticalBias,
	}
}

// drawText draws s with the top of the face's ascent at origin.Y.
func drawText(dst draw.Image, face font.Face, s string, origin image.Point, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(origin.X, origin.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// floorDiv rounds towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
