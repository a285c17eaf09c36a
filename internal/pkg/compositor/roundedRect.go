package compositor

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
)

// roundedRect is a binary coverage mask. Both end coordinates are inclusive,
// so a rectangle of width w spans w+1 columns.
type roundedRect struct {
	x0, y0, x1, y1 int
	r              int
}

func newRoundedRect(x, y, w, h, r int) roundedRect {
	rr := roundedRect{x0: x, y0: y, x1: x + w, y1: y + h, r: r}
	if maxR := min(w, h) / 2; rr.r > maxR {
		rr.r = maxR
	}
	if rr.r < 0 {
		rr.r = 0
	}
	return rr
}

func (rr roundedRect) Empty() bool {
	return rr.x1 < rr.x0 || rr.y1 < rr.y0
}

func (rr roundedRect) ColorModel() color.Model {
	return color.AlphaModel
}

func (rr roundedRect) Bounds() image.Rectangle {
	if rr.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(rr.x0, rr.y0, rr.x1+1, rr.y1+1)
}

func (rr roundedRect) At(x, y int) color.Color {
	if rr.contains(x, y) {
		return color.Opaque
	}
	return color.Transparent
}

func (rr roundedRect) contains(x, y int) bool {
	if x < rr.x0 || x > rr.x1 || y < rr.y0 || y > rr.y1 {
		return false
	}

	var cx, cy int
	switch {
	case x < rr.x0+rr.r:
		cx = rr.x0 + rr.r
	case x > rr.x1-rr.r:
		cx = rr.x1 - rr.r
	default:
		return true
	}
	switch {
	case y < rr.y0+rr.r:
		cy = rr.y0 + rr.r
	case y > rr.y1-rr.r:
		cy = rr.y1 - rr.r
	default:
		return true
	}

	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= rr.r*rr.r
}

// fillRoundedRect replaces the covered pixels of dst with c. c must be opaque.
func fillRoundedRect(dst draw.Image, rr roundedRect, c color.NRGBA) {
	if rr.Empty() {
		return
	}
	b := rr.Bounds()
	draw.DrawMask(dst, b, image.NewUniform(c), image.Point{}, rr, b.Min, draw.Over)
}

// renderShadow rasterizes rr filled with c on a transparent layer covering
// visible, using the same binary coverage as the pill. The layer's origin is
// visible.Min.
func renderShadow(visible image.Rectangle, rr roundedRect, c color.NRGBA) image.Image {
	dc := gg.NewContext(visible.Dx(), visible.Dy())
	defer dc.Close()

	px := layerColor(c)
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		for x := visible.Min.X; x < visible.Max.X; x++ {
			if rr.contains(x, y) {
				dc.SetPixel(x-visible.Min.X, y-visible.Min.Y, px)
			}
		}
	}
	return dc.Image()
}

// layerColor converts c to gg's premultiplied float form. gg truncates when it
// stores a pixel, so each channel sits half a step above its byte value.
func layerColor(c color.NRGBA) gg.RGBA {
	r, g, b, a := c.RGBA()
	channel := func(v uint32) float64 {
		return (float64(v>>8) + 0.5) / 255
	}
	return gg.RGBA{R: channel(r), G: channel(g), B: channel(b), A: channel(a)}
}
