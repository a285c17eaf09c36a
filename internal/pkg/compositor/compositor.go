package compositor

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/pill-overlay/internal/entity"
	"github.com/ds124wfegd/pill-overlay/internal/pkg/fonts"
	"github.com/sirupsen/logrus"

	_ "golang.org/x/image/webp"
)

const (
	shadowOffset = 10
	shadowAlpha  = 60
)

var shadowColor = color.NRGBA{A: shadowAlpha}

type ImageCompositor interface {
	Render(data []byte, text string, cfg entity.PillConfig) ([]byte, error)
}

type imageCompositor struct {
	fonts     fonts.FaceResolver
	maxPixels int64
}

// NewImageCompositor returns a compositor drawing with faces from resolver.
// Images whose width*height exceeds maxPixels are refused before decoding;
// maxPixels <= 0 selects entity.DefaultMaxImagePixels.
func NewImageCompositor(resolver fonts.FaceResolver, maxPixels int64) ImageCompositor {
	if maxPixels <= 0 {
		maxPixels = entity.DefaultMaxImagePixels
	}
	return &imageCompositor{fonts: resolver, maxPixels: maxPixels}
}

// Render draws text on a drop-shadowed pill over the encoded image in data
// and returns the result as an opaque RGB PNG.
func (c *imageCompositor) Render(data []byte, text string, cfg entity.PillConfig) ([]byte, error) {
	if err := c.checkLimits(data, cfg); err != nil {
		return nil, err
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}
	img := imaging.Clone(src)

	c.drawShadow(img, cfg)

	// The pill replaces pixels; it is not blended with the shadow under it.
	fillRoundedRect(img, newRoundedRect(cfg.X, cfg.Y, cfg.Width, cfg.Height, cfg.CornerRadius), cfg.PillColor)

	resolved := c.fonts.Resolve(cfg.FontSize)
	defer resolved.Close()

	textWidth, textHeight := measureText(resolved.Face, text)
	origin := textOrigin(cfg, textWidth, textHeight)
	drawText(img, resolved.Face, text, origin, cfg.TextColor)

	logrus.WithFields(logrus.Fields{
		"width":     img.Bounds().Dx(),
		"height":    img.Bounds().Dy(),
		"font_tier": resolved.Tier.String(),
		"font":      resolved.Source,
		"text_x":    origin.X,
		"text_y":    origin.Y,
	}).Debug("Text rendered")

	dropAlpha(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// checkLimits reads only the image header. The decoded canvas, and the glyph
// masks for a scalable face of cfg.FontSize pixels, must both fit in maxPixels.
func (c *imageCompositor) checkLimits(data []byte, cfg entity.PillConfig) error {
	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	if pixels := int64(header.Width) * int64(header.Height); pixels > c.maxPixels {
		return fmt.Errorf("%w: image size (%d pixels) exceeds limit of %d pixels",
			entity.ErrDecode, pixels, c.maxPixels)
	}
	if size := int64(cfg.FontSize); size*size > c.maxPixels {
		return fmt.Errorf("%w: font size %d is too large", entity.ErrInvalidInput, cfg.FontSize)
	}
	return nil
}

// drawShadow alpha-composites the shadow over img in place. Pixels outside
// the shadow shape are left exactly as they were.
func (c *imageCompositor) drawShadow(img *image.NRGBA, cfg entity.PillConfig) {
	rr := newRoundedRect(cfg.X+shadowOffset, cfg.Y+shadowOffset, cfg.Width, cfg.Height, cfg.CornerRadius)
	visible := rr.Bounds().Intersect(img.Bounds())
	if visible.Empty() {
		return
	}

	layer := renderShadow(visible, rr, shadowColor)
	blended := imaging.Overlay(imaging.Crop(img, visible), layer, image.Point{}, 1.0)

	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		for x := visible.Min.X; x < visible.Max.X; x++ {
			if !rr.contains(x, y) {
				continue
			}
			i := img.PixOffset(x, y)
			j := blended.PixOffset(x-visible.Min.X, y-visible.Min.Y)
			copy(img.Pix[i:i+4], blended.Pix[j:j+4])
		}
	}
}

// dropAlpha discards the alpha channel, keeping colour values as they are.
func dropAlpha(img *image.NRGBA) {
	b := img.Bounds()
	for y := 0; y < b.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			row[i] = 0xff
		}
	}
}
