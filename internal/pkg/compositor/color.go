package compositor

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"github.com/ds124wfegd/pill-overlay/internal/entity"
)

// ParseHexColor parses "RRGGBB" with any number of leading '#'. The result is
// always opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimLeft(s, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("%w %q: expected 6 hex digits", entity.ErrInvalidColor, s)
	}

	rgb, err := hex.DecodeString(h)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w %q: %v", entity.ErrInvalidColor, s, err)
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}
