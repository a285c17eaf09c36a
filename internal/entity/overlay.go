package entity

import "image/color"

const (
	DefaultPillX        = 600
	DefaultPillY        = 280
	DefaultPillWidth    = 1120
	DefaultPillHeight   = 420
	DefaultPillColor    = "#F5F2E6"
	DefaultTextColor    = "#192A56"
	DefaultFontSize     = 280
	DefaultCornerRadius = 45

	// DefaultMaxImagePixels bounds width*height of an accepted image.
	DefaultMaxImagePixels = 2 * 89478485
)

// AddTextRequest is the body of POST /add-text.
type AddTextRequest struct {
	Image  string       `json:"image" binding:"required"`
	Text   string       `json:"text" binding:"required"`
	Config *PillOptions `json:"config,omitempty"`
}

// PillOptions is the optional "config" object. Pointer fields tell an absent
// value apart from an explicit zero. Numbers may be fractional and are floored.
type PillOptions struct {
	PillX        *float64 `json:"pill_x,omitempty"`
	PillY        *float64 `json:"pill_y,omitempty"`
	PillWidth    *float64 `json:"pill_width,omitempty"`
	PillHeight   *float64 `json:"pill_height,omitempty"`
	PillColor    *string  `json:"pill_color,omitempty"`
	TextColor    *string  `json:"text_color,omitempty"`
	FontSize     *float64 `json:"font_size,omitempty"`
	CornerRadius *float64 `json:"corner_radius,omitempty"`
}

// PillConfig is the resolved, per-request drawing configuration.
type PillConfig struct {
	X            int
	Y            int
	Width        int
	Height       int
	PillColor    color.NRGBA
	TextColor    color.NRGBA
	FontSize     int
	CornerRadius int
}

type AddTextResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image,omitempty"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type FontStatusResponse struct {
	Provisioned bool   `json:"provisioned"`
	URL         string `json:"url"`
	Path        string `json:"path"`
	Bytes       int64  `json:"bytes"`
	Error       string `json:"error,omitempty"`
}
