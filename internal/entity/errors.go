package entity

import "errors"

var (
	// Request errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidColor = errors.New("invalid hex color")

	// Image errors
	ErrDecode = errors.New("cannot identify image file")
	ErrEncode = errors.New("cannot encode image")
)
