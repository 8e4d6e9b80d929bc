// Package colorutil provides shared color utilities for the annotation editor.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common overlay colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red     = color.RGBA{R: 230, G: 57, B: 70, A: 255}
	Gold    = color.RGBA{R: 244, G: 185, B: 66, A: 255}
	Green   = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	Blue    = color.RGBA{R: 66, G: 135, B: 245, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Gray    = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 255}
)

// ErrBadHex is returned when a color string is not of the form #RRGGBB or #RRGGBBAA.
var ErrBadHex = errors.New("invalid hex color")

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" (leading '#' optional). The
// digits are straight alpha; the returned color is premultiplied.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xFF
	}
	nc := color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
	return color.RGBAModel.Convert(nc).(color.RGBA), nil
}

// Hex formats c as "#RRGGBB", dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Luminance returns the relative luminance of c in [0,1] (Rec. 601 weights).
func Luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255.0
}

// Contrast returns black or white, whichever reads better against c.
func Contrast(c color.RGBA) color.RGBA {
	if Luminance(c) > 0.6 {
		return Black
	}
	return White
}

// WithAlpha returns c with its alpha replaced. The result is premultiplied,
// as color.RGBA requires.
func WithAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(uint16(v) * uint16(a) / 255)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
