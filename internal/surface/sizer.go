// Package surface computes the pixel dimensions of the drawing surface.
package surface

import (
	"errors"
	"fmt"
	"math"

	"palmlines/pkg/geometry"
)

// ErrInvalidDimensions is returned when an image or bounding box has a
// non-positive side.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Surface is the drawing target's internal resolution in pixels.
type Surface struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// New returns a Surface of the given size.
func New(width, height int) Surface {
	return Surface{Width: width, Height: height}
}

// Size returns the surface extent as a float geometry.Size.
func (s Surface) Size() geometry.Size {
	return geometry.NewSize(float64(s.Width), float64(s.Height))
}

// Empty reports whether the surface has no drawable area.
func (s Surface) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

func (s Surface) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ComputeDimensions fits a naturalWidth x naturalHeight image into the
// maxWidth x maxHeight box with a single scale factor for both axes. Images
// smaller than the box are scaled up. Results are truncated to whole pixels so
// they never exceed the box, and are at least 1 pixel on each axis.
func ComputeDimensions(naturalWidth, naturalHeight, maxWidth, maxHeight int) (int, int, error) {
	if naturalWidth <= 0 || naturalHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: image %dx%d", ErrInvalidDimensions, naturalWidth, naturalHeight)
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: bounding box %dx%d", ErrInvalidDimensions, maxWidth, maxHeight)
	}

	scale := math.Min(
		float64(maxWidth)/float64(naturalWidth),
		float64(maxHeight)/float64(naturalHeight),
	)

	return fit(float64(naturalWidth)*scale, maxWidth), fit(float64(naturalHeight)*scale, maxHeight), nil
}

// Fit is ComputeDimensions returning a Surface.
func Fit(naturalWidth, naturalHeight, maxWidth, maxHeight int) (Surface, error) {
	w, h, err := ComputeDimensions(naturalWidth, naturalHeight, maxWidth, maxHeight)
	if err != nil {
		return Surface{}, err
	}
	return New(w, h), nil
}

// fit truncates v to an int in [1, limit]. The epsilon absorbs float error so
// that e.g. 1200*0.5 lands on 600 rather than 599.
func fit(v float64, limit int) int {
	n := int(math.Floor(v + 1e-9))
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}
