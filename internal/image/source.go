// Package image decodes the photos the editor annotates.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"palmlines/pkg/geometry"
)

// ErrDecode wraps every decoding failure.
var ErrDecode = errors.New("failed to decode image")

// Extensions lists the file extensions with a registered decoder.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp"}

// Source is a decoded image.
type Source struct {
	Path   string      // Original file path, empty when decoded from memory
	Format string      // Decoder name reported by image.Decode
	Image  image.Image // Decoded pixels
}

// Decode reads one image from r.
func Decode(r io.Reader) (*Source, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}
	return &Source{Format: format, Image: img}, nil
}

// DecodeBytes decodes an in-memory image.
func DecodeBytes(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}
	return Decode(bytes.NewReader(data))
}

// Load decodes the image at path.
func Load(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	src, err := Decode(file)
	if err != nil {
		return nil, err
	}
	src.Path = path
	return src, nil
}

// Supported reports whether path has an extension listed in Extensions.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Width returns the image width in pixels.
func (s *Source) Width() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (s *Source) Height() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (s *Source) Size() geometry.Size {
	return geometry.Size{
		Width:  float64(s.Width()),
		Height: float64(s.Height()),
	}
}
