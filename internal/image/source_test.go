package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeBytes(t *testing.T) {
	src, err := DecodeBytes(encodePNG(t, 12, 9))
	require.NoError(t, err)
	assert.Equal(t, "png", src.Format)
	assert.Equal(t, 12, src.Width())
	assert.Equal(t, 9, src.Height())
	assert.Empty(t, src.Path)
}

func TestDecodeBytes_Invalid(t *testing.T) {
	_, err := DecodeBytes([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, image.ErrFormat)

	_, err = DecodeBytes(nil)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palm.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 4, 3), 0o644))

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path)
	assert.Equal(t, 4.0, src.Size().Width)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/B.JPG"))
	assert.True(t, Supported("scan.webp"))
	assert.False(t, Supported("notes.txt"))
	assert.False(t, Supported("noext"))
}

func TestNilSource(t *testing.T) {
	var s *Source
	assert.Zero(t, s.Width())
	assert.Zero(t, s.Height())
}
