package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 240, 180))
	for y := 0; y < 180; y++ {
		for x := 0; x < 240; x++ {
			img.Set(x, y, color.RGBA{210, 170, 150, 255})
		}
	}
	path := filepath.Join(dir, "palm.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func readPNG(t *testing.T, path string) *image.RGBA {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
			for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
				rgba.Set(x, y, img.At(x, y))
			}
		}
	}
	return rgba
}

func TestRun_RendersLines(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)
	withLines := filepath.Join(dir, "lines.png")
	without := filepath.Join(dir, "plain.png")

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-image", in, "-out", withLines}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "240x180 -> surface 600x450")

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-image", in, "-out", without, "-hide-lines"}, &stdout, &stderr), stderr.String())

	a, b := readPNG(t, withLines), readPNG(t, without)
	assert.Equal(t, image.Rect(0, 0, 600, 450), a.Bounds())
	assert.NotEqual(t, a.Pix, b.Pix)
}

func TestRun_JSON(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir)

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-image", in, "-out", filepath.Join(dir, "o.png"), "-json"}, &stdout, &stderr))

	out := stdout.String()
	start := strings.Index(out, "{")
	require.GreaterOrEqual(t, start, 0)

	var snap struct {
		Surface struct{ Width, Height int } `json:"surface"`
		Curves  []struct {
			Name string `json:"name"`
		} `json:"curves"`
		ShowLines bool `json:"showLines"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[start:]), &snap))
	assert.Equal(t, 600, snap.Surface.Width)
	assert.Len(t, snap.Curves, 4)
	assert.True(t, snap.ShowLines)
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage")

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("nope"), 0o644))
	stderr.Reset()
	assert.Equal(t, 1, run([]string{"-image", bad, "-out", filepath.Join(dir, "o.png")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Failed to load image")

	assert.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "linerender v"))
}
