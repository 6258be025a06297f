package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG encodes img as PNG into dir and returns its path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// createPatternImage creates an image with a different colour in each
// quadrant: red top-left, green top-right, blue bottom-left, white
// bottom-right.
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.RGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// createTranslucentImage creates a gradient whose left column is
// half-transparent.
func createTranslucentImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a := uint8(255)
			if x == 0 {
				a = 128
			}
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / width), uint8(y * 255 / height), 100, a})
		}
	}
	return img
}

func TestLoadImage(t *testing.T) {
	path := writePNG(t, t.TempDir(), "pattern.png", createPatternImage(10, 6))

	img, format, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 6, img.Bounds().Dy())
}

func TestLoadImage_DetectsFormatFromContent(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "real.png", createPatternImage(4, 4))

	// A PNG behind a misleading extension is still decoded as PNG.
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	disguised := filepath.Join(dir, "disguised.jpg")
	require.NoError(t, os.WriteFile(disguised, data, 0o644))

	_, format, err := LoadImage(disguised)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestLoadImage_NonExistent(t *testing.T) {
	_, _, err := LoadImage("/nonexistent/path/to/image.png")
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "/nonexistent/path/to/image.png", decodeErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadImage_NotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	require.NoError(t, os.WriteFile(path, []byte("definitely not pixels"), 0o644))

	_, _, err := LoadImage(path)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "pattern.png", createPatternImage(12, 8))

	info, err := Inspect(path)
	require.NoError(t, err)

	stat, err := os.Stat(path)
	require.NoError(t, err)

	assert.Equal(t, path, info.Path)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 8, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "RGB", info.Mode)
	assert.Equal(t, 3, info.Channels)
	assert.Equal(t, 8, info.BitsPerChannel)
	assert.False(t, info.HasAlpha)
	assert.Equal(t, stat.Size(), info.FileSizeBytes)
}

func TestInspect_Translucent(t *testing.T) {
	path := writePNG(t, t.TempDir(), "alpha.png", createTranslucentImage(5, 5))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "RGBA", info.Mode)
	assert.True(t, info.HasAlpha)
	assert.Equal(t, 4, info.Channels)
}

func TestInspect_NonExistent(t *testing.T) {
	_, err := Inspect("/nonexistent/image.png")
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}
