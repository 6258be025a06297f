package imaging

import (
	"bufio"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// LoadImage reads and decodes the image at path.
//
// The container format is detected from the file contents, not from the
// extension. The file is closed before LoadImage returns, so the same path
// may safely be used as an output afterwards.
//
// Returns:
//   - image.Image: The decoded image. Its concrete type depends on the
//     container and colour model (e.g., *image.Gray, *image.Paletted,
//     *image.YCbCr).
//   - string: The registered format name reported by the decoder ("png",
//     "jpeg", "gif", "bmp", "tiff" or "webp").
//   - error: A *DecodeError if the file cannot be opened, read or decoded.
func LoadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: errors.Wrap(err, "failed to open image")}
	}
	defer f.Close()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", &DecodeError{Path: path, Err: errors.Wrap(err, "failed to decode image")}
	}

	return img, format, nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Path is the path the image was read from.
	Path string `json:"path" yaml:"path"`

	// Width is the image width in pixels.
	Width int `json:"width" yaml:"width"`

	// Height is the image height in pixels.
	Height int `json:"height" yaml:"height"`

	// Format is the container format detected from the file contents.
	Format string `json:"format" yaml:"format"`

	// Mode is the pixel mode the decoded image is stored as.
	Mode string `json:"mode" yaml:"mode"`

	// Channels is the number of samples per pixel of Mode.
	Channels int `json:"channels" yaml:"channels"`

	// BitsPerChannel is the sample depth of Mode.
	BitsPerChannel int `json:"bits_per_channel" yaml:"bits_per_channel"`

	// HasAlpha indicates whether Mode carries an alpha channel.
	HasAlpha bool `json:"has_alpha" yaml:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes" yaml:"file_size_bytes"`
}

// Inspect decodes the image at path and describes it.
//
// The mode is derived with ModeOf, so a file written by Convert reports the
// mode it was converted to.
func Inspect(path string) (*ImageInfo, error) {
	img, format, err := LoadImage(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: errors.Wrap(err, "failed to stat file")}
	}

	bounds := img.Bounds()
	spec := ModeOf(img).Spec()

	return &ImageInfo{
		Path:           path,
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
		Format:         format,
		Mode:           spec.Name,
		Channels:       spec.Channels,
		BitsPerChannel: spec.Bits,
		HasAlpha:       spec.HasAlpha,
		FileSizeBytes:  stat.Size(),
	}, nil
}
