package imaging

import (
	"bufio"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// EncodeOptions tunes the container encoders.
type EncodeOptions struct {
	// JPEGQuality ranges from 1 to 100 inclusive. Zero selects 95.
	JPEGQuality int

	// PNGCompression is the zlib level for PNG output.
	PNGCompression png.CompressionLevel
}

const defaultJPEGQuality = 95

func (o EncodeOptions) codecOptions() []imaging.EncodeOption {
	quality := o.JPEGQuality
	if quality == 0 {
		quality = defaultJPEGQuality
	}
	return []imaging.EncodeOption{
		imaging.JPEGQuality(quality),
		imaging.PNGCompressionLevel(o.PNGCompression),
	}
}

// WriteImage encodes img as format and stores it at path.
//
// The image is first written to a temporary file in the same directory,
// synced and closed, then renamed over path. A failure at any step removes
// the temporary file and leaves path untouched, so path either holds the
// complete new image or whatever it held before.
//
// All failures are reported as *EncodeError. A mode that format cannot
// store wraps ErrModeNotStorable and nothing is created. That includes an
// RGBA image with no transparent pixel in a format whose encoder would
// write it without alpha.
//
// An existing file at path keeps its permission bits; a new one gets 0644
// less the umask.
func WriteImage(path string, img image.Image, format Format, opts EncodeOptions) (err error) {
	mode := ModeOf(img)
	if !format.Supports(mode) || (mode == ModeRGBA && format.dropsOpaqueAlpha && isOpaque(img)) {
		return &EncodeError{Path: path, Format: format.Name(), Mode: mode.String(), Err: ErrModeNotStorable}
	}

	fail := func(cause error) error {
		return &EncodeError{Path: path, Format: format.Name(), Mode: mode.String(), Err: cause}
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fail(errors.Wrap(err, "failed to create output file"))
	}

	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			f.Close()
		}
		os.Remove(tmpPath)
	}()

	if st, statErr := os.Stat(path); statErr == nil {
		if err := f.Chmod(st.Mode().Perm()); err != nil {
			return fail(errors.Wrap(err, "failed to copy output permissions"))
		}
	}

	w := bufio.NewWriter(f)
	if err := imaging.Encode(w, img, format.codec, opts.codecOptions()...); err != nil {
		return fail(errors.Wrapf(err, "failed to encode %s", format))
	}
	if err := w.Flush(); err != nil {
		return fail(errors.Wrap(err, "failed to write output file"))
	}
	if err := f.Sync(); err != nil {
		return fail(errors.Wrap(err, "failed to sync output file"))
	}

	closed = true
	if err := f.Close(); err != nil {
		return fail(errors.Wrap(err, "failed to close output file"))
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fail(errors.Wrap(err, "failed to move output into place"))
	}

	return nil
}

func isOpaque(img image.Image) bool {
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}
