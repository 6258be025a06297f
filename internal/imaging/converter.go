package imaging

import (
	"image/png"
	"io"

	"github.com/sirupsen/logrus"
)

// Options configures a Convert call. Build one with the With* functions.
type Options struct {
	Dither Dither
	Encode EncodeOptions
	Logger logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

// WithDither selects the dithering used for the 1 and P modes.
func WithDither(d Dither) Option {
	return func(o *Options) { o.Dither = d }
}

// WithJPEGQuality sets the JPEG quality (1-100) used when the output is JPEG.
func WithJPEGQuality(q int) Option {
	return func(o *Options) { o.Encode.JPEGQuality = q }
}

// WithPNGCompression sets the PNG compression level.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(o *Options) { o.Encode.PNGCompression = level }
}

// WithLogger routes step-by-step debug logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

func newOptions(opts []Option) Options {
	o := Options{
		Dither: DitherFloydSteinberg,
		Encode: EncodeOptions{
			JPEGQuality:    defaultJPEGQuality,
			PNGCompression: png.DefaultCompression,
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		o.Logger = discard
	}
	return o
}

// Convert reads the image at inputPath, converts it to the mode named by
// mode and writes it to outputPath in the container format implied by
// outputPath's extension.
//
// Errors, in the order they are checked:
//   - *UnsupportedModeError if mode is not a known mode name
//   - *EncodeError if the output extension is unknown or the format cannot
//     store the mode
//   - *DecodeError if inputPath is missing, unreadable or not an image
//   - *EncodeError if the converted image cannot be stored (an opaque RGBA
//     image as PNG) or writing fails
//
// Mode and format are validated before the input is read, so a bad request
// never touches the filesystem. A missing input with an unrecognised output
// extension therefore reports EncodeError, not DecodeError.
func Convert(inputPath, outputPath, mode string, opts ...Option) error {
	m, err := ParseMode(mode)
	if err != nil {
		return err
	}
	return ConvertMode(inputPath, outputPath, m, opts...)
}

// ConvertMode is Convert with an already parsed Mode.
//
// inputPath and outputPath may name the same file: the input is decoded and
// closed before the output is created, and the output replaces it with a
// single rename.
func ConvertMode(inputPath, outputPath string, mode Mode, opts ...Option) error {
	o := newOptions(opts)
	log := o.Logger.WithFields(logrus.Fields{
		"input":  inputPath,
		"output": outputPath,
		"mode":   mode.String(),
	})

	if !mode.Valid() {
		return &UnsupportedModeError{Mode: mode.String()}
	}

	format, err := FormatFromPath(outputPath)
	if err != nil {
		return err
	}
	if !format.Supports(mode) {
		return &EncodeError{Path: outputPath, Format: format.Name(), Mode: mode.String(), Err: ErrModeNotStorable}
	}

	src, srcFormat, err := LoadImage(inputPath)
	if err != nil {
		return err
	}
	bounds := src.Bounds()
	log.WithFields(logrus.Fields{
		"format":    srcFormat,
		"width":     bounds.Dx(),
		"height":    bounds.Dy(),
		"from_mode": ModeOf(src).String(),
	}).Debug("decoded input")

	dst, err := ConvertImage(src, mode, o.Dither)
	if err != nil {
		return err
	}
	log.WithField("dither", o.Dither.String()).Debug("converted pixels")

	if err := WriteImage(outputPath, dst, format, o.Encode); err != nil {
		return err
	}
	log.WithField("format", format.Name()).Debug("wrote output")

	return nil
}
