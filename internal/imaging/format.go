package imaging

import (
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an output container format.
type Format struct {
	codec    imaging.Format
	name     string
	storable map[Mode]bool

	// dropsOpaqueAlpha is set when the encoder writes an RGBA image without
	// any transparent pixel as plain RGB.
	dropsOpaqueAlpha bool
}

// The storable sets list the modes each encoder writes such that decoding
// the file classifies (via ModeOf) as the same mode. Encoders silently
// re-quantise anything else, e.g. GIF turns L into a Plan 9 palette, so
// those combinations are refused instead.
var formats = []Format{
	{
		codec: imaging.PNG,
		name:  "png",
		storable: map[Mode]bool{
			Mode1: true, ModeL: true, ModeI16: true, ModeP: true, ModeRGB: true, ModeRGBA: true,
		},
		dropsOpaqueAlpha: true,
	},
	{
		codec:    imaging.JPEG,
		name:     "jpeg",
		storable: map[Mode]bool{ModeL: true, ModeRGB: true},
	},
	{
		codec:    imaging.GIF,
		name:     "gif",
		storable: map[Mode]bool{Mode1: true, ModeP: true},
	},
	{
		codec: imaging.TIFF,
		name:  "tiff",
		storable: map[Mode]bool{
			ModeL: true, ModeI16: true, ModeP: true, ModeRGB: true, ModeRGBA: true,
		},
	},
	{
		codec:    imaging.BMP,
		name:     "bmp",
		storable: map[Mode]bool{ModeP: true, ModeRGB: true},
	},
}

// Formats returns every supported output format.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// FormatFromPath picks the output format from path's extension
// (case-insensitive): .png, .jpg/.jpeg, .gif, .tif/.tiff or .bmp.
//
// An unrecognised extension yields an *EncodeError wrapping ErrUnknownFormat.
func FormatFromPath(path string) (Format, error) {
	codec, err := imaging.FormatFromFilename(path)
	if err != nil {
		return Format{}, &EncodeError{Path: path, Err: ErrUnknownFormat}
	}
	for _, f := range formats {
		if f.codec == codec {
			return f, nil
		}
	}
	return Format{}, &EncodeError{Path: path, Err: ErrUnknownFormat}
}

// Name returns the lower-case format name, e.g. "png".
func (f Format) Name() string {
	return f.name
}

func (f Format) String() string {
	return strings.ToUpper(f.name)
}

// Supports reports whether f can store images of mode m. For RGBA in PNG
// this holds only when the image has at least one transparent pixel;
// WriteImage refuses a fully opaque one.
func (f Format) Supports(m Mode) bool {
	return f.storable[m]
}

// StorableModes lists the modes f can store, in Mode order.
func (f Format) StorableModes() []Mode {
	var modes []Mode
	for _, m := range Modes() {
		if f.storable[m] {
			modes = append(modes, m)
		}
	}
	return modes
}

// FormatsFor lists the formats that can store mode m.
func FormatsFor(m Mode) []Format {
	var out []Format
	for _, f := range formats {
		if f.Supports(m) {
			out = append(out, f)
		}
	}
	return out
}
