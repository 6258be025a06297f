package imaging

import (
	"image"
	"image/color"
	"sort"
)

// Mode identifies the pixel representation of an image.
//
// Modes are a closed set. ConvertImage produces these Go in-memory types
// when it changes an image's mode:
//
//	Mode1    *image.Paletted with a two-entry {black, white} palette
//	ModeL    *image.Gray
//	ModeI16  *image.Gray16
//	ModeP    *image.Paletted
//	ModeRGB  *image.RGBA, every pixel fully opaque
//	ModeRGBA *image.NRGBA
//	ModeCMYK *image.CMYK
//
// A same-mode conversion keeps the source type, so a translucent
// *image.RGBA stays *image.RGBA. ModeOf classifies both as ModeRGBA.
type Mode int

const (
	// Mode1 is bilevel: every pixel is either black or white.
	Mode1 Mode = iota + 1
	// ModeL is 8-bit luminance.
	ModeL
	// ModeI16 is 16-bit luminance.
	ModeI16
	// ModeP is 8-bit palette-indexed colour.
	ModeP
	// ModeRGB is 8-bit-per-channel true colour without alpha.
	ModeRGB
	// ModeRGBA is 8-bit-per-channel true colour with straight alpha.
	ModeRGBA
	// ModeCMYK is 8-bit-per-channel subtractive colour.
	ModeCMYK
)

// ModeSpec describes the storage layout of a Mode.
type ModeSpec struct {
	Name     string `json:"name"`     // Canonical mode name, e.g. "RGB"
	Channels int    `json:"channels"` // Samples per pixel
	Bits     int    `json:"bits"`     // Bits per sample
	HasAlpha bool   `json:"has_alpha"`
}

var modeSpecs = map[Mode]ModeSpec{
	Mode1:    {Name: "1", Channels: 1, Bits: 1},
	ModeL:    {Name: "L", Channels: 1, Bits: 8},
	ModeI16:  {Name: "I;16", Channels: 1, Bits: 16},
	ModeP:    {Name: "P", Channels: 1, Bits: 8},
	ModeRGB:  {Name: "RGB", Channels: 3, Bits: 8},
	ModeRGBA: {Name: "RGBA", Channels: 4, Bits: 8, HasAlpha: true},
	ModeCMYK: {Name: "CMYK", Channels: 4, Bits: 8},
}

var modesByName = func() map[string]Mode {
	m := make(map[string]Mode, len(modeSpecs))
	for mode, spec := range modeSpecs {
		m[spec.Name] = mode
	}
	return m
}()

// Modes returns every supported mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, 0, len(modeSpecs))
	for m := range modeSpecs {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// ParseMode returns the Mode with the given canonical name.
//
// Names are matched exactly ("rgb" is not "RGB"). Any other value yields an
// *UnsupportedModeError.
func ParseMode(name string) (Mode, error) {
	if m, ok := modesByName[name]; ok {
		return m, nil
	}
	return 0, &UnsupportedModeError{Mode: name}
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	_, ok := modeSpecs[m]
	return ok
}

// Spec returns the storage layout of m. The zero ModeSpec is returned for
// an invalid mode.
func (m Mode) Spec() ModeSpec {
	return modeSpecs[m]
}

// Channels returns the number of samples per pixel.
func (m Mode) Channels() int {
	return modeSpecs[m].Channels
}

func (m Mode) String() string {
	if spec, ok := modeSpecs[m]; ok {
		return spec.Name
	}
	return "invalid"
}

// ModeOf classifies an image into the Mode it is stored as.
//
// Decoders do not always hand back the type ConvertImage produces, so the
// classification is by storage:
//   - *image.YCbCr (how JPEG stores colour) is RGB
//   - *image.RGBA is RGB when opaque, RGBA otherwise
//   - *image.NRGBA, *image.NYCbCrA and the 64-bit colour types are RGBA
//   - *image.Paletted is 1 when its palette is exactly {black, white}, P otherwise
func ModeOf(img image.Image) Mode {
	switch m := img.(type) {
	case *image.Gray:
		return ModeL
	case *image.Gray16:
		return ModeI16
	case *image.Paletted:
		if isBilevelPalette(m.Palette) {
			return Mode1
		}
		return ModeP
	case *image.RGBA:
		if m.Opaque() {
			return ModeRGB
		}
		return ModeRGBA
	case *image.YCbCr:
		return ModeRGB
	case *image.CMYK:
		return ModeCMYK
	case *image.NRGBA, *image.NYCbCrA, *image.RGBA64, *image.NRGBA64:
		return ModeRGBA
	}

	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return ModeRGB
	}
	return ModeRGBA
}

// isBilevelPalette reports whether p holds exactly opaque black followed by
// opaque white.
func isBilevelPalette(p color.Palette) bool {
	if len(p) != 2 {
		return false
	}
	r0, g0, b0, a0 := p[0].RGBA()
	r1, g1, b1, a1 := p[1].RGBA()
	return r0 == 0 && g0 == 0 && b0 == 0 && a0 == 0xffff &&
		r1 == 0xffff && g1 == 0xffff && b1 == 0xffff && a1 == 0xffff
}
