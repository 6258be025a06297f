package imaging

import (
	"image"
	"image/color"
	"image/color/palette"

	"github.com/lucasb-eyer/go-colorful"
)

// bilevelPalette is the palette of Mode1 images.
var bilevelPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// grayPalette is the 256-entry ramp used when a grayscale image becomes
// ModeP; entry i is gray level i.
var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.RGBA{uint8(i), uint8(i), uint8(i), 0xff}
	}
	return p
}()

// webPalette is the 216-colour web-safe cube used for colour images
// converted to ModeP.
var webPalette = color.Palette(palette.WebSafe)

// labMatcher finds the perceptually nearest palette entry for a colour,
// measuring distance in CIE L*a*b*.
type labMatcher struct {
	lab  []colorful.Color
	memo map[color.RGBA]uint8
}

func newLabMatcher(p color.Palette) *labMatcher {
	lab := make([]colorful.Color, len(p))
	for i, c := range p {
		lab[i], _ = colorful.MakeColor(c)
	}
	return &labMatcher{
		lab:  lab,
		memo: make(map[color.RGBA]uint8),
	}
}

// index returns the palette index nearest to c. c must be opaque.
func (m *labMatcher) index(c color.RGBA) uint8 {
	if idx, ok := m.memo[c]; ok {
		return idx
	}

	target, _ := colorful.MakeColor(c)

	best := 0
	bestDist := target.DistanceLab(m.lab[0])
	for i := 1; i < len(m.lab); i++ {
		if d := target.DistanceLab(m.lab[i]); d < bestDist {
			best, bestDist = i, d
		}
	}

	m.memo[c] = uint8(best)
	return uint8(best)
}

// mapToPalette assigns every pixel of src, an opaque RGB image, to its
// nearest entry in p without error diffusion.
func mapToPalette(src *image.RGBA, p color.Palette) *image.Paletted {
	bounds := src.Bounds()
	dst := image.NewPaletted(bounds, p)
	matcher := newLabMatcher(p)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.SetColorIndex(x, y, matcher.index(src.RGBAAt(x, y)))
		}
	}
	return dst
}
