package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/channel"
	"github.com/disintegration/imaging"
)

// Dither selects how colour is reduced when converting to a palette mode.
type Dither int

const (
	// DitherFloydSteinberg diffuses quantisation error to neighbouring pixels.
	DitherFloydSteinberg Dither = iota
	// DitherNone maps each pixel independently to its nearest palette entry.
	DitherNone
)

// bilevelThreshold is the luma at or above which an undithered pixel turns white.
const bilevelThreshold = 128

// ParseDither returns the Dither named by s: "floyd-steinberg" or "none".
func ParseDither(s string) (Dither, error) {
	switch s {
	case "floyd-steinberg", "floydsteinberg", "fs":
		return DitherFloydSteinberg, nil
	case "none":
		return DitherNone, nil
	}
	return 0, fmt.Errorf("unknown dither method: %s", s)
}

func (d Dither) String() string {
	switch d {
	case DitherFloydSteinberg:
		return "floyd-steinberg"
	case DitherNone:
		return "none"
	}
	return fmt.Sprintf("Dither(%d)", int(d))
}

// ConvertImage returns a new image holding the pixels of img recomputed into
// mode.
//
// The result has the same width and height as img, with its bounds moved to
// the origin. img is never modified. Converting to the mode img is already
// stored in yields a pixel-identical copy.
//
// # Conversions
//
//   - L: ITU-R 601 luma (0.299R + 0.587G + 0.114B) rounded half up. Alpha
//     is ignored.
//   - I;16: the same weights at 16-bit precision.
//   - 1: luma, then Floyd-Steinberg dithering onto black and white, or a
//     plain threshold at 128 when dither is DitherNone.
//   - P: grayscale sources get a 256-entry gray ramp where index equals
//     level; colour sources are mapped onto the 216-colour web-safe palette,
//     dithered, or matched by CIE L*a*b* distance when dither is DitherNone.
//   - RGB: colour channels unchanged, alpha dropped.
//   - RGBA: colour channels with straight (non-premultiplied) alpha.
//   - CMYK: C=255-R, M=255-G, Y=255-B, K=0.
func ConvertImage(img image.Image, mode Mode, dither Dither) (image.Image, error) {
	if !mode.Valid() {
		return nil, &UnsupportedModeError{Mode: mode.String()}
	}

	if ModeOf(img) == mode {
		return copyImage(img), nil
	}

	switch mode {
	case Mode1:
		return toBilevel(img, dither), nil
	case ModeL:
		return toGray(img), nil
	case ModeI16:
		return toGray16(img), nil
	case ModeP:
		return toPaletted(img, dither), nil
	case ModeRGB:
		return toRGB(img), nil
	case ModeRGBA:
		return imaging.Clone(img), nil
	case ModeCMYK:
		return toCMYK(img), nil
	}

	return nil, &UnsupportedModeError{Mode: mode.String()}
}

// copyImage duplicates img into a new image of the same concrete type.
func copyImage(img image.Image) image.Image {
	b := img.Bounds()
	rect := image.Rect(0, 0, b.Dx(), b.Dy())

	switch src := img.(type) {
	case *image.Paletted:
		// Indices are copied rather than colours so duplicate palette
		// entries survive.
		dst := image.NewPaletted(rect, append(color.Palette(nil), src.Palette...))
		copyRows(dst.Pix, dst.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, rect.Dx(), rect.Dy())
		return dst
	case *image.Gray:
		dst := image.NewGray(rect)
		copyRows(dst.Pix, dst.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, rect.Dx(), rect.Dy())
		return dst
	case *image.Gray16:
		dst := image.NewGray16(rect)
		copyRows(dst.Pix, dst.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, 2*rect.Dx(), rect.Dy())
		return dst
	case *image.CMYK:
		dst := image.NewCMYK(rect)
		copyRows(dst.Pix, dst.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, 4*rect.Dx(), rect.Dy())
		return dst
	case *image.RGBA:
		dst := image.NewRGBA(rect)
		copyRows(dst.Pix, dst.Stride, src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride, 4*rect.Dx(), rect.Dy())
		return dst
	}

	// Types classified by storage rather than by identity, such as
	// *image.YCbCr for RGB, are rebuilt in the canonical type of their mode.
	if ModeOf(img) == ModeRGB {
		return toRGB(img)
	}
	return imaging.Clone(img)
}

// copyRows copies rows of rowBytes bytes between pixel buffers with
// different strides.
func copyRows(dst []uint8, dstStride int, src []uint8, srcStride, rowBytes, rows int) {
	for y := 0; y < rows; y++ {
		copy(dst[y*dstStride:y*dstStride+rowBytes], src[y*srcStride:y*srcStride+rowBytes])
	}
}

// toGray computes 8-bit luma with the ITU-R 601 weights.
func toGray(img image.Image) *image.Gray {
	luma := imaging.Grayscale(img)

	// Luma ignores alpha; make every pixel opaque so extracting the channel
	// does not premultiply it.
	for i := 3; i < len(luma.Pix); i += 4 {
		luma.Pix[i] = 0xff
	}

	return channel.Extract(luma, channel.Red)
}

// toGray16 computes 16-bit luma with the same weights as toGray on the
// non-premultiplied colour, mirroring color.Gray16Model.
func toGray16(img image.Image) *image.Gray16 {
	b := img.Bounds()
	dst := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			lum := (19595*uint32(c.R) + 38470*uint32(c.G) + 7471*uint32(c.B) + 1<<15) >> 16
			dst.SetGray16(x-b.Min.X, y-b.Min.Y, color.Gray16{Y: uint16(lum)})
		}
	}
	return dst
}

// toBilevel reduces img to black and white.
func toBilevel(img image.Image, dither Dither) *image.Paletted {
	gray := toGray(img)
	dst := image.NewPaletted(gray.Bounds(), append(color.Palette(nil), bilevelPalette...))

	if dither == DitherFloydSteinberg {
		draw.FloydSteinberg.Draw(dst, dst.Bounds(), gray, image.Point{})
		return dst
	}

	thresholded := adjust.Apply(gray, func(c color.RGBA) color.RGBA {
		if c.R >= bilevelThreshold {
			return color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		return color.RGBA{0x00, 0x00, 0x00, 0xff}
	})

	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if thresholded.Pix[y*thresholded.Stride+x*4] != 0 {
				dst.Pix[y*dst.Stride+x] = 1
			}
		}
	}
	return dst
}

// toPaletted converts img to a palette-indexed image.
func toPaletted(img image.Image, dither Dither) *image.Paletted {
	switch ModeOf(img) {
	case Mode1, ModeL, ModeI16:
		gray := toGray(img)
		dst := image.NewPaletted(gray.Bounds(), append(color.Palette(nil), grayPalette...))
		copy(dst.Pix, gray.Pix)
		return dst
	}

	rgb := toRGB(img)
	if dither == DitherNone {
		return mapToPalette(rgb, append(color.Palette(nil), webPalette...))
	}

	dst := image.NewPaletted(rgb.Bounds(), append(color.Palette(nil), webPalette...))
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), rgb, image.Point{})
	return dst
}

// toRGB drops the alpha channel, keeping the straight colour values.
func toRGB(img image.Image) *image.RGBA {
	nrgba := imaging.Clone(img)
	for i := 3; i < len(nrgba.Pix); i += 4 {
		nrgba.Pix[i] = 0xff
	}

	// With alpha at 255 the premultiplied and straight layouts are identical.
	return &image.RGBA{
		Pix:    nrgba.Pix,
		Stride: nrgba.Stride,
		Rect:   nrgba.Rect,
	}
}

// toCMYK inverts the colour channels into C, M and Y with no black generation.
func toCMYK(img image.Image) *image.CMYK {
	nrgba := imaging.Clone(img)
	dst := image.NewCMYK(nrgba.Rect)

	for i := 0; i < len(nrgba.Pix); i += 4 {
		dst.Pix[i+0] = 0xff - nrgba.Pix[i+0]
		dst.Pix[i+1] = 0xff - nrgba.Pix[i+1]
		dst.Pix[i+2] = 0xff - nrgba.Pix[i+2]
		dst.Pix[i+3] = 0
	}
	return dst
}
