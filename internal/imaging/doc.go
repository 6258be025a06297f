// Package imaging converts image files between pixel modes.
//
// A conversion is a single linear pass: decode the input (format sniffed from
// content), recompute every pixel into the requested Mode, encode the result
// in the container implied by the output path's extension, and move it into
// place atomically.
//
//	err := imaging.Convert("photo.jpg", "photo-gray.png", "L")
//
// # Modes
//
// Modes are a closed enumeration (see Mode). ParseMode maps the canonical
// names "1", "L", "I;16", "P", "RGB", "RGBA" and "CMYK" onto it; any other
// string is an *UnsupportedModeError. ModeOf classifies any decoded image,
// which lets callers check that a written file decodes back to the mode it
// was converted to.
//
// # Formats
//
// Output formats are PNG, JPEG, GIF, TIFF and BMP. Each stores only the modes
// it can round-trip; asking for anything else (RGBA as JPEG, L as GIF, CMYK
// anywhere) is an *EncodeError raised before the input is read. Inputs may
// additionally be WebP.
//
// # Error Handling
//
// Every failure is one of three types, matched with errors.As:
//   - *DecodeError: input missing, unreadable or not an image
//   - *UnsupportedModeError: unknown mode name
//   - *EncodeError: unknown extension, mode not storable, or write failure
//
// No output file is left behind on failure.
//
// # Thread Safety
//
// Functions in this package keep no shared state and may be called
// concurrently on different files.
package imaging
