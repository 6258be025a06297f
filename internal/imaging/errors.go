package imaging

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is the cause of an EncodeError when the output path's
	// extension names no supported container format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrModeNotStorable is the cause of an EncodeError when the output
	// container cannot hold the requested mode.
	ErrModeNotStorable = errors.New("format cannot store mode")
)

// DecodeError reports that an input image could not be read or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// UnsupportedModeError reports a mode name that is not one of the Modes.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported mode %q", e.Mode)
}

// EncodeError reports that a converted image could not be written.
//
// Format and Mode are empty when the failure happened before they were
// known, e.g. for an unrecognised output extension.
type EncodeError struct {
	Path   string
	Format string
	Mode   string
	Err    error
}

func (e *EncodeError) Error() string {
	switch {
	case e.Format != "" && e.Mode != "":
		return fmt.Sprintf("encode %s (%s, mode %s): %v", e.Path, e.Format, e.Mode, e.Err)
	case e.Format != "":
		return fmt.Sprintf("encode %s (%s): %v", e.Path, e.Format, e.Err)
	}
	return fmt.Sprintf("encode %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
