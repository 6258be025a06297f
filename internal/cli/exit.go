package cli

import (
	"errors"

	"github.com/ironsheep/imgmode/internal/imaging"
)

// Process exit codes.
const (
	ExitOK              = 0
	ExitFailure         = 1 // usage, configuration or any other error
	ExitDecodeError     = 2
	ExitUnsupportedMode = 3
	ExitEncodeError     = 4
)

// exitCode maps an error returned by a command onto a process exit code.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var decodeErr *imaging.DecodeError
	var modeErr *imaging.UnsupportedModeError
	var encodeErr *imaging.EncodeError

	switch {
	case errors.As(err, &decodeErr):
		return ExitDecodeError
	case errors.As(err, &modeErr):
		return ExitUnsupportedMode
	case errors.As(err, &encodeErr):
		return ExitEncodeError
	}
	return ExitFailure
}
