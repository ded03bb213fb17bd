package lumen

import (
	"errors"
	"fmt"
)

// Process exit codes of the example programs.
const (
	ExitOK          = 0
	ExitGraphics    = 1
	ExitPluginLoad  = 2
	ExitAssetDecode = 3
)

// StartupError tags a startup failure with the exit code the program should
// terminate with. Library code returns it; only main calls os.Exit.
type StartupError struct {
	Code int
	Err  error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("%v (exit code %d)", e.Err, e.Code)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// PluginLoadError wraps err as a StartupError with ExitPluginLoad.
func PluginLoadError(err error) error {
	return &StartupError{Code: ExitPluginLoad, Err: err}
}

// AssetDecodeError wraps err as a StartupError with ExitAssetDecode.
func AssetDecodeError(err error) error {
	return &StartupError{Code: ExitAssetDecode, Err: err}
}

// ExitCode maps an error returned by startup or Run to a process exit code.
// nil maps to ExitOK, a StartupError to its Code, and anything else,
// including ErrGraphics, to ExitGraphics.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var se *StartupError
	if errors.As(err, &se) {
		return se.Code
	}
	return ExitGraphics
}
