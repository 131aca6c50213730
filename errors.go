package boardfinder

import (
	"errors"
	"fmt"
	"strings"
)

// Predefined error types for robust error handling
var (
	ErrCommandFailed       = errors.New("external command failed")
	ErrUnsupportedPlatform = errors.New("operation not supported on this platform")
	ErrDeviceNotFound      = errors.New("device not found")
	ErrUnknownFamily       = errors.New("unknown device family")
	ErrInvalidSignature    = errors.New("invalid family signature")
	ErrInvalidConfig       = errors.New("invalid configuration")

	// Permission grant errors
	ErrElevationFailed     = errors.New("elevated permission change failed")
	ErrCredentialCancelled = errors.New("credential prompt cancelled")
)

// CommandError describes a failed external command invocation.
// It matches ErrCommandFailed and the underlying cause with errors.Is.
type CommandError struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Name, strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += fmt.Sprintf(" (output: %s)", e.Stderr)
	}
	return msg
}

func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}

// ElevationError reports a failed elevated chmod, carrying the command's
// error output verbatim.
type ElevationError struct {
	Path   string
	Output string
	Err    error
}

func (e *ElevationError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("setting permissions for %s: %s", e.Path, e.Output)
	}
	return fmt.Sprintf("setting permissions for %s: %v", e.Path, e.Err)
}

func (e *ElevationError) Unwrap() []error {
	return []error{ErrElevationFailed, e.Err}
}
