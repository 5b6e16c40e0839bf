package softx

import (
	"errors"
	"strings"
)

// Sentinel errors for constructor-time misuse.
var (
	// ErrZeroDimension is returned by NewDevice/NewDeviceWithWorkers when
	// width or height is zero or negative.
	ErrZeroDimension = errors.New("softx: width and height must be positive")

	// ErrInvalidTileSize is returned by SetTileSize when n is zero or
	// negative.
	ErrInvalidTileSize = errors.New("softx: tile size must be positive")
)

// ValidationError accumulates every failed check found while validating a
// DeviceContext, rather than stopping at the first one, so a caller sees
// the complete list of what is missing in a single pass. Grounded on
// DeviceContext::Validate in the original source, which builds one
// diagnostic string out of every failed precondition.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "softx: invalid device context: " + strings.Join(e.Reasons, "; ")
}

// add appends reason if cond is true, returning the updated error (creating
// it on first use).
func (e *ValidationError) add(cond bool, reason string) *ValidationError {
	if !cond {
		return e
	}
	if e == nil {
		e = &ValidationError{}
	}
	e.Reasons = append(e.Reasons, reason)
	return e
}
