package loader

import (
	"errors"
	"fmt"
)

// Load operations reported in LoadError.Op.
const (
	OpFetch  = "fetch"
	OpStatus = "status"
	OpDecode = "decode"
)

var (
	// ErrUnexpectedStatus is wrapped when the server answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrMalformedPayload is wrapped when the payload is not a publications document.
	ErrMalformedPayload = errors.New("malformed publications payload")
)

// LoadError describes why a publications source could not be loaded.
type LoadError struct {
	Source     string
	Op         string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("loading %s: %s (status %d): %v", e.Source, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("loading %s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// AsLoadError returns the *LoadError in err's chain, if any.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
