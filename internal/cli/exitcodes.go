package cli

import (
	"errors"

	"github.com/researchfolio/pubpager/internal/config"
	"github.com/researchfolio/pubpager/internal/loader"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitError       = 1 // general error
	ExitConfigError = 2 // configuration could not be loaded or is invalid
	ExitDataError   = 3 // publications could not be loaded
)

// ExitCodeError attaches a process exit code to an error.
type ExitCodeError struct {
	Code int
	Err  error
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitCodeError{Code: code, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ec *ExitCodeError
	if errors.As(err, &ec) {
		return ec.Code
	}
	if loader.IsLoadError(err) {
		return ExitDataError
	}
	if errors.Is(err, config.ErrInvalidConfig) {
		return ExitConfigError
	}
	return ExitError
}
