package transfer

import (
	"errors"
	"fmt"
)

// ErrAborted matches every error that ended a job in the aborted state.
var ErrAborted = errors.New("transfer aborted")

type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("missing %s", e.Field)
}

type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// abortError ties a fatal cause to ErrAborted so callers can match either.
type abortError struct {
	cause error
}

func (e *abortError) Error() string {
	return fmt.Sprintf("%s: %v", ErrAborted, e.cause)
}

func (e *abortError) Unwrap() []error {
	return []error{ErrAborted, e.cause}
}

func aborted(err error) error {
	return &abortError{cause: err}
}
