package types

import (
	"errors"
	"fmt"
)

// ErrUserDeclined is returned when a confirmation prompt is answered with no.
var ErrUserDeclined = errors.New("declined by user")

// NotFoundError reports a missing source path, file or directory
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("not found: %s", e.Path)
	}
	return fmt.Sprintf("not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// DecodeError reports a corrupt or unreadable video stream
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports a failed write to the output tree (disk full, permissions).
// It is fatal for the whole run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// InvalidArgumentError is returned before any side effect when a parameter is out of range
type InvalidArgumentError struct {
	Arg    string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Arg, e.Reason)
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsDecode(err error) bool {
	var e *DecodeError
	return errors.As(err, &e)
}

func IsWrite(err error) bool {
	var e *WriteError
	return errors.As(err, &e)
}

func IsInvalidArgument(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

func IsUserDeclined(err error) bool {
	return errors.Is(err, ErrUserDeclined)
}
