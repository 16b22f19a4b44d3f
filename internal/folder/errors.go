package folder

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrNotFound           = errors.New("file not found")
	ErrInvalidName        = errors.New("invalid file name")
	ErrDecode             = errors.New("file is not valid UTF-8 text")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrAlreadyExists      = errors.New("file already exists")
)

// Error describes a failed store operation. Kind is one of the Err*
// sentinels above; Err is the underlying cause, if any.
type Error struct {
	Op   string
	Name string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Name != "" {
		msg += fmt.Sprintf(" %q", e.Name)
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(op, name string, kind, err error) error {
	return &Error{Op: op, Name: name, Kind: kind, Err: err}
}

// fsError classifies an error returned by the underlying file system.
func fsError(op, name string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return newError(op, name, ErrNotFound, err)
	}
	return newError(op, name, ErrStorageUnavailable, err)
}

// Kind returns a short stable identifier for the kind of err: "ok" for nil,
// "internal" for errors that did not come from the store.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, ErrDecode):
		return "decode_error"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	default:
		return "internal"
	}
}
