// Package ioerr classifies file system failures into the kinds reported by
// seqindex: a missing directory, denied permission, or a failed read or write.
package ioerr

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrDirectoryNotFound reports a directory that does not exist or is not a directory.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrPermissionDenied reports a path that cannot be listed, read or opened for writing.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrWriteFailure reports any other failure to create, write or close an output.
	ErrWriteFailure = errors.New("write failure")
	// ErrReadFailure reports any other failure to open or read an input.
	ErrReadFailure = errors.New("read failure")
)

// Error is a file system failure tied to the path it happened on.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s: %s", e.Kind, e.Path, e.Op)
	}
	return fmt.Sprintf("%v: %s: %s: %v", e.Kind, e.Path, e.Op, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New returns an Error of the given kind.
func New(kind error, op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Directory classifies an error returned while opening or listing a directory.
func Directory(op, path string, err error) *Error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return New(ErrDirectoryNotFound, op, path, err)
	case errors.Is(err, fs.ErrPermission):
		return New(ErrPermissionDenied, op, path, err)
	default:
		return New(ErrReadFailure, op, path, err)
	}
}

// Write classifies an error returned while creating or writing an output file.
func Write(op, path string, err error) *Error {
	if errors.Is(err, fs.ErrPermission) {
		return New(ErrPermissionDenied, op, path, err)
	}
	return New(ErrWriteFailure, op, path, err)
}

// Read classifies an error returned while opening or reading an input file.
func Read(op, path string, err error) *Error {
	if errors.Is(err, fs.ErrPermission) {
		return New(ErrPermissionDenied, op, path, err)
	}
	return New(ErrReadFailure, op, path, err)
}
