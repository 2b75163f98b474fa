package project

import (
	"errors"
	"fmt"
)

// Errors returned by project operations.
var (
	// ErrInvalidProject indicates malformed project data.
	ErrInvalidProject = errors.New("invalid project")

	// ErrEncode indicates the project could not be serialized.
	ErrEncode = errors.New("encode project")

	// ErrIsDirectory indicates a directory was given where a project file was expected.
	ErrIsDirectory = errors.New("is a directory")

	// ErrFileTooLarge indicates a project file exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
)

// PathError records a file operation that failed on a project file.
type PathError struct {
	Op   string // open, write
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}
