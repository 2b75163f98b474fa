package editor

import "errors"

// Editor errors.
var (
	// ErrSessionNotFound indicates a session is not open in the workspace.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNotParameter indicates a slider gesture on a non-parameter field.
	ErrNotParameter = errors.New("not a synthesis parameter")

	// ErrValueType indicates a value of the wrong type for the field.
	ErrValueType = errors.New("wrong value type")
)
