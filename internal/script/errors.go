package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrScript wraps errors raised while running a script.
	ErrScript = errors.New("script error")

	// ErrTimeout is returned when a script runs past its deadline.
	ErrTimeout = errors.New("script timeout")

	// ErrEditLimit is returned when a script makes too many edit calls.
	ErrEditLimit = errors.New("script edit limit exceeded")
)
