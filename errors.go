package zsq

import "errors"

var (
	// ErrMalformedArguments is returned before anything is sent to the
	// database when the call itself is wrong: a value that can't be
	// flattened, or a placeholder count that doesn't match the number of
	// values.
	ErrMalformedArguments = errors.New("malformed arguments")

	// ErrImmutableResult is returned on any attempt to modify a Result.
	ErrImmutableResult = errors.New("immutable result")

	// ErrIndexRange is returned by Result.Index for out-of-range indexes.
	ErrIndexRange = errors.New("index out of range")
)
